package service

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/catalogcms/backend/internal/model"
)

// ParseOptionalInt converts a form value to an integer. Blank or non-numeric
// input yields nil rather than an error.
func ParseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseInt is ParseOptionalInt with a default for blank or invalid input.
func ParseInt(s string, def int) int {
	if n := ParseOptionalInt(s); n != nil {
		return *n
	}
	return def
}

// OptionalString maps "" to nil.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseReferenceID accepts a soft reference id only when it is all digits.
func parseReferenceID(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

var releaseDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseReleaseDate parses an ISO-8601 date or date-time. Values without a zone
// are taken as UTC. Empty or unparsable input yields now; the write is never
// rejected over the date.
func ParseReleaseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return now
}

// ImageSaver stores an uploaded image and returns its URL, or "" when the
// file is not an acceptable image.
type ImageSaver interface {
	Save(ctx context.Context, filename string, data io.Reader) (string, error)
}

// resolveImage applies the three image branches: explicit removal clears,
// an accepted upload replaces, anything else keeps current.
func resolveImage(ctx context.Context, saver ImageSaver, current *string, upload *model.Upload, remove bool) (*string, error) {
	if remove {
		return nil, nil
	}
	if upload != nil && saver != nil {
		url, err := saver.Save(ctx, upload.Filename, upload.Data)
		if err != nil {
			return nil, err
		}
		if url != "" {
			return &url, nil
		}
	}
	return current, nil
}

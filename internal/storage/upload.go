package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".svg":  true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// Uploader validates image uploads and hands accepted ones to a Storage.
// Replaced or orphaned files are never cleaned up.
type Uploader struct {
	store Storage
	now   func() time.Time
}

// NewUploader creates an Uploader writing through store.
func NewUploader(store Storage) *Uploader {
	return &Uploader{store: store, now: time.Now}
}

// Save stores an image and returns its public URL. It returns "" and no error
// when there is nothing to store: no data, an empty filename, or an extension
// outside the image allow-list. Callers treat "" as "no image set".
func (u *Uploader) Save(ctx context.Context, filename string, data io.Reader) (string, error) {
	key, ok := u.key(filename)
	if !ok || data == nil {
		return "", nil
	}
	url, err := u.store.Save(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("save upload %q: %w", filename, err)
	}
	return url, nil
}

// key builds "<sanitised base>-<unix seconds><ext>" from a client filename.
func (u *Uploader) key(filename string) (string, bool) {
	name := strings.ToLower(filepath.Base(strings.ReplaceAll(filename, `\`, "/")))
	if filename == "" || name == "." || name == "/" {
		return "", false
	}
	ext := filepath.Ext(name)
	if !allowedImageExts[ext] {
		return "", false
	}
	// ".png" alone is a hidden file with no extension, not an image.
	stem := strings.TrimSuffix(name, ext)
	if strings.Trim(stem, ".") == "" {
		return "", false
	}
	base := unsafeNameChars.ReplaceAllString(stem, "-")
	return fmt.Sprintf("%s-%d%s", base, u.now().Unix(), ext), true
}

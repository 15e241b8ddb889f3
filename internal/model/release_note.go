package model

import "time"

// ReleaseNote is a published change log entry, optionally tied to a Software by id.
// SoftwareID is a soft reference: it may point at a deleted row.
type ReleaseNote struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Version     *string   `json:"version"`
	SoftwareID  *int64    `json:"software_id"`
	ReleaseDate time.Time `json:"release_date"`
	Content     *string   `json:"content"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	// Transient: resolved from software at read time, nil when dangling
	SoftwareName *string `json:"software_name"`
}

// ReleaseNoteInput is the admin form submission for a ReleaseNote.
type ReleaseNoteInput struct {
	Title       string
	Version     string
	SoftwareID  string
	ReleaseDate string
	Content     string
	IsPublished bool
}

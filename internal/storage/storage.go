package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded files are written. Only the local
// filesystem implementation exists today.
type Storage interface {
	// Save writes data under key and returns the public URL it is served at.
	Save(ctx context.Context, key string, data io.Reader) (url string, err error)
}

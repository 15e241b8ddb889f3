package model

import "io"

// Upload is an image file taken from a multipart form. A nil *Upload means
// no file field was submitted.
type Upload struct {
	Filename string
	Data     io.Reader
}

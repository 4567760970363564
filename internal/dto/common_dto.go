package dto

import "io"

// ImageFile represents an uploaded image before it reaches storage.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

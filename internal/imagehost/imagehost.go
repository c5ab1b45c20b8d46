// Package imagehost relays uploaded images to an external image host.
package imagehost

import (
	"context"
	"fmt"
	"io"
)

// Uploader stores one image and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, file File) (string, error)
}

// File is an image ready to be relayed.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// HostError is a failure reported by the image host. Details carries the
// host's own error payload so callers can surface it.
type HostError struct {
	Status  int
	Details any
	Err     error
}

func (e *HostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("image host: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("image host: status %d: %v", e.Status, e.Details)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// Package metadata reads capture dates and GPS positions from image files.
package metadata

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/photo-import/internal/models"
)

// Backend names accepted by New.
const (
	BackendEXIF     = "exif"
	BackendExiftool = "exiftool"
)

// Metadata is what the pipeline needs from a photo's embedded tags.
type Metadata struct {
	Date        string              // YYYY-MM-DD
	Coordinates *models.Coordinates // nil without GPS tags
}

// Reader extracts Metadata from an image file.
type Reader interface {
	Read(ctx context.Context, path string) (Metadata, error)
	Close() error
}

// New returns a Reader for the named backend.
func New(backend string) (Reader, error) {
	switch backend {
	case "", BackendEXIF:
		return NewEXIFReader(), nil
	case BackendExiftool:
		r, err := NewExiftoolReader()
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown metadata backend %q (expected %q or %q)", backend, BackendEXIF, BackendExiftool)
	}
}

package metadata

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/raphaelgruber/photo-import/internal/models"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
)

var registerParsers sync.Once

// EXIFReader decodes EXIF blocks in-process with goexif.
type EXIFReader struct{}

// NewEXIFReader creates an EXIFReader with camera makernote parsing enabled.
func NewEXIFReader() *EXIFReader {
	registerParsers.Do(func() {
		// Canon and Nikon makernotes
		exif.RegisterParsers(mknote.All...)
	})
	return &EXIFReader{}
}

// Read implements Reader.
func (r *EXIFReader) Read(ctx context.Context, path string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: open %s: %w", models.ErrMetadata, path, err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: decode %s: %w", models.ErrMetadata, path, err)
	}

	return fromEXIF(x)
}

// Close implements Reader. There is nothing to release.
func (r *EXIFReader) Close() error {
	return nil
}

// dateFields are tried in order; DateTimeDigitized is EXIF's CreateDate.
var dateFields = []exif.FieldName{exif.DateTimeDigitized, exif.DateTimeOriginal, exif.DateTime}

func fromEXIF(x *exif.Exif) (Metadata, error) {
	var timestamp string
	for _, field := range dateFields {
		if s, err := tagString(x, field); err == nil && s != "" {
			timestamp = s
			break
		}
	}
	if timestamp == "" {
		return Metadata{}, fmt.Errorf("%w: no capture date tag", models.ErrMetadata)
	}

	date, err := CaptureDate(timestamp)
	if err != nil {
		return Metadata{}, err
	}

	return Metadata{
		Date:        date,
		Coordinates: exifCoordinates(x),
	}, nil
}

// exifCoordinates returns nil unless all four GPS tags are present and well formed.
func exifCoordinates(x *exif.Exif) *models.Coordinates {
	lon, ok := exifAxis(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if !ok {
		return nil
	}
	lat, ok := exifAxis(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	if !ok {
		return nil
	}
	return &models.Coordinates{Longitude: lon, Latitude: lat}
}

func exifAxis(x *exif.Exif, valueField, refField exif.FieldName) (float64, bool) {
	ref, err := tagString(x, refField)
	if err != nil || ref == "" {
		return 0, false
	}
	tag, err := x.Get(valueField)
	if err != nil {
		return 0, false
	}
	dms, err := rationalTriple(tag)
	if err != nil {
		return 0, false
	}
	return DecimalDegrees(dms[0], dms[1], dms[2], ref), true
}

func tagString(x *exif.Exif, field exif.FieldName) (string, error) {
	tag, err := x.Get(field)
	if err != nil {
		return "", err
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00")), nil
}

func rationalTriple(tag *tiff.Tag) ([3]float64, error) {
	var out [3]float64
	if tag.Count < 3 {
		return out, fmt.Errorf("expected 3 rationals, got %d", tag.Count)
	}
	for i := range out {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return out, err
		}
		if den == 0 {
			return out, fmt.Errorf("zero denominator at index %d", i)
		}
		out[i] = float64(num) / float64(den)
	}
	return out, nil
}

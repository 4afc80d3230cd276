package metadata

import (
	"context"
	"fmt"
	"math"

	"github.com/barasher/go-exiftool"
	"github.com/raphaelgruber/photo-import/internal/models"
)

// ExiftoolReader reads tags through a long-running exiftool process.
// It understands formats goexif does not, such as HEIC and most RAW files.
type ExiftoolReader struct {
	et *exiftool.Exiftool
}

// NewExiftoolReader starts exiftool in numeric (-n) mode so GPS values
// arrive as plain decimal degrees.
func NewExiftoolReader() (*ExiftoolReader, error) {
	et, err := exiftool.NewExiftool(exiftool.NoPrintConversion())
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExiftoolReader{et: et}, nil
}

// Read implements Reader.
func (r *ExiftoolReader) Read(ctx context.Context, path string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	infos := r.et.ExtractMetadata(path)
	if len(infos) == 0 {
		return Metadata{}, fmt.Errorf("%w: exiftool returned nothing for %s", models.ErrMetadata, path)
	}
	info := infos[0]
	if info.Err != nil {
		return Metadata{}, fmt.Errorf("%w: %s: %w", models.ErrMetadata, path, info.Err)
	}

	return fromFields(info)
}

// Close stops the exiftool process.
func (r *ExiftoolReader) Close() error {
	return r.et.Close()
}

func fromFields(info exiftool.FileMetadata) (Metadata, error) {
	var timestamp string
	for _, key := range []string{"CreateDate", "DateTimeOriginal", "ModifyDate"} {
		if s, err := info.GetString(key); err == nil && s != "" {
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

	md := Metadata{Date: date}

	lon, lonOK := fieldAxis(info, "GPSLongitude", "GPSLongitudeRef")
	lat, latOK := fieldAxis(info, "GPSLatitude", "GPSLatitudeRef")
	if lonOK && latOK {
		md.Coordinates = &models.Coordinates{Longitude: lon, Latitude: lat}
	}

	return md, nil
}

func fieldAxis(info exiftool.FileMetadata, valueKey, refKey string) (float64, bool) {
	ref, err := info.GetString(refKey)
	if err != nil || ref == "" {
		return 0, false
	}
	v, err := info.GetFloat(valueKey)
	if err != nil {
		return 0, false
	}
	// Composite GPS tags may already carry a sign; the reference decides it.
	return DecimalDegrees(math.Abs(v), 0, 0, ref), true
}

package metadata

import (
	"fmt"
	"math"
	"strings"

	"github.com/raphaelgruber/photo-import/internal/models"
)

// CaptureDate turns an EXIF timestamp ("2021:03:15 10:22:00") into "2021-03-15".
func CaptureDate(timestamp string) (string, error) {
	timestamp = strings.TrimSpace(timestamp)
	if len(timestamp) < 10 {
		return "", fmt.Errorf("%w: malformed capture timestamp %q", models.ErrMetadata, timestamp)
	}
	return strings.ReplaceAll(timestamp[:10], ":", "-"), nil
}

// DecimalDegrees converts degrees/minutes/seconds and a hemisphere reference
// to signed decimal degrees rounded to 6 places.
// West and South references (any case) are negative.
func DecimalDegrees(degrees, minutes, seconds float64, ref string) float64 {
	value := degrees + minutes/60 + seconds/3600
	if isNegativeRef(ref) {
		value = -value
	}
	// math.Round rounds half away from zero
	return math.Round(value*1e6) / 1e6
}

func isNegativeRef(ref string) bool {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	return strings.HasPrefix(ref, "W") || strings.HasPrefix(ref, "S")
}

package photos

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

// Thumbnail bounding box for listing galleries.
const (
	thumbWidth  = 480
	thumbHeight = 360
)

// MaxPhotoBytes caps a single uploaded photo.
const MaxPhotoBytes = 10 << 20 // 10 MiB

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	// Note: SVG is intentionally excluded due to XSS risk without sanitization
}

var allowedMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Processed is the result of preparing one uploaded photo.
type Processed struct {
	Original  []byte
	Thumbnail []byte
	Width     int
	Height    int
	// GPS coordinates from EXIF, nil when absent. Used to prefill the
	// listing's location; the owner can always override.
	Latitude  *float64
	Longitude *float64
}

// Validate checks the filename extension and the first bytes against a
// whitelist of photo types. Returns the detected mime or an error.
func Validate(filename string, head []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", errors.New("only JPG, JPEG, PNG, GIF and WEBP photos are supported")
	}

	detected := http.DetectContentType(head)

	// Block obvious scriptable types regardless of extension
	if strings.HasPrefix(detected, "text/html") || strings.HasPrefix(detected, "application/xhtml") {
		return "", errors.New("invalid file type: HTML content is not allowed")
	}
	if strings.HasPrefix(detected, "text/xml") || strings.HasPrefix(detected, "application/xml") || detected == "image/svg+xml" {
		// Block SVG/XML until sanitizer is available
		return "", errors.New("SVG/XML uploads are not supported")
	}

	if detected == "application/octet-stream" && allowedExt[ext] {
		return detected, nil
	}

	if allowedMime[detected] {
		return detected, nil
	}

	return "", errors.New("unsupported file type")
}

// Process decodes an uploaded photo, records its dimensions, renders a
// thumbnail and pulls GPS coordinates out of the EXIF block if present.
func Process(filename string, data []byte) (*Processed, error) {
	if len(data) > MaxPhotoBytes {
		return nil, fmt.Errorf("photo exceeds the %d MB limit", MaxPhotoBytes>>20)
	}
	if _, err := Validate(filename, headOf(data)); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	bounds := img.Bounds()
	processed := &Processed{
		Original: data,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}

	thumb := imaging.Fit(img, thumbWidth, thumbHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(82)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	processed.Thumbnail = buf.Bytes()

	processed.Latitude, processed.Longitude = extractGPS(data)

	return processed, nil
}

// extractGPS reads EXIF GPS coordinates. Photos without EXIF are common
// and not an error.
func extractGPS(data []byte) (*float64, *float64) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}

	lat, long, err := x.LatLong()
	if err != nil {
		log.Debugf("no GPS data in photo: %v", err)
		return nil, nil
	}
	return &lat, &long
}

func headOf(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}

// Package media holds image post-processing for stored uploads.
package media

import (
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp"
)

// ThumbWidth is the fixed thumbnail width; height follows the aspect ratio.
const ThumbWidth = 320

// CanThumbnail reports whether the extension is a format the registered
// decoders handle. heic/avif are accepted for storage but not decodable
// here, so they simply get no thumbnail.
func CanThumbnail(ext string) bool {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg", "png", "gif", "webp", "bmp", "tif", "tiff":
		return true
	default:
		return false
	}
}

// GenerateThumbnail renders a ThumbWidth-wide thumbnail of src into dst.
// The dst extension decides the encoded format.
func GenerateThumbnail(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, ThumbWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, dst)
}

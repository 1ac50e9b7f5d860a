package schema

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest reference image accepted.
const MaxImageSize = 10 * 1024 * 1024

var imageMIMEs = []string{"image/jpeg", "image/png", "image/gif", "image/bmp", "image/webp"}

// ValidateImageData checks size and magic bytes and returns the detected
// MIME type.
func ValidateImageData(data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", newValidationError("image", "Image file too large (max 10MB)")
	}
	if len(data) < 4 {
		return "", newValidationError("image", "Invalid image data")
	}

	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range imageMIMEs {
			if m.Is(allowed) {
				return allowed, nil
			}
		}
	}
	return "", newValidationError("image", fmt.Sprintf("Invalid image format (%s)", detected.String()))
}

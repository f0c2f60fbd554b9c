package sampler

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
)

const jpegQuality = 90

// writeJPEG persists one frame. Writes are not transactional: a failure
// mid-encode leaves a partial file in place, matching the run-level
// no-rollback policy.
func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}

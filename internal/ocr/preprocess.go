package ocr

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
)

// prepareImage writes a grayscale, possibly upscaled copy of the image to a
// temp file and returns its path with a cleanup func. Low-resolution phone
// photos OCR noticeably better after upscaling.
func (e *TesseractEngine) prepareImage(path string) (string, func(), error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("error opening image: %w", err)
	}

	gray := imaging.Grayscale(img)
	if gray.Bounds().Dy() < e.minHeight {
		gray = imaging.Resize(gray, 0, e.minHeight, imaging.Lanczos)
	}

	tmp, err := os.CreateTemp("", "receipt-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("error creating temp image: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		e.removeTemp(tmpPath)
		return "", nil, fmt.Errorf("error closing temp image: %w", err)
	}

	if err := imaging.Save(gray, tmpPath); err != nil {
		e.removeTemp(tmpPath)
		return "", nil, fmt.Errorf("error saving preprocessed image: %w", err)
	}

	return tmpPath, func() { e.removeTemp(tmpPath) }, nil
}

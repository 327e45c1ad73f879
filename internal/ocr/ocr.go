// Package ocr wraps the Tesseract engine behind a small interface so the
// review flow can be tested without an installed OCR runtime.
package ocr

import "context"

// Engine recognizes text in an image file. Implementations must treat a
// recognition failure as recoverable: the caller proceeds with empty text.
type Engine interface {
	// Recognize returns the recognized text for the image at path.
	Recognize(ctx context.Context, path string) (string, error)
}

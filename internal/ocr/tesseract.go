package ocr

import (
	"context"
	"fmt"
	"os"

	"hyeonwoo/receipt-ledger/internal/logging"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs Tesseract over receipt images. It tries the primary
// language profile first and falls back to the secondary one, returning empty
// text when every profile fails.
type TesseractEngine struct {
	profiles   [][]string
	preprocess bool
	minHeight  int
	logger     logging.Logger
}

// Options configures the Tesseract engine.
type Options struct {
	// Languages is the primary language profile, e.g. ["kor", "eng"].
	Languages []string
	// FallbackLanguages is tried when the primary profile fails.
	FallbackLanguages []string
	// Preprocess enables grayscale conversion and upscaling before OCR.
	Preprocess bool
	// MinHeight is the pixel height below which images are upscaled.
	MinHeight int
}

// NewTesseractEngine builds the engine. Profiles with no languages are
// dropped; at least one profile must remain.
func NewTesseractEngine(opts Options, logger logging.Logger) (*TesseractEngine, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var profiles [][]string
	for _, p := range [][]string{opts.Languages, opts.FallbackLanguages} {
		if len(p) > 0 {
			profiles = append(profiles, p)
		}
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no OCR language profiles configured")
	}

	minHeight := opts.MinHeight
	if minHeight <= 0 {
		minHeight = 800
	}

	return &TesseractEngine{
		profiles:   profiles,
		preprocess: opts.Preprocess,
		minHeight:  minHeight,
		logger:     logger,
	}, nil
}

// Recognize OCRs the image, trying each language profile in order. The error
// of the last profile is returned only when all profiles fail; callers are
// expected to degrade to empty text.
func (e *TesseractEngine) Recognize(ctx context.Context, path string) (string, error) {
	input := path
	if e.preprocess {
		prepared, cleanup, err := e.prepareImage(path)
		if err != nil {
			// Preprocessing is an optimization; OCR the original on failure.
			e.logger.WithError(err).WithField("image", path).Debug("Preprocessing failed, using original image")
		} else {
			input = prepared
			defer cleanup()
		}
	}

	var lastErr error
	for _, langs := range e.profiles {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := e.recognizeWith(input, langs)
		if err != nil {
			e.logger.WithError(err).WithField("languages", langs).Debug("OCR profile failed")
			lastErr = err
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("all OCR language profiles failed: %w", lastErr)
}

func (e *TesseractEngine) recognizeWith(path string, langs []string) (string, error) {
	client := gosseract.NewClient()
	defer func() {
		if err := client.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close tesseract client")
		}
	}()

	if err := client.SetLanguage(langs...); err != nil {
		return "", fmt.Errorf("error setting OCR language: %w", err)
	}
	// Receipts are a single uniform block of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("error setting page segmentation mode: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("error setting OCR image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("error recognizing text: %w", err)
	}
	return text, nil
}

// removeTemp deletes a preprocessed temp file, logging instead of failing.
func (e *TesseractEngine) removeTemp(path string) {
	if err := os.Remove(path); err != nil {
		e.logger.WithError(err).WithField("file", path).Debug("Failed to remove temp image")
	}
}

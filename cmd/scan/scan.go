// Package scan provides a one-shot extraction command for trying the
// heuristics against a receipt image or saved OCR text without Discord.
package scan

import (
	"fmt"
	"os"

	"hyeonwoo/receipt-ledger/cmd/root"
	"hyeonwoo/receipt-ledger/internal/extract"
	"hyeonwoo/receipt-ledger/internal/models"
	"hyeonwoo/receipt-ledger/internal/ocr"

	"github.com/spf13/cobra"
)

var (
	imagePath string
	textPath  string
)

// Cmd represents the scan command.
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Run OCR and field extraction on a single receipt",
	Long: `Scan OCRs one image (or reads already-recognized text from a file) and
prints the category, amount and timestamp the heuristics would guess for it.`,
	RunE: scanFunc,
}

func init() {
	Cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Receipt image to OCR")
	Cmd.Flags().StringVarP(&textPath, "text", "t", "", "File with already-recognized text")
	Cmd.MarkFlagsOneRequired("image", "text")
	Cmd.MarkFlagsMutuallyExclusive("image", "text")
}

func scanFunc(cmd *cobra.Command, args []string) error {
	text, err := recognize(cmd)
	if err != nil {
		return err
	}

	c, closeAI, err := root.BuildClassifier(cmd.Context())
	if err != nil {
		return err
	}
	if closeAI != nil {
		defer func() {
			if err := closeAI(); err != nil {
				root.Log.WithError(err).Warn("Failed to close AI client")
			}
		}()
	}

	category := c.Categorize(cmd.Context(), text)
	amount := extract.Amount(text)
	when := extract.DateTime(text)

	fmt.Printf("category: %s\n", category)
	if amount != nil {
		fmt.Printf("amount:   %d\n", *amount)
	} else {
		fmt.Println("amount:   (none)")
	}
	if when != nil {
		fmt.Printf("datetime: %s\n", when.Format(models.DateTimeLayout))
	} else {
		fmt.Println("datetime: (none)")
	}
	return nil
}

func recognize(cmd *cobra.Command) (string, error) {
	if textPath != "" {
		data, err := os.ReadFile(textPath)
		if err != nil {
			return "", fmt.Errorf("error reading text file: %w", err)
		}
		return string(data), nil
	}

	cfg := root.Cfg
	engine, err := ocr.NewTesseractEngine(ocr.Options{
		Languages:         cfg.OCR.Languages,
		FallbackLanguages: cfg.OCR.FallbackLanguages,
		Preprocess:        cfg.OCR.Preprocess,
		MinHeight:         cfg.OCR.MinHeight,
	}, root.Log)
	if err != nil {
		return "", err
	}

	text, err := engine.Recognize(cmd.Context(), imagePath)
	if err != nil {
		root.Log.WithError(err).Warn("OCR failed, extraction will see empty text")
		return "", nil
	}
	return text, nil
}

// Package serve runs the Discord bot.
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hyeonwoo/receipt-ledger/cmd/root"
	"hyeonwoo/receipt-ledger/internal/bot"
	"hyeonwoo/receipt-ledger/internal/ledger"
	"hyeonwoo/receipt-ledger/internal/ocr"
	"hyeonwoo/receipt-ledger/internal/review"
	"hyeonwoo/receipt-ledger/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and process receipt DMs until interrupted",
	RunE:  serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) error {
	cfg := root.Cfg
	if cfg.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN must be set")
	}

	writer, err := ledger.NewWriter(cfg.Data.Directory, root.Log)
	if err != nil {
		return fmt.Errorf("error preparing data directory: %w", err)
	}

	engine, err := ocr.NewTesseractEngine(ocr.Options{
		Languages:         cfg.OCR.Languages,
		FallbackLanguages: cfg.OCR.FallbackLanguages,
		Preprocess:        cfg.OCR.Preprocess,
		MinHeight:         cfg.OCR.MinHeight,
	}, root.Log)
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

	service := review.NewService(engine, c, store.NewPendingStore(), writer, root.Log)

	b, err := bot.New(cfg.Discord.Token, service,
		time.Duration(cfg.Dedup.WindowSeconds)*time.Second, root.Log)
	if err != nil {
		return err
	}
	if err := b.Open(); err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close Discord session")
		}
	}()

	root.Log.WithField("data_dir", cfg.Data.Directory).Info("Bot is running, press Ctrl+C to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	root.Log.Info("Shutting down")
	return nil
}

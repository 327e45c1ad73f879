// Package root contains the root command for the application.
package root

import (
	"context"

	"hyeonwoo/receipt-ledger/internal/classifier"
	"hyeonwoo/receipt-ledger/internal/config"
	"hyeonwoo/receipt-ledger/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands, reconfigured from the
	// loaded config before any subcommand runs.
	Log = logging.GetLogger()

	// Cfg is the configuration shared by all commands.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "receipt-ledger",
		Short: "A Discord bot that turns receipt photos into CSV ledger rows.",
		Long: `receipt-ledger receives receipt images over Discord DM, recognizes their
text with Tesseract, guesses the spending category, amount and timestamp, and
appends user-confirmed records to a CSV ledger.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Log.Info("Welcome to receipt-ledger!")
			Log.Info("Use --help to see available commands")
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Initialize()
			if err != nil {
				return err
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			logging.SetDefault(Log)
			return nil
		},
	}
)

// BuildClassifier assembles the classification strategy chain from the loaded
// configuration: vendor map first, then keyword scoring, then the optional
// Gemini fallback. The returned closer is non-nil when an AI client was
// dialed.
func BuildClassifier(ctx context.Context) (*classifier.Classifier, func() error, error) {
	rules, err := classifier.LoadVendorRules(Cfg.Data.VendorMapFile, Log)
	if err != nil {
		return nil, nil, err
	}
	categories := classifier.LoadCategories(Cfg.Data.CategoryFile, Log)

	strategies := []classifier.Strategy{
		classifier.NewVendorMapStrategy(rules, Log),
		classifier.NewKeywordStrategy(categories, Log),
	}

	var closer func() error
	if Cfg.AI.Enabled {
		client, err := classifier.NewGeminiClient(ctx, Cfg.AI.APIKey, Cfg.AI.Model, Log)
		if err != nil {
			return nil, nil, err
		}
		closer = client.Close
		strategies = append(strategies, classifier.NewGeminiStrategy(
			client, categories, timeoutSeconds(Cfg.AI.TimeoutSeconds), Log))
	}

	return classifier.New(Log, strategies...), closer, nil
}

// Package config provides Viper-based hierarchical configuration management
// with .env loading for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Discord struct {
		Token string `mapstructure:"token" yaml:"-"` // never serialize the token
	} `mapstructure:"discord" yaml:"discord"`

	Data struct {
		Directory     string `mapstructure:"directory" yaml:"directory"`
		VendorMapFile string `mapstructure:"vendor_map_file" yaml:"vendor_map_file"`
		CategoryFile  string `mapstructure:"category_file" yaml:"category_file"`
	} `mapstructure:"data" yaml:"data"`

	OCR struct {
		Languages         []string `mapstructure:"languages" yaml:"languages"`
		FallbackLanguages []string `mapstructure:"fallback_languages" yaml:"fallback_languages"`
		Preprocess        bool     `mapstructure:"preprocess" yaml:"preprocess"`
		MinHeight         int      `mapstructure:"min_height" yaml:"min_height"`
	} `mapstructure:"ocr" yaml:"ocr"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // never serialize the key
	} `mapstructure:"ai" yaml:"ai"`

	Dedup struct {
		WindowSeconds int `mapstructure:"window_seconds" yaml:"window_seconds"`
	} `mapstructure:"dedup" yaml:"dedup"`
}

// LedgerPath returns the location of the ledger CSV inside the data directory.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.Data.Directory, "labels.csv")
}

// UploadDir returns the directory where incoming receipt images are stored.
func (c *Config) UploadDir() string {
	return filepath.Join(c.Data.Directory, "uploads")
}

// LoadEnv loads variables from a .env file when one exists in the working
// directory or the project root. Missing files are not an error.
func LoadEnv() {
	envOnce.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// Initialize builds the configuration from defaults, an optional config.yaml
// and RECEIPT_-prefixed environment variables, in increasing precedence.
func Initialize() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.receipt-ledger")
	v.AddConfigPath(".receipt-ledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RECEIPT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file should not stop the bot; defaults and env
			// variables still apply.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Secrets come from unprefixed environment variables.
	if err := v.BindEnv("discord.token", "DISCORD_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind DISCORD_TOKEN environment variable: %v\n", err)
	}
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("data.directory", "DATA_DIR"); err != nil {
		fmt.Printf("Warning: failed to bind DATA_DIR environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.directory", "./data")
	v.SetDefault("data.vendor_map_file", "vendor_map.csv")
	v.SetDefault("data.category_file", "categories.yaml")

	v.SetDefault("ocr.languages", []string{"kor", "eng"})
	v.SetDefault("ocr.fallback_languages", []string{"eng"})
	v.SetDefault("ocr.preprocess", true)
	v.SetDefault("ocr.min_height", 800)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout_seconds", 10)

	v.SetDefault("dedup.window_seconds", 10)
}

func validate(c *Config) error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Data.Directory == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if len(c.OCR.Languages) == 0 {
		return fmt.Errorf("at least one OCR language profile is required")
	}
	if c.Dedup.WindowSeconds <= 0 {
		return fmt.Errorf("dedup window must be positive, got %d", c.Dedup.WindowSeconds)
	}
	if c.AI.Enabled && c.AI.APIKey == "" {
		return fmt.Errorf("ai.enabled requires GEMINI_API_KEY")
	}
	return nil
}

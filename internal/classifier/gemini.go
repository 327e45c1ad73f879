package classifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIClient abstracts the generative model so the strategy can be tested
// without network access.
type AIClient interface {
	// GuessCategory returns a category name for the receipt text, chosen from
	// the allowed list, or an empty string when the model cannot decide.
	GuessCategory(ctx context.Context, text string, allowed []string) (string, error)
}

// GeminiClient implements AIClient on the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger logging.Logger
}

// NewGeminiClient dials the Gemini API with the given key and model name.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger logging.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GuessCategory prompts the model to pick one category for the receipt text.
// Any answer outside the allowed list collapses to "no decision".
func (c *GeminiClient) GuessCategory(ctx context.Context, text string, allowed []string) (string, error) {
	prompt := fmt.Sprintf(
		"The following is OCR text from a Korean store receipt. Answer with exactly one "+
			"category name from this list and nothing else: %s\n\nReceipt text:\n%s",
		strings.Join(allowed, ", "), text)

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("error generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			answer.WriteString(string(t))
		}
	}
	got := strings.TrimSpace(answer.String())
	for _, name := range allowed {
		if strings.EqualFold(got, name) {
			return name, nil
		}
	}
	c.logger.WithField("answer", got).Debug("Gemini returned a category outside the allowed list")
	return "", nil
}

// GeminiStrategy classifies with an AI model as a last resort before the
// uncategorized sentinel. A nil client disables the strategy.
type GeminiStrategy struct {
	client  AIClient
	allowed []string
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiStrategy restricts the model's answers to the names in the given
// category table.
func NewGeminiStrategy(client AIClient, categories []models.CategoryConfig, timeout time.Duration, logger logging.Logger) *GeminiStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	allowed := make([]string, 0, len(categories))
	for _, c := range categories {
		allowed = append(allowed, c.Name)
	}
	return &GeminiStrategy{client: client, allowed: allowed, timeout: timeout, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

// Categorize asks the model for a category. Model errors are logged and
// reported as "no match" so classification always completes.
func (s *GeminiStrategy) Categorize(ctx context.Context, text string) (string, bool, error) {
	if s.client == nil || strings.TrimSpace(text) == "" {
		return "", false, nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	category, err := s.client.GuessCategory(ctx, text, s.allowed)
	if err != nil {
		s.logger.WithError(err).WithField("strategy", s.Name()).Warn("AI classification failed")
		return "", false, nil
	}
	if category == "" {
		return "", false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "category", Value: category},
	).Debug("Classified by Gemini")
	return category, true, nil
}

package classifier

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAIClient struct {
	category string
	err      error
	calls    int
}

func (f *fakeAIClient) GuessCategory(ctx context.Context, text string, allowed []string) (string, error) {
	f.calls++
	return f.category, f.err
}

func TestClassifierVendorMapPrecedence(t *testing.T) {
	// Text matches both a vendor rule and a built-in keyword for a different
	// category; the vendor rule must win.
	rules := []models.VendorRule{
		{Pattern: regexp.MustCompile(`(?i)스타벅스`), Category: "법인카페", Vendor: "스타벅스"},
	}
	c := New(&logging.MockLogger{},
		NewVendorMapStrategy(rules, &logging.MockLogger{}),
		NewKeywordStrategy(DefaultCategories(), &logging.MockLogger{}),
	)

	assert.Equal(t, "법인카페", c.Categorize(context.Background(), "스타벅스 아메리카노"))
}

func TestClassifierKeywordFallback(t *testing.T) {
	c := New(&logging.MockLogger{},
		NewVendorMapStrategy(nil, &logging.MockLogger{}),
		NewKeywordStrategy(DefaultCategories(), &logging.MockLogger{}),
	)

	assert.Equal(t, "카페", c.Categorize(context.Background(), "스타벅스 아메리카노"))
	assert.Equal(t, "편의점", c.Categorize(context.Background(), "GS25 편의점"))
}

func TestClassifierUncategorizedSentinel(t *testing.T) {
	c := New(&logging.MockLogger{},
		NewVendorMapStrategy(nil, &logging.MockLogger{}),
		NewKeywordStrategy(DefaultCategories(), &logging.MockLogger{}),
	)

	assert.Equal(t, models.CategoryUncategorized, c.Categorize(context.Background(), "동네 문방구 영수증"))
	assert.Equal(t, models.CategoryUncategorized, c.Categorize(context.Background(), ""))
}

func TestClassifierNormalizesInput(t *testing.T) {
	c := New(&logging.MockLogger{}, NewKeywordStrategy(DefaultCategories(), &logging.MockLogger{}))

	// Mixed case and messy whitespace still match the lowercase keyword table.
	assert.Equal(t, "편의점", c.Categorize(context.Background(), "  GS25\n\n강남점  "))
}

func TestGeminiStrategyAsLastResort(t *testing.T) {
	client := &fakeAIClient{category: "카페"}
	c := New(&logging.MockLogger{},
		NewKeywordStrategy(DefaultCategories(), &logging.MockLogger{}),
		NewGeminiStrategy(client, DefaultCategories(), 0, &logging.MockLogger{}),
	)

	// Keyword strategy answers first; the model is never consulted.
	assert.Equal(t, "편의점", c.Categorize(context.Background(), "gs25"))
	assert.Zero(t, client.calls)

	// Nothing matches keywords, so the model decides.
	assert.Equal(t, "카페", c.Categorize(context.Background(), "이름 모를 가게"))
	assert.Equal(t, 1, client.calls)
}

func TestGeminiStrategyErrorFallsThrough(t *testing.T) {
	client := &fakeAIClient{err: errors.New("quota exceeded")}
	c := New(&logging.MockLogger{},
		NewGeminiStrategy(client, DefaultCategories(), 0, &logging.MockLogger{}),
	)

	assert.Equal(t, models.CategoryUncategorized, c.Categorize(context.Background(), "이름 모를 가게"))
}

func TestGeminiStrategySkipsEmptyText(t *testing.T) {
	client := &fakeAIClient{category: "카페"}
	strategy := NewGeminiStrategy(client, DefaultCategories(), 0, &logging.MockLogger{})

	_, found, err := strategy.Categorize(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, client.calls)
}

package classifier

import (
	"context"
	"testing"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"
	"hyeonwoo/receipt-ledger/internal/textutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordStrategyName(t *testing.T) {
	strategy := NewKeywordStrategy(nil, &logging.MockLogger{})
	assert.Equal(t, "Keyword", strategy.Name())
}

func TestKeywordStrategyCategorize(t *testing.T) {
	strategy := NewKeywordStrategy(DefaultCategories(), &logging.MockLogger{})

	tests := []struct {
		name             string
		text             string
		expectedCategory string
		expectedFound    bool
	}{
		{
			name:             "cafe vendor",
			text:             "스타벅스 아메리카노",
			expectedCategory: "카페",
			expectedFound:    true,
		},
		{
			name:             "convenience store",
			text:             "GS25 편의점",
			expectedCategory: "편의점",
			expectedFound:    true,
		},
		{
			name:             "case insensitive latin keyword",
			text:             "cgv 용산점 2매",
			expectedCategory: "문화/여가",
			expectedFound:    true,
		},
		{
			name:             "higher score wins over earlier category",
			text:             "버거킹 와퍼 버거 세트", // 식당 scores 2 distinct keywords
			expectedCategory: "식당",
			expectedFound:    true,
		},
		{
			name:          "no keyword at all",
			text:          "동네 문방구",
			expectedFound: false,
		},
		{
			name:          "empty text",
			text:          "",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, found, err := strategy.Categorize(context.Background(), textutils.Normalize(tt.text))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedCategory, category)
			}
		})
	}
}

func TestKeywordStrategyTieBreaksToEarlierCategory(t *testing.T) {
	categories := []models.CategoryConfig{
		{Name: "first", Keywords: []string{"alpha"}},
		{Name: "second", Keywords: []string{"beta"}},
	}
	strategy := NewKeywordStrategy(categories, &logging.MockLogger{})

	category, found, err := strategy.Categorize(context.Background(), "alpha beta")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", category)
}

func TestKeywordStrategyCountsDistinctKeywordsOnce(t *testing.T) {
	categories := []models.CategoryConfig{
		{Name: "repeat", Keywords: []string{"coffee"}},
		{Name: "pair", Keywords: []string{"tea", "scone"}},
	}
	strategy := NewKeywordStrategy(categories, &logging.MockLogger{})

	// "coffee" occurs three times but scores one point; "pair" scores two.
	category, found, err := strategy.Categorize(context.Background(), "coffee coffee coffee tea scone")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "pair", category)
}

func TestLoadCategoriesFallsBackToBuiltins(t *testing.T) {
	categories := LoadCategories("does/not/exist.yaml", &logging.MockLogger{})
	assert.Equal(t, DefaultCategories(), categories)
}

func TestDefaultCategoriesOrderIsStable(t *testing.T) {
	categories := DefaultCategories()
	require.NotEmpty(t, categories)
	assert.Equal(t, "편의점", categories[0].Name)
	assert.Equal(t, "카페", categories[1].Name)
}

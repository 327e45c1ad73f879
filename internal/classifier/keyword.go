package classifier

import (
	"context"
	"os"
	"strings"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"

	"gopkg.in/yaml.v3"
)

// KeywordStrategy scores each category by how many of its keywords occur as
// substrings of the text. One point per distinct keyword, not per occurrence.
// Ties resolve to the category that appears first in the table, so the table
// order is part of the contract.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy builds the strategy over an ordered category table.
func NewKeywordStrategy(categories []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordStrategy{categories: categories, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize returns the first category reaching the maximum keyword score.
// A zero top score means no match.
func (s *KeywordStrategy) Categorize(ctx context.Context, text string) (string, bool, error) {
	bestScore := 0
	bestCategory := ""

	for _, category := range s.categories {
		score := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestCategory = category.Name
		}
	}

	if bestScore == 0 {
		return "", false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "category", Value: bestCategory},
		logging.Field{Key: "score", Value: bestScore},
	).Debug("Classified by keyword scoring")
	return bestCategory, true, nil
}

// DefaultCategories is the built-in ordered category table. The order is load
// bearing for tie-breaking and must not be rearranged casually.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: "편의점", Keywords: []string{"gs25", "cu", "세븐일레븐", "ministop", "emart24", "이마트24", "이마트에브리데이", "emarteveryday"}},
		{Name: "카페", Keywords: []string{"스타벅스", "이디야커피", "투썸플레이스", "할리스", "메가MGC커피", "메가커피", "컴포즈커피", "빽다방", "더벤티", "폴바셋", "파스쿠찌", "드롭탑", "커피빈", "공차", "쥬씨", "달콤", "요거프레소", "더카페", "테라로사", "카페베네", "커피"}},
		{Name: "식당", Keywords: []string{"식당", "분식", "치킨", "피자", "족발", "냉면", "칼국수", "김밥", "국밥", "한솥", "버거", "맥도날드", "롯데리아", "버거킹"}},
		{Name: "마트", Keywords: []string{"이마트", "홈플러스", "롯데마트", "노브랜드", "코스트코", "마트", "슈퍼"}},
		{Name: "배달", Keywords: []string{"배달의민족", "쿠팡이츠", "요기요", "딜리버리"}},
		{Name: "교통", Keywords: []string{"버스", "지하철", "택시", "코레일", "철도", "고속", "교통", "티머니"}},
		{Name: "의료/약국", Keywords: []string{"약국", "병원", "의원", "치과", "의무", "메디칼", "처방"}},
		{Name: "쇼핑", Keywords: []string{"무신사", "쿠팡", "네이버페이", "11번가", "지마켓", "옥션", "마켓컬리", "ssg", "위메프", "티몬", "롯데온"}},
		{Name: "문화/여가", Keywords: []string{"영화", "CGV", "메가박스", "롯데시네마", "넷플릭스", "뮤지컬", "공연", "노래방"}},
	}
}

// LoadCategories reads the ordered category table from a YAML file, falling
// back to the built-in table when the file does not exist or holds nothing.
func LoadCategories(path string, logger logging.Logger) []models.CategoryConfig {
	if logger == nil {
		logger = logging.GetLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Warn("Failed to read categories file, using built-in table")
		}
		return DefaultCategories()
	}

	var cfg models.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.WithError(err).WithField("file", path).Warn("Failed to parse categories file, using built-in table")
		return DefaultCategories()
	}
	if len(cfg.Categories) == 0 {
		logger.WithField("file", path).Warn("Categories file defines no categories, using built-in table")
		return DefaultCategories()
	}

	logger.WithField("count", len(cfg.Categories)).Info("Loaded categories")
	return cfg.Categories
}

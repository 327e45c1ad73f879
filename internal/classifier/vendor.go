package classifier

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/gocarina/gocsv"
)

// VendorMapStrategy matches text against an ordered list of vendor alias
// patterns. It runs before every heuristic and the first matching rule wins.
type VendorMapStrategy struct {
	rules  []models.VendorRule
	logger logging.Logger
}

// NewVendorMapStrategy wraps an already-compiled rule list.
func NewVendorMapStrategy(rules []models.VendorRule, logger logging.Logger) *VendorMapStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &VendorMapStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *VendorMapStrategy) Name() string {
	return "VendorMap"
}

// Rules exposes the compiled rule list, mainly for tests and diagnostics.
func (s *VendorMapStrategy) Rules() []models.VendorRule {
	return s.rules
}

// Categorize returns the category of the first rule whose pattern matches
// anywhere in the text.
func (s *VendorMapStrategy) Categorize(ctx context.Context, text string) (string, bool, error) {
	for _, rule := range s.rules {
		if rule.Pattern.MatchString(text) {
			s.logger.WithFields(
				logging.Field{Key: "strategy", Value: s.Name()},
				logging.Field{Key: "vendor", Value: rule.Vendor},
				logging.Field{Key: "category", Value: rule.Category},
			).Debug("Matched vendor alias pattern")
			return rule.Category, true, nil
		}
	}
	return "", false, nil
}

// LoadVendorRules reads vendor_map.csv (columns vendor, category, alias_regex)
// and compiles each alias regex case-insensitively, preserving file order. A
// row with an invalid regex is skipped with a warning; it never aborts the
// load. A missing file yields an empty rule list.
func LoadVendorRules(path string, logger logging.Logger) ([]models.VendorRule, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("file", path).Debug("No vendor map file, vendor matching disabled")
			return nil, nil
		}
		return nil, fmt.Errorf("error opening vendor map: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close vendor map file")
		}
	}()

	var rows []models.VendorMapRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing vendor map: %w", err)
	}

	rules := make([]models.VendorRule, 0, len(rows))
	for _, row := range rows {
		pattern, err := regexp.Compile("(?i)" + row.AliasRegex)
		if err != nil {
			logger.WithError(err).WithFields(
				logging.Field{Key: "vendor", Value: row.Vendor},
				logging.Field{Key: "pattern", Value: row.AliasRegex},
			).Warn("Skipping vendor map row with invalid regex")
			continue
		}
		rules = append(rules, models.VendorRule{
			Pattern:  pattern,
			Category: row.Category,
			Vendor:   row.Vendor,
		})
	}

	logger.WithField("count", len(rules)).Info("Loaded vendor map patterns")
	return rules, nil
}

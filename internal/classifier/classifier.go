package classifier

import (
	"context"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"
	"hyeonwoo/receipt-ledger/internal/textutils"
)

// Classifier runs its strategies in order and returns the first category any
// of them produces. Text is normalized once up front. When every strategy
// passes, the uncategorized sentinel is returned.
type Classifier struct {
	strategies []Strategy
	logger     logging.Logger
}

// New builds a classifier over an ordered strategy list.
func New(logger logging.Logger, strategies ...Strategy) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Classifier{strategies: strategies, logger: logger}
}

// Categorize classifies recognized receipt text. It never fails: strategy
// errors demote to the next strategy and an exhausted list yields the
// sentinel category.
func (c *Classifier) Categorize(ctx context.Context, text string) string {
	normalized := textutils.Normalize(text)

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, normalized)
		if err != nil {
			c.logger.WithError(err).WithField("strategy", strategy.Name()).Warn("Classification strategy failed")
			continue
		}
		if found {
			return category
		}
	}
	return models.CategoryUncategorized
}

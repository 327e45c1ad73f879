// Package classifier assigns a spending category to recognized receipt text
// using multiple methods, tried in order:
//  1. Vendor alias patterns from an external vendor_map.csv
//  2. Keyword scoring against an ordered category table
//  3. AI-based classification using a Gemini model as an optional fallback
package classifier

import "context"

// Strategy is one classification method. Strategies receive text that has
// already been normalized (lowercased, whitespace collapsed).
type Strategy interface {
	// Categorize attempts to classify the normalized text. The boolean
	// reports whether this strategy produced a category.
	Categorize(ctx context.Context, text string) (string, bool, error)

	// Name identifies the strategy in logs.
	Name() string
}

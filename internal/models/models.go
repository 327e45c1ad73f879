// Package models provides the data structures used throughout the application.
package models

import (
	"strconv"
	"time"
)

// DateTimeLayout is the canonical timestamp layout used in the ledger and in
// the correction form.
const DateTimeLayout = "2006-01-02 15:04:05"

// CategoryUncategorized is the sentinel category assigned when no heuristic
// produced a match and used as the fallback for blank corrections.
const CategoryUncategorized = "기타"

// Draft is an ephemeral receipt record awaiting user confirmation. It lives in
// the pending store between ingestion and confirm/correct.
type Draft struct {
	ID       string
	Filename string     // stored image name, extension preserved
	Category string     // classifier guess, overwritable by correction
	Amount   *int64     // whole currency units, nil when no amount was found
	When     *time.Time // nil when no date was found
	OCRText  string     // full recognized text, kept verbatim for audit
}

// LedgerRow is one persisted line of the CSV ledger.
type LedgerRow struct {
	ID          string `csv:"id"`
	Filename    string `csv:"filename"`
	Category    string `csv:"category"`
	Amount      string `csv:"amount"`   // empty when absent
	DateTime    string `csv:"datetime"` // empty when absent, DateTimeLayout otherwise
	OCRTextPath string `csv:"ocr_text_path"`
}

// FormatAmount renders an optional amount for the ledger, empty when absent.
func FormatAmount(amount *int64) string {
	if amount == nil {
		return ""
	}
	return strconv.FormatInt(*amount, 10)
}

// FormatWhen renders an optional timestamp for the ledger, empty when absent.
func FormatWhen(when *time.Time) string {
	if when == nil {
		return ""
	}
	return when.Format(DateTimeLayout)
}

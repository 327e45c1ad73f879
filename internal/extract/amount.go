// Package extract implements the receipt text heuristics: amount extraction
// and date/time extraction over OCR output.
package extract

import (
	"regexp"
	"strconv"

	"hyeonwoo/receipt-ledger/internal/textutils"
)

// amountPattern matches thousands-grouped numbers (12,345 or 12 345) and plain
// runs of four or more digits, optionally suffixed by a currency marker. The
// token must end at a word boundary: digits fused to trailing letters or
// Hangul (45600원짜리, 12345abc) are not candidates. RE2 has no lookahead and
// \b is ASCII-only, so the boundary is a consumed terminator class.
// Matching runs over normalized text, so the krw marker is lowercase.
var amountPattern = regexp.MustCompile(`(\d{1,3}(?:[,\s]\d{3})+|\d{4,})(?:\s*(?:원|krw|₩))?(?:[^0-9a-z_가-힣ㄱ-ㅎㅏ-ㅣ]|$)`)

var nonDigits = regexp.MustCompile(`[^\d]`)

// amountFloor separates plausible currency amounts from item counts and point
// balances. Candidates below it only win when nothing larger exists.
const amountFloor = 1000

// Amount scans text for currency-like numeric tokens and returns the best
// candidate: the largest value at or above the floor, falling back to the
// largest value overall. Returns nil when no token matched.
func Amount(text string) *int64 {
	t := textutils.Normalize(text)

	var candidates []int64
	for _, m := range amountPattern.FindAllStringSubmatch(t, -1) {
		digits := nonDigits.ReplaceAllString(m[1], "")
		val, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}
		candidates = append(candidates, val)
	}
	if len(candidates) == 0 {
		return nil
	}

	var best, bestAny int64 = -1, -1
	for _, v := range candidates {
		if v > bestAny {
			bestAny = v
		}
		if v >= amountFloor && v > best {
			best = v
		}
	}
	if best < 0 {
		best = bestAny
	}
	return &best
}

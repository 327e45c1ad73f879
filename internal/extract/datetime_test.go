package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected time.Time
	}{
		{
			name:     "full date with time",
			text:     "2025-11-13 14:05:30 결제완료",
			expected: time.Date(2025, 11, 13, 14, 5, 30, 0, time.Local),
		},
		{
			name:     "two digit year and dotted separators",
			text:     "25.3.2 13:00",
			expected: time.Date(2025, 3, 2, 13, 0, 0, 0, time.Local),
		},
		{
			name:     "slash separators",
			text:     "2024/01/05 방문",
			expected: time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "date without time defaults to midnight",
			text:     "거래일 2025-07-01",
			expected: time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "time printed before the date still pairs",
			text:     "09:45 승인 2025-02-14",
			expected: time.Date(2025, 2, 14, 9, 45, 0, 0, time.Local),
		},
		{
			name:     "time without seconds",
			text:     "2025-06-30 18:20",
			expected: time.Date(2025, 6, 30, 18, 20, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateTime(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestDateTimeAbsent(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no date at all", text: "합계 12,345원"},
		{name: "time alone is not enough", text: "14:05:30 결제"},
		{name: "invalid calendar date", text: "2025-13-40"},
		{name: "invalid time component", text: "2025-11-13 25:99"},
		{name: "empty text", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, DateTime(tt.text))
		})
	}
}

func TestDateTimeFirstMatchWins(t *testing.T) {
	// Two dates on one receipt: the left-most match of the first pattern is
	// the one that counts.
	got := DateTime("2025-01-02 재발행 원거래 2024-12-31")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local), *got)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int64
	}{
		{
			name:     "total with marker beats small point balance",
			text:     "합계 12,345원 포인트 50",
			expected: 12345,
		},
		{
			name:     "largest qualifying amount wins",
			text:     "소계 8,000 부가세 800 합계 8,800원",
			expected: 8800,
		},
		{
			name:     "plain digit run without marker",
			text:     "total 45600",
			expected: 45600,
		},
		{
			name:     "space-grouped thousands",
			text:     "금액 1 234 567",
			expected: 1234567,
		},
		{
			name:     "uppercase KRW marker",
			text:     "TOTAL 9,900 KRW",
			expected: 9900,
		},
		{
			name:     "won sign marker",
			text:     "₩15,000 결제",
			expected: 15000,
		},
		{
			name:     "all candidates below floor falls back to maximum",
			text:     "0,500 쿠폰", // grouped match parses to 500
			expected: 500,
		},
		{
			name:     "digit run fused to letters is skipped",
			text:     "합계 45,600원 코드98765abc",
			expected: 45600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amount(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestAmountAbsent(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no numeric tokens", text: "영수증 감사합니다"},
		{name: "empty text", text: ""},
		{name: "short digit runs only", text: "수량 2 포인트 50"},
		{name: "marker fused to following hangul", text: "45600원짜리"},
		{name: "digits fused to letters", text: "12345abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Amount(tt.text))
		})
	}
}

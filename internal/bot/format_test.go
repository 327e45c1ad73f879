package bot

import (
	"testing"
	"time"

	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomIDRoundTrip(t *testing.T) {
	action, id := parseCustomID(customID(actionConfirm, "abc123"))
	assert.Equal(t, actionConfirm, action)
	assert.Equal(t, "abc123", id)

	action, id = parseCustomID("revise:deadbeef")
	assert.Equal(t, actionRevise, action)
	assert.Equal(t, "deadbeef", id)

	// Garbage without a separator parses as an action with no id.
	action, id = parseCustomID("garbage")
	assert.Equal(t, "garbage", action)
	assert.Empty(t, id)
}

func TestFormatWon(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0원"},
		{999, "999원"},
		{1000, "1,000원"},
		{12345, "12,345원"},
		{1234567, "1,234,567원"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatWon(tt.amount))
	}
}

func TestDraftEmbed(t *testing.T) {
	amount := int64(12345)
	when := time.Date(2025, 11, 13, 14, 5, 30, 0, time.Local)
	draft := &models.Draft{
		ID:       "abc",
		Category: "카페",
		Amount:   &amount,
		When:     &when,
	}

	embed := draftEmbed(draft, "https://cdn.example/receipt.png")
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "카페", embed.Fields[0].Value)
	assert.Equal(t, "12,345원", embed.Fields[1].Value)
	assert.Equal(t, "2025-11-13 14:05:30", embed.Fields[2].Value)
	assert.Contains(t, embed.Fields[3].Value, "https://cdn.example/receipt.png")
}

func TestDraftEmbedAbsentFields(t *testing.T) {
	embed := draftEmbed(&models.Draft{ID: "abc", Category: models.CategoryUncategorized}, "u")
	assert.Equal(t, "?", embed.Fields[1].Value)
	assert.Equal(t, "?", embed.Fields[2].Value)
}

func TestReviewButtonsCarryDraftID(t *testing.T) {
	components := reviewButtons("abc123")
	require.Len(t, components, 1)
	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)

	confirm, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "confirm:abc123", confirm.CustomID)

	revise, ok := row.Components[1].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "revise:abc123", revise.CustomID)
}

func TestCorrectionModalPrefill(t *testing.T) {
	amount := int64(5000)
	when := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	draft := &models.Draft{ID: "abc", Category: "카페", Amount: &amount, When: &when}

	data := correctionModal(draft)
	assert.Equal(t, "correction:abc", data.CustomID)
	require.Len(t, data.Components, 3)

	category := data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	assert.Equal(t, "카페", category.Value)
	assert.True(t, category.Required)

	amountInput := data.Components[1].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	assert.Equal(t, "5000", amountInput.Value)

	whenInput := data.Components[2].(discordgo.ActionsRow).Components[0].(discordgo.TextInput)
	assert.Equal(t, "2025-01-01 10:00:00", whenInput.Value)
}

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "correction:abc",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: fieldCategory, Value: "식당"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: fieldAmount, Value: "7,700"},
			}},
		},
	}

	values := modalValues(data)
	assert.Equal(t, "식당", values[fieldCategory])
	assert.Equal(t, "7,700", values[fieldAmount])
}

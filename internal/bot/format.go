package bot

import (
	"fmt"
	"strconv"
	"strings"

	"hyeonwoo/receipt-ledger/internal/models"

	"github.com/bwmarrin/discordgo"
)

const (
	fieldCategory = "category"
	fieldAmount   = "amount"
	fieldDateTime = "datetime"
)

const embedColor = 0x2ecc71

// customID joins an action with the draft id it targets; parseCustomID splits
// it back apart. The draft id rides inside the component identity so the
// interaction handler needs no extra state.
func customID(action, id string) string {
	return action + ":" + id
}

func parseCustomID(s string) (action, id string) {
	action, id, _ = strings.Cut(s, ":")
	return action, id
}

// draftEmbed renders the guessed fields, with "?" standing in for anything
// the heuristics could not extract.
func draftEmbed(draft *models.Draft, sourceURL string) *discordgo.MessageEmbed {
	category := draft.Category
	if category == "" {
		category = "?"
	}
	amount := "?"
	if draft.Amount != nil {
		amount = formatWon(*draft.Amount)
	}
	when := "?"
	if draft.When != nil {
		when = draft.When.Format(models.DateTimeLayout)
	}

	return &discordgo.MessageEmbed{
		Title: "영수증 자동 추정 결과",
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "카테고리(추정)", Value: category},
			{Name: "금액(추정)", Value: amount, Inline: true},
			{Name: "일시(추정)", Value: when, Inline: true},
			{Name: "원본", Value: fmt.Sprintf("[파일보기](%s)", sourceURL)},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "확정(저장) 또는 수정 버튼을 눌러주세요.",
		},
	}
}

// reviewButtons builds the confirm/revise action row for a draft.
func reviewButtons(id string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "확정(저장)",
					Style:    discordgo.SuccessButton,
					CustomID: customID(actionConfirm, id),
				},
				discordgo.Button{
					Label:    "수정",
					Style:    discordgo.PrimaryButton,
					CustomID: customID(actionRevise, id),
				},
			},
		},
	}
}

// correctionModal prefills the form with the draft's current values so the
// user only edits what the heuristics got wrong.
func correctionModal(draft *models.Draft) *discordgo.InteractionResponseData {
	amount := ""
	if draft.Amount != nil {
		amount = strconv.FormatInt(*draft.Amount, 10)
	}
	when := ""
	if draft.When != nil {
		when = draft.When.Format(models.DateTimeLayout)
	}

	return &discordgo.InteractionResponseData{
		CustomID: customID(actionCorrection, draft.ID),
		Title:    "값 수정",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  fieldCategory,
					Label:     "카테고리",
					Style:     discordgo.TextInputShort,
					Value:     draft.Category,
					Required:  true,
					MaxLength: 30,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  fieldAmount,
					Label:     "금액(숫자)",
					Style:     discordgo.TextInputShort,
					Value:     amount,
					MaxLength: 12,
				},
			}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  fieldDateTime,
					Label:     "일시(YYYY-MM-DD HH:MM:SS)",
					Style:     discordgo.TextInputShort,
					Value:     when,
					MaxLength: 25,
				},
			}},
		},
	}
}

// formatWon renders an amount with thousands separators and the won suffix.
func formatWon(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := sb.String() + "원"
	if neg {
		out = "-" + out
	}
	return out
}

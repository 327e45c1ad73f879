package bot

import (
	"context"
	"errors"
	"strings"

	"hyeonwoo/receipt-ledger/internal/review"

	"github.com/bwmarrin/discordgo"
)

const (
	actionConfirm    = "confirm"
	actionRevise     = "revise"
	actionCorrection = "correction"
)

const (
	msgSaved          = "✅ 저장했습니다."
	msgSavedCorrected = "✅ 수정값으로 저장했습니다."
	msgSessionExpired = "세션이 만료되었습니다. 다시 시도해주세요."
	msgSaveFailed     = "저장 중 오류가 발생했습니다. 다시 시도해주세요."
)

// onMessageCreate ingests image attachments from direct messages. Everything
// else, including redeliveries inside the dedup window, is ignored.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID != "" {
		// DMs only.
		return
	}
	if b.dedup.SeenBefore(m.ID) {
		return
	}
	if len(m.Attachments) == 0 {
		return
	}

	ctx := context.Background()
	for _, att := range m.Attachments {
		if !strings.HasPrefix(att.ContentType, "image/") {
			continue
		}

		data, err := b.download(att.URL)
		if err != nil {
			b.logger.WithError(err).WithField("attachment", att.Filename).Error("Failed to download attachment")
			continue
		}

		draft, err := b.service.Ingest(ctx, att.Filename, data)
		if err != nil {
			b.logger.WithError(err).WithField("attachment", att.Filename).Error("Failed to ingest receipt")
			continue
		}

		_, err = s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{draftEmbed(draft, att.URL)},
			Components: reviewButtons(draft.ID),
		})
		if err != nil {
			b.logger.WithError(err).WithField("id", draft.ID).Error("Failed to send review message")
		}
	}
}

// onInteractionCreate routes button presses and modal submissions by the
// draft id embedded in the component custom id.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		action, id := parseCustomID(i.MessageComponentData().CustomID)
		switch action {
		case actionConfirm:
			b.handleConfirm(s, i, id)
		case actionRevise:
			b.handleRevise(s, i, id)
		}
	case discordgo.InteractionModalSubmit:
		action, id := parseCustomID(i.ModalSubmitData().CustomID)
		if action == actionCorrection {
			b.handleCorrection(s, i, id)
		}
	}
}

func (b *Bot) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, id string) {
	_, err := b.service.Confirm(context.Background(), id)
	switch {
	case errors.Is(err, review.ErrSessionExpired):
		b.respondEphemeral(s, i, msgSessionExpired)
	case err != nil:
		b.logger.WithError(err).WithField("id", id).Error("Failed to persist confirmed draft")
		b.respondEphemeral(s, i, msgSaveFailed)
	default:
		b.respond(s, i, msgSaved)
		b.disableButtons(s, i)
	}
}

func (b *Bot) handleRevise(s *discordgo.Session, i *discordgo.InteractionCreate, id string) {
	draft, ok := b.service.Get(id)
	if !ok {
		b.respondEphemeral(s, i, msgSessionExpired)
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: correctionModal(draft),
	})
	if err != nil {
		b.logger.WithError(err).WithField("id", id).Error("Failed to open correction modal")
	}
}

func (b *Bot) handleCorrection(s *discordgo.Session, i *discordgo.InteractionCreate, id string) {
	values := modalValues(i.ModalSubmitData())
	corr := review.Correction{
		Category: values[fieldCategory],
		Amount:   values[fieldAmount],
		DateTime: values[fieldDateTime],
	}

	_, err := b.service.SubmitCorrection(context.Background(), id, corr)
	switch {
	case errors.Is(err, review.ErrSessionExpired):
		b.respondEphemeral(s, i, msgSessionExpired)
	case err != nil:
		b.logger.WithError(err).WithField("id", id).Error("Failed to persist corrected draft")
		b.respondEphemeral(s, i, msgSaveFailed)
	default:
		b.respond(s, i, msgSavedCorrected)
	}
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	b.respondWithFlags(s, i, content, 0)
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	b.respondWithFlags(s, i, content, discordgo.MessageFlagsEphemeral)
}

func (b *Bot) respondWithFlags(s *discordgo.Session, i *discordgo.InteractionCreate, content string, flags discordgo.MessageFlags) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
	if err != nil {
		b.logger.WithError(err).Error("Failed to respond to interaction")
	}
}

// disableButtons strips the action row from the review message after a
// successful confirm so the buttons cannot be pressed twice.
func (b *Bot) disableButtons(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Message == nil {
		return
	}
	empty := []discordgo.MessageComponent{}
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    i.ChannelID,
		ID:         i.Message.ID,
		Components: &empty,
	})
	if err != nil {
		b.logger.WithError(err).Debug("Failed to remove review buttons")
	}
}

// modalValues flattens a modal submission into field values keyed by the text
// input custom id.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

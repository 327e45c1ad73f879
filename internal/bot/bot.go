// Package bot glues the review flow onto Discord. It handles DM image
// attachments, presents the guessed fields with confirm/revise buttons and a
// correction modal, and never leaks discordgo types into the core packages.
package bot

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/review"
	"hyeonwoo/receipt-ledger/internal/store"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord front end over the review service.
type Bot struct {
	session *discordgo.Session
	service *review.Service
	dedup   *store.EventDeduper
	logger  logging.Logger
}

// New connects the handlers to a fresh Discord session. Call Open to start
// receiving events.
func New(token string, service *review.Service, dedupWindow time.Duration, logger logging.Logger) (*Bot, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	b := &Bot{
		session: session,
		service: service,
		dedup:   store.NewEventDeduper(dedupWindow),
		logger:  logger,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Open starts the gateway connection.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.WithField("user", r.User.String()).Info("Logged in to Discord")
}

// download fetches attachment bytes through the session's HTTP client.
func (b *Bot) download(url string) ([]byte, error) {
	resp, err := b.session.Client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("error downloading attachment: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			b.logger.WithError(err).Warn("Failed to close attachment response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attachment download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

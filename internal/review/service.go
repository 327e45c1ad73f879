// Package review implements the receipt review flow: ingest an image, guess
// its fields, hold the draft for user review, and persist on confirmation or
// correction. It has no knowledge of the chat SDK driving it.
package review

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hyeonwoo/receipt-ledger/internal/classifier"
	"hyeonwoo/receipt-ledger/internal/extract"
	"hyeonwoo/receipt-ledger/internal/ledger"
	"hyeonwoo/receipt-ledger/internal/logging"
	"hyeonwoo/receipt-ledger/internal/models"
	"hyeonwoo/receipt-ledger/internal/ocr"
	"hyeonwoo/receipt-ledger/internal/store"
)

// ErrSessionExpired reports a confirm or correction for a draft that is no
// longer live: already persisted, or lost to a process restart. It is a
// user-facing "please retry" condition, not a fault.
var ErrSessionExpired = errors.New("review session expired")

var nonDigits = regexp.MustCompile(`[^\d]`)

// Correction carries the raw field values of a submitted correction form.
// Empty or malformed fields keep the draft's previous value.
type Correction struct {
	Category string
	Amount   string
	DateTime string
}

// Service owns one receipt's journey from attachment to ledger row.
type Service struct {
	engine     ocr.Engine
	classifier *classifier.Classifier
	pending    *store.PendingStore
	writer     *ledger.Writer
	logger     logging.Logger
}

// NewService wires the flow together. All collaborators are required except
// the logger.
func NewService(engine ocr.Engine, c *classifier.Classifier, pending *store.PendingStore, writer *ledger.Writer, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Service{
		engine:     engine,
		classifier: c,
		pending:    pending,
		writer:     writer,
		logger:     logger,
	}
}

// Ingest stores the attachment, OCRs it, runs the extraction heuristics and
// registers the resulting draft for review. OCR failure is non-fatal: the
// draft proceeds with empty text and the extractors report absent values.
func (s *Service) Ingest(ctx context.Context, attachmentName string, data []byte) (*models.Draft, error) {
	id := store.NewID()

	filename, err := s.writer.SaveImage(id, attachmentName, data)
	if err != nil {
		return nil, err
	}

	text, err := s.engine.Recognize(ctx, s.writer.ImagePath(filename))
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Warn("OCR failed, continuing with empty text")
		text = ""
	}

	draft := &models.Draft{
		ID:       id,
		Filename: filename,
		Category: s.classifier.Categorize(ctx, text),
		Amount:   extract.Amount(text),
		When:     extract.DateTime(text),
		OCRText:  text,
	}
	s.pending.Put(draft)

	s.logger.WithFields(
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "category", Value: draft.Category},
	).Info("Draft ready for review")
	return draft, nil
}

// Get returns a live draft, e.g. to prefill the correction form.
func (s *Service) Get(id string) (*models.Draft, bool) {
	return s.pending.Get(id)
}

// Confirm persists the draft as guessed and removes it from review. Of
// several concurrent confirm/correct attempts for one id, exactly one wins;
// the rest get ErrSessionExpired.
func (s *Service) Confirm(ctx context.Context, id string) (*models.Draft, error) {
	draft, ok := s.pending.Take(id)
	if !ok {
		return nil, ErrSessionExpired
	}
	if err := s.writer.Persist(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SubmitCorrection applies user-supplied field values and persists the
// result. Malformed amount or timestamp values keep the previous guess
// rather than rejecting the submission.
func (s *Service) SubmitCorrection(ctx context.Context, id string, corr Correction) (*models.Draft, error) {
	draft, ok := s.pending.Take(id)
	if !ok {
		return nil, ErrSessionExpired
	}

	applyCorrection(draft, corr)

	if err := s.writer.Persist(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func applyCorrection(draft *models.Draft, corr Correction) {
	category := strings.TrimSpace(corr.Category)
	if category == "" {
		category = models.CategoryUncategorized
	}
	draft.Category = category

	// Digits only; "12,345원" submitted back from the form still parses.
	if digits := nonDigits.ReplaceAllString(corr.Amount, ""); digits != "" {
		if amount, err := strconv.ParseInt(digits, 10, 64); err == nil {
			draft.Amount = &amount
		}
	}

	if value := strings.TrimSpace(corr.DateTime); value != "" {
		if when, err := time.ParseInLocation(models.DateTimeLayout, value, time.Local); err == nil {
			draft.When = &when
		}
	}
}

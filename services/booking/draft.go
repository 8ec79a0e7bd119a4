package booking

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	documentRepo "creatorhub/database/repository/document"
	"creatorhub/models"
	"creatorhub/services/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartDraft opens a new draft for a creator or campaign plan that exists and has a rate card.
func (s *DefaultBookingService) StartDraft(ctx context.Context, flow models.Flow, targetID string) (*models.DraftResponse, error) {
	if !flow.Valid() {
		return nil, ErrUnknownFlow
	}
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return nil, ErrTargetNotFound
	}
	card, err := s.loadRateCard(ctx, flow, targetID)
	if err != nil {
		return nil, err
	}

	d := models.NewBookingDraft(uuid.New().String(), flow, targetID, s.now())
	if err := s.Drafts.Create(ctx, d); err != nil {
		return nil, err
	}
	s.logger().Debug("booking draft started",
		zap.String("draft_id", d.ID), zap.String("flow", string(flow)), zap.String("target_id", targetID))
	return s.respond(d, card), nil
}

// GetDraft returns the draft with a quote recomputed from the current rate card.
func (s *DefaultBookingService) GetDraft(ctx context.Context, draftID string) (*models.DraftResponse, error) {
	d, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	card, err := s.loadRateCard(ctx, d.Flow, d.TargetID)
	if err != nil {
		return nil, err
	}
	return s.respond(d, card), nil
}

// CancelDraft discards a draft. Drafts whose payment is in flight or captured are kept.
func (s *DefaultBookingService) CancelDraft(ctx context.Context, draftID string) error {
	d, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return err
	}
	if !wizard.Abandonable(*d) {
		return ErrDraftNotAbandonable
	}
	return s.Drafts.Delete(ctx, draftID)
}

// UpdateServices replaces the selected quantities. Services the rate card does not offer are rejected.
func (s *DefaultBookingService) UpdateServices(ctx context.Context, draftID string, quantities map[string]int) (*models.DraftResponse, error) {
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, card *models.RateCard) error {
		if err := s.Machine.SetServices(d, quantities); err != nil {
			return err
		}
		if _, err := CalculateQuote(d.Services, *card, s.ServiceCharge, s.Currency); err != nil {
			return &wizard.ValidationError{Step: models.StepServiceSelection, Message: sentence(err)}
		}
		return nil
	})
}

func (s *DefaultBookingService) UpdateCampaign(ctx context.Context, draftID string, input CampaignInput) (*models.DraftResponse, error) {
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
		return s.Machine.SetCampaign(d, input.Name, input.Description, input.Deadline)
	})
}

// UploadAttachment keeps the file on the draft. It only reaches the blob store once the
// payment has been captured.
func (s *DefaultBookingService) UploadAttachment(ctx context.Context, draftID, filename, contentType string, data []byte) (*models.DraftResponse, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAttachment
	}
	if s.MaxAttachmentBytes > 0 && int64(len(data)) > s.MaxAttachmentBytes {
		return nil, ErrAttachmentTooLarge
	}
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "attachment"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	a := &models.Attachment{Filename: name, ContentType: contentType, Data: data}
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
		return s.Machine.SetAttachment(d, a)
	})
}

func (s *DefaultBookingService) RemoveAttachment(ctx context.Context, draftID string) (*models.DraftResponse, error) {
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
		return s.Machine.SetAttachment(d, nil)
	})
}

func (s *DefaultBookingService) UpdateContact(ctx context.Context, draftID string, contact models.Contact) (*models.DraftResponse, error) {
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
		return s.Machine.SetContact(d, contact)
	})
}

func (s *DefaultBookingService) Advance(ctx context.Context, draftID string) (*models.DraftResponse, error) {
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
		return s.Machine.Advance(d)
	})
}

func (s *DefaultBookingService) Retreat(ctx context.Context, draftID string) (*models.DraftResponse, error) {
	return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
		return s.Machine.Retreat(d)
	})
}

// Quote prices the draft against the rate card as it is right now.
func (s *DefaultBookingService) Quote(ctx context.Context, draftID string) (*models.Quote, error) {
	d, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	card, err := s.loadRateCard(ctx, d.Flow, d.TargetID)
	if err != nil {
		return nil, err
	}
	quote, err := CalculateQuote(d.Services, *card, s.ServiceCharge, s.Currency)
	if err != nil {
		return nil, &wizard.ValidationError{Step: models.StepServiceSelection, Message: sentence(err)}
	}
	return &quote, nil
}

// mutate reads the rate card for the draft and applies fn to the draft atomically.
func (s *DefaultBookingService) mutate(ctx context.Context, draftID string, fn func(*models.BookingDraft, *models.RateCard) error) (*models.DraftResponse, error) {
	cur, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	card, err := s.loadRateCard(ctx, cur.Flow, cur.TargetID)
	if err != nil {
		return nil, err
	}
	d, err := s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
		return fn(d, card)
	})
	if err != nil {
		return nil, err
	}
	return s.respond(d, card), nil
}

func (s *DefaultBookingService) loadRateCard(ctx context.Context, flow models.Flow, targetID string) (*models.RateCard, error) {
	card, err := s.RateCards.GetRateCard(ctx, flow, targetID)
	if errors.Is(err, documentRepo.ErrNotFound) {
		return nil, ErrTargetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load rate card: %w", err)
	}
	return card, nil
}

// respond builds the API view. Once an attempt has started the charged snapshot is shown,
// otherwise the quote is derived again so it always matches the current selection.
func (s *DefaultBookingService) respond(d *models.BookingDraft, card *models.RateCard) *models.DraftResponse {
	var quote *models.Quote
	if d.Payment.Status != models.PaymentIdle && d.Payment.Quote != nil {
		quote = d.Payment.Quote
	} else if q, err := CalculateQuote(d.Services, *card, s.ServiceCharge, s.Currency); err == nil {
		quote = &q
	}
	resp := models.ToDraftResponse(*d, quote, wizard.CanRetreat(*d))
	return &resp
}

// sentence turns an internal error message into something shown to the booker.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

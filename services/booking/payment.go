package booking

import (
	"context"
	"errors"
	"fmt"

	documentRepo "creatorhub/database/repository/document"
	draftRepo "creatorhub/database/repository/draft"
	"creatorhub/models"
	"creatorhub/services/wizard"

	"go.uber.org/zap"
)

const (
	OpenFailedReason = "We could not reach the payment provider. Please try again."
	ExpiredReason    = "Payment was not completed in time. Please try again."
)

var errNothingToExpire = errors.New("payment attempt already resolved")

// SubmitPayment starts a payment attempt for a draft on the review step.
//
// The idle to processing move happens inside an optimistic draft transaction, so two
// concurrent submits for the same draft cannot both open a checkout.
func (s *DefaultBookingService) SubmitPayment(ctx context.Context, draftID string) (*models.DraftResponse, error) {
	cur, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	card, err := s.loadRateCard(ctx, cur.Flow, cur.TargetID)
	if err != nil {
		return nil, err
	}

	d, err := s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
		quote, err := CalculateQuote(d.Services, *card, s.ServiceCharge, s.Currency)
		if err != nil {
			return &wizard.ValidationError{Step: models.StepServiceSelection, Message: sentence(err)}
		}
		return s.Machine.BeginPayment(d, quote)
	})
	if err != nil {
		return nil, err
	}
	attempt := d.Payment.Attempt

	checkout, openErr := s.Gateway.Open(ctx, models.Charge{
		Amount:   d.Payment.Quote.GrandTotal,
		Currency: d.Payment.Quote.Currency,
		Receipt:  fmt.Sprintf("%s-%d", d.ID, attempt),
		Metadata: map[string]string{
			"draft_id":  d.ID,
			"flow":      string(d.Flow),
			"target_id": d.TargetID,
		},
	})
	if openErr != nil {
		s.logger().Warn("failed to open payment",
			zap.String("draft_id", draftID), zap.String("gateway", s.Gateway.Name()), zap.Error(openErr))
	}

	d, err = s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
		if d.Payment.Attempt != attempt {
			return wizard.ErrPaymentNotProcessing
		}
		if openErr != nil {
			return s.Machine.FailPayment(d, OpenFailedReason)
		}
		return s.Machine.AttachCheckout(d, *checkout)
	})
	if err != nil {
		return nil, err
	}
	if openErr != nil {
		return nil, &PaymentError{Reason: OpenFailedReason}
	}

	if s.Timeouts != nil && s.PaymentTimeout > 0 {
		if err := s.Timeouts.SchedulePaymentTimeout(ctx, draftID, attempt, s.PaymentTimeout); err != nil {
			s.logger().Warn("failed to schedule payment timeout", zap.String("draft_id", draftID), zap.Error(err))
		}
	}
	return s.respond(d, card), nil
}

// CompletePayment resolves the client's report of how the gateway UI ended.
//
// A captured payment always yields a booking record keyed by the transaction id. When the
// record cannot be written the draft is flagged for reconciliation and the transaction id
// is surfaced so support can match the payment. Attempts that timed out before the report
// arrived are still resolved, since the booker may have paid in the meantime.
func (s *DefaultBookingService) CompletePayment(ctx context.Context, draftID string, cb models.PaymentCallback) (*models.DraftResponse, error) {
	d, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !wizard.AwaitingOutcome(*d) {
		return nil, wizard.ErrPaymentNotProcessing
	}
	if d.Payment.Checkout == nil {
		return nil, ErrCheckoutNotOpened
	}
	card, err := s.loadRateCard(ctx, d.Flow, d.TargetID)
	if err != nil {
		return nil, err
	}
	attempt := d.Payment.Attempt

	result := s.Gateway.Resolve(ctx, *d.Payment.Checkout, cb)
	if !result.OK() {
		d, err = s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
			if d.Payment.Attempt != attempt {
				return wizard.ErrPaymentNotProcessing
			}
			return s.Machine.FailPayment(d, result.Reason)
		})
		if err != nil {
			return nil, err
		}
		s.logger().Info("payment failed",
			zap.String("draft_id", draftID), zap.Int("attempt", attempt), zap.String("reason", d.Payment.Message))
		return s.respond(d, card), &PaymentError{Reason: d.Payment.Message}
	}
	return s.capture(ctx, d, card, result.TransactionID)
}

// capture writes the booking record for a captured attempt and settles the draft. The
// record goes first: a draft that moved on in the meantime never costs a paid booking.
func (s *DefaultBookingService) capture(ctx context.Context, d *models.BookingDraft, card *models.RateCard, txn string) (*models.DraftResponse, error) {
	draftID, attempt := d.ID, d.Payment.Attempt
	if d.Payment.Expired {
		s.logger().Warn("payment captured after the attempt timed out",
			zap.String("transaction_id", txn), zap.String("draft_id", draftID), zap.Int("attempt", attempt))
	}

	record := s.buildRecord(ctx, d, txn)
	persistErr := s.Records.Create(ctx, record)
	created := persistErr == nil
	if errors.Is(persistErr, documentRepo.ErrAlreadyExists) {
		s.logger().Info("booking record already saved", zap.String("transaction_id", txn))
		persistErr = nil
	}

	d, err := s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
		if d.Payment.Status == models.PaymentSuccess && d.Payment.TransactionID == txn {
			return nil
		}
		if d.Payment.Attempt != attempt {
			return wizard.ErrPaymentNotProcessing
		}
		if persistErr != nil {
			return s.Machine.FlagReconciliation(d, txn)
		}
		return s.Machine.CompletePayment(d, txn)
	})
	if persistErr != nil {
		s.logger().Error("payment captured but booking record was not saved",
			zap.String("transaction_id", txn),
			zap.String("draft_id", draftID),
			zap.Int64("grand_total", record.GrandTotal),
			zap.Error(persistErr))
		recErr := &ReconciliationError{TransactionID: txn, Err: persistErr}
		if err != nil {
			return nil, recErr
		}
		return s.respond(d, card), recErr
	}
	if err != nil {
		s.logger().Error("booking saved but draft could not be updated",
			zap.String("transaction_id", txn), zap.String("draft_id", draftID), zap.Error(err))
		return nil, err
	}

	s.logger().Info("booking confirmed",
		zap.String("transaction_id", txn), zap.String("draft_id", draftID), zap.Int64("grand_total", record.GrandTotal))
	if created && s.Notifier != nil {
		if err := s.Notifier.NotifyBookingCreated(ctx, record); err != nil {
			s.logger().Warn("failed to notify creator", zap.String("transaction_id", txn), zap.Error(err))
		}
	}
	return s.respond(d, card), nil
}

// ResetPayment returns a failed attempt to the review step so the booker can try again.
//
// An attempt that timed out is first looked up with the gateway. If the money was captured
// after all, the booking is settled instead and the response shows the success. While the
// gateway cannot confirm either way the reset is refused.
func (s *DefaultBookingService) ResetPayment(ctx context.Context, draftID string) (*models.DraftResponse, error) {
	d, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !d.Payment.Expired || d.Payment.Checkout == nil {
		return s.mutate(ctx, draftID, func(d *models.BookingDraft, _ *models.RateCard) error {
			return s.Machine.ResetPayment(d)
		})
	}

	card, err := s.loadRateCard(ctx, d.Flow, d.TargetID)
	if err != nil {
		return nil, err
	}
	attempt := d.Payment.Attempt
	result, err := s.Gateway.Lookup(ctx, *d.Payment.Checkout)
	if err != nil {
		s.logger().Warn("could not confirm timed out payment",
			zap.String("draft_id", draftID), zap.Int("attempt", attempt), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", wizard.ErrPaymentUnresolved, err)
	}
	if result.OK() {
		return s.capture(ctx, d, card, result.TransactionID)
	}

	d, err = s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
		if d.Payment.Attempt != attempt {
			return wizard.ErrPaymentNotProcessing
		}
		if wizard.AwaitingOutcome(*d) {
			if err := s.Machine.FailPayment(d, d.Payment.Message); err != nil {
				return err
			}
		}
		return s.Machine.ResetPayment(d)
	})
	if err != nil {
		return nil, err
	}
	return s.respond(d, card), nil
}

// ExpirePayment fails an attempt that is still processing after the payment timeout.
// Attempts that were resolved in the meantime, and drafts that expired, are left alone.
// An attempt with an open checkout stays open to a late capture.
func (s *DefaultBookingService) ExpirePayment(ctx context.Context, draftID string, attempt int) error {
	_, err := s.Drafts.Update(ctx, draftID, func(d *models.BookingDraft) error {
		if d.Payment.Status != models.PaymentProcessing || d.Payment.Attempt != attempt {
			return errNothingToExpire
		}
		if d.Payment.Checkout == nil {
			return s.Machine.FailPayment(d, ExpiredReason)
		}
		return s.Machine.ExpirePayment(d, ExpiredReason)
	})
	switch {
	case err == nil:
		s.logger().Info("payment attempt expired", zap.String("draft_id", draftID), zap.Int("attempt", attempt))
		return nil
	case errors.Is(err, errNothingToExpire), errors.Is(err, draftRepo.ErrDraftNotFound):
		return nil
	}
	return err
}

func (s *DefaultBookingService) buildRecord(ctx context.Context, d *models.BookingDraft, txn string) models.BookingRecord {
	now := s.now().UTC()
	quote := models.Quote{}
	if d.Payment.Quote != nil {
		quote = *d.Payment.Quote
	}
	services := make(map[string]int, len(quote.Lines))
	for _, line := range quote.Lines {
		services[line.Service] = line.Quantity
	}

	record := models.BookingRecord{
		ID:            txn,
		DraftID:       d.ID,
		Flow:          d.Flow,
		TargetID:      d.TargetID,
		Services:      services,
		Lines:         quote.Lines,
		Subtotal:      quote.Subtotal,
		ServiceCharge: quote.ServiceCharge,
		GrandTotal:    quote.GrandTotal,
		Currency:      quote.Currency,
		Campaign: models.RecordCampaign{
			Name:          d.Campaign.Name,
			Description:   d.Campaign.Description,
			Deadline:      d.Campaign.Deadline,
			AttachmentURL: s.uploadAttachment(ctx, d, txn),
		},
		Contact:   d.Contact,
		Gateway:   s.Gateway.Name(),
		Status:    models.BookingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d.Payment.Checkout != nil {
		record.OrderRef = d.Payment.Checkout.Reference
	}
	return record
}

// uploadAttachment is best effort: a booking with a paid transaction is never held back by
// a failed upload.
func (s *DefaultBookingService) uploadAttachment(ctx context.Context, d *models.BookingDraft, txn string) string {
	a := d.Campaign.Attachment
	if a == nil || s.Blobs == nil {
		return ""
	}
	url, err := s.Blobs.Upload(ctx, fmt.Sprintf("attachments/%s/%s", txn, a.Filename), a.ContentType, a.Data)
	if err != nil {
		s.logger().Warn("attachment upload failed, continuing without it",
			zap.String("transaction_id", txn), zap.String("filename", a.Filename), zap.Error(err))
		return ""
	}
	return url
}

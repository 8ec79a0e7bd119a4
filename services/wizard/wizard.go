// Package wizard holds the decision logic of the booking wizard: which screen a draft is
// on, what each screen requires before it can be left, and how the payment sub-state may
// move. It performs no I/O.
package wizard

import (
	"fmt"
	"strings"
	"time"

	"creatorhub/models"

	"github.com/go-playground/validator/v10"
)

const genericPaymentFailure = "Payment could not be completed. Please try again."

// Machine applies wizard transitions to drafts.
type Machine struct {
	now      func() time.Time
	validate *validator.Validate
}

// New returns a Machine that uses now as the reference time for deadline checks.
func New(now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{now: now, validate: validator.New()}
}

// Advance validates the current step and moves to the next one.
func (m *Machine) Advance(d *models.BookingDraft) error {
	cur, err := stateOf(d.Step)
	if err != nil {
		return err
	}
	next := cur.next()
	if next == nil {
		return ErrLastStep
	}
	if err := cur.check(m, d); err != nil {
		return err
	}
	m.moveTo(d, next)
	return nil
}

// Retreat moves back one step. There is no way back while money is moving or after it moved.
func (m *Machine) Retreat(d *models.BookingDraft) error {
	if err := retreatBlocked(d); err != nil {
		return err
	}
	cur, err := stateOf(d.Step)
	if err != nil {
		return err
	}
	prev := cur.prev()
	if prev == nil {
		return ErrFirstStep
	}
	m.moveTo(d, prev)
	return nil
}

// CanRetreat reports whether Retreat would succeed.
func CanRetreat(d models.BookingDraft) bool {
	if retreatBlocked(&d) != nil {
		return false
	}
	cur, err := stateOf(d.Step)
	return err == nil && cur.prev() != nil
}

func retreatBlocked(d *models.BookingDraft) error {
	switch {
	case d.Payment.Reconcile, d.Payment.Status == models.PaymentSuccess:
		return ErrPaymentCaptured
	case d.Payment.Status == models.PaymentProcessing:
		return ErrPaymentInFlight
	case d.Payment.Expired:
		return ErrPaymentUnresolved
	}
	return nil
}

// AwaitingOutcome reports whether the current attempt can still be resolved by the gateway:
// it is processing, or it timed out without the gateway confirming either way.
func AwaitingOutcome(d models.BookingDraft) bool {
	if d.Payment.Status == models.PaymentProcessing {
		return true
	}
	return d.Payment.Status == models.PaymentFailed && d.Payment.Expired && !d.Payment.Reconcile
}

// editable guards every field mutation.
func editable(d *models.BookingDraft) error {
	return retreatBlocked(d)
}

// SetServices replaces the selected quantities.
func (m *Machine) SetServices(d *models.BookingDraft, quantities map[string]int) error {
	if err := editable(d); err != nil {
		return err
	}
	services := make(map[string]int, len(quantities))
	for name, qty := range quantities {
		name = strings.TrimSpace(name)
		if name == "" {
			return invalid(models.StepServiceSelection, "Service name is required.")
		}
		if qty < 0 {
			return invalid(models.StepServiceSelection, fmt.Sprintf("Quantity for %s cannot be negative.", name))
		}
		services[name] = qty
	}
	d.Services = services
	m.touch(d)
	return nil
}

// SetCampaign replaces the campaign text fields, keeping any attachment.
func (m *Machine) SetCampaign(d *models.BookingDraft, name, description string, deadline *time.Time) error {
	if err := editable(d); err != nil {
		return err
	}
	d.Campaign.Name = strings.TrimSpace(name)
	d.Campaign.Description = strings.TrimSpace(description)
	d.Campaign.Deadline = deadline
	m.touch(d)
	return nil
}

// SetAttachment sets or, with nil, clears the campaign attachment.
func (m *Machine) SetAttachment(d *models.BookingDraft, a *models.Attachment) error {
	if err := editable(d); err != nil {
		return err
	}
	d.Campaign.Attachment = a
	m.touch(d)
	return nil
}

// SetContact replaces the booker's contact details.
func (m *Machine) SetContact(d *models.BookingDraft, c models.Contact) error {
	if err := editable(d); err != nil {
		return err
	}
	d.Contact = models.Contact{
		FullName: strings.TrimSpace(c.FullName),
		Email:    strings.TrimSpace(c.Email),
		Phone:    strings.TrimSpace(c.Phone),
	}
	m.touch(d)
	return nil
}

// BeginPayment gates a charge attempt: the draft must be on the review step with an idle
// payment, and every earlier step must still hold. The quote is snapshotted as the amount
// being charged and the draft moves to the outcome screen.
func (m *Machine) BeginPayment(d *models.BookingDraft, quote models.Quote) error {
	if d.Payment.Status != models.PaymentIdle {
		return ErrPaymentNotIdle
	}
	if d.Step != models.StepReviewAndPay {
		return ErrNotReviewStep
	}
	for _, s := range []state{serviceSelection{}, campaignDetails{}, contactDetails{}} {
		if err := s.check(m, d); err != nil {
			return err
		}
	}

	d.Payment = models.PaymentState{
		Status:  models.PaymentProcessing,
		Attempt: d.Payment.Attempt + 1,
		Quote:   &quote,
	}
	m.moveTo(d, outcome{})
	return nil
}

// AttachCheckout records the gateway session opened for the current attempt.
func (m *Machine) AttachCheckout(d *models.BookingDraft, c models.Checkout) error {
	if d.Payment.Status != models.PaymentProcessing {
		return ErrPaymentNotProcessing
	}
	d.Payment.Checkout = &c
	m.touch(d)
	return nil
}

// CompletePayment marks the attempt captured. Terminal for the draft.
func (m *Machine) CompletePayment(d *models.BookingDraft, transactionID string) error {
	if !AwaitingOutcome(*d) {
		return ErrPaymentNotProcessing
	}
	d.Payment.Expired = false
	d.Payment.Status = models.PaymentSuccess
	d.Payment.TransactionID = transactionID
	d.Payment.Message = "Payment received. Your booking is confirmed."
	m.moveTo(d, outcome{})
	return nil
}

// FailPayment marks the attempt failed with the reason shown to the booker. On a timed out
// attempt it records that the gateway confirmed nothing was captured.
func (m *Machine) FailPayment(d *models.BookingDraft, reason string) error {
	if !AwaitingOutcome(*d) {
		return ErrPaymentNotProcessing
	}
	if strings.TrimSpace(reason) == "" {
		reason = genericPaymentFailure
	}
	d.Payment.Status = models.PaymentFailed
	d.Payment.Expired = false
	d.Payment.Message = reason
	m.moveTo(d, outcome{})
	return nil
}

// ExpirePayment fails a processing attempt whose gateway UI was never reported back. The
// attempt stays open to a late capture and cannot be reset until the gateway confirms it.
func (m *Machine) ExpirePayment(d *models.BookingDraft, reason string) error {
	if d.Payment.Status != models.PaymentProcessing {
		return ErrPaymentNotProcessing
	}
	if err := m.FailPayment(d, reason); err != nil {
		return err
	}
	d.Payment.Expired = true
	return nil
}

// FlagReconciliation records that money was captured but the booking could not be saved.
// The draft stays failed and cannot be retried; support has to match the transaction.
func (m *Machine) FlagReconciliation(d *models.BookingDraft, transactionID string) error {
	if !AwaitingOutcome(*d) {
		return ErrPaymentNotProcessing
	}
	d.Payment.Expired = false
	d.Payment.Status = models.PaymentFailed
	d.Payment.TransactionID = transactionID
	d.Payment.Reconcile = true
	d.Payment.Message = fmt.Sprintf(
		"Your payment was received but we could not save your booking. Please contact support with transaction ID %s.",
		transactionID)
	m.moveTo(d, outcome{})
	return nil
}

// ResetPayment returns a failed attempt to idle on the review step so it can be retried.
func (m *Machine) ResetPayment(d *models.BookingDraft) error {
	if d.Payment.Reconcile {
		return ErrPaymentCaptured
	}
	if d.Payment.Status != models.PaymentFailed {
		return ErrPaymentNotFailed
	}
	if d.Payment.Expired {
		return ErrPaymentUnresolved
	}
	d.Payment = models.PaymentState{
		Status:  models.PaymentIdle,
		Attempt: d.Payment.Attempt,
	}
	m.moveTo(d, reviewAndPay{})
	return nil
}

// Abandonable reports whether a draft can be thrown away without side effects.
func Abandonable(d models.BookingDraft) bool {
	if d.Payment.Reconcile || d.Payment.Expired {
		return false
	}
	return d.Payment.Status == models.PaymentIdle || d.Payment.Status == models.PaymentFailed
}

func (m *Machine) moveTo(d *models.BookingDraft, s state) {
	d.Step = s.step()
	m.touch(d)
}

func (m *Machine) touch(d *models.BookingDraft) {
	d.UpdatedAt = m.now()
}

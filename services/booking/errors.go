package booking

import (
	"errors"
	"fmt"

	draftRepo "creatorhub/database/repository/draft"
	"creatorhub/services/wizard"
)

var (
	ErrUnknownFlow         = errors.New("unknown booking flow")
	ErrTargetNotFound      = errors.New("creator or campaign plan not found")
	ErrAttachmentTooLarge  = errors.New("attachment exceeds the allowed size")
	ErrEmptyAttachment     = errors.New("attachment is empty")
	ErrCheckoutNotOpened   = errors.New("payment has not been opened with the gateway yet")
	ErrDraftNotAbandonable = errors.New("draft has a payment in progress or captured and cannot be discarded")
)

// PaymentError is returned when the gateway reports that an attempt did not capture money.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return e.Reason
}

// ReconciliationError means money was captured but the booking record could not be saved.
// The transaction id is what support needs to match the payment by hand.
type ReconciliationError struct {
	TransactionID string
	Err           error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("payment %s captured but booking was not saved: %v", e.TransactionID, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// IsConflict reports whether err is a request that is illegal for the draft's current state.
func IsConflict(err error) bool {
	for _, target := range []error{
		wizard.ErrFirstStep,
		wizard.ErrLastStep,
		wizard.ErrNotReviewStep,
		wizard.ErrPaymentNotIdle,
		wizard.ErrPaymentNotProcessing,
		wizard.ErrPaymentNotFailed,
		wizard.ErrPaymentInFlight,
		wizard.ErrPaymentCaptured,
		wizard.ErrPaymentUnresolved,
		draftRepo.ErrDraftConflict,
		ErrCheckoutNotOpened,
		ErrDraftNotAbandonable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

package wizard

import (
	"errors"
	"fmt"

	"creatorhub/models"
)

var (
	ErrFirstStep            = errors.New("already on the first step")
	ErrLastStep             = errors.New("no step after the outcome")
	ErrNotReviewStep        = errors.New("payment can only be submitted from the review step")
	ErrPaymentNotIdle       = errors.New("a payment has already been submitted for this booking")
	ErrPaymentNotProcessing = errors.New("no payment is in progress for this booking")
	ErrPaymentNotFailed     = errors.New("only a failed payment can be retried")
	ErrPaymentInFlight      = errors.New("payment is in progress")
	ErrPaymentCaptured      = errors.New("payment has already been captured")
	ErrPaymentUnresolved    = errors.New("payment outcome has not been confirmed by the gateway yet")
)

// ValidationError is the single human readable reason a step cannot be left.
type ValidationError struct {
	Step    models.Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func invalid(step models.Step, msg string) error {
	return &ValidationError{Step: step, Message: msg}
}

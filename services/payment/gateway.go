// Package payment adapts hosted-checkout gateways to a single open/resolve contract.
//
// Open starts an attempt and returns what the client needs to render the gateway's UI.
// The client later reports how the UI ended, and Resolve turns that report into exactly
// one Result: a transaction id or a failure reason.
package payment

import (
	"context"
	"errors"

	"creatorhub/models"
)

const (
	DismissedReason    = "Payment was cancelled before completion."
	UnverifiedReason   = "Payment could not be verified."
	IncompleteReason   = "Payment response was incomplete."
	NotCompletedReason = "Payment was not completed."
)

// ErrNotSettled is returned by Lookup while the provider still holds the payment in an
// intermediate state, such as authorized but not yet captured.
var ErrNotSettled = errors.New("payment is not settled with the gateway yet")

// Gateway is implemented by every supported payment provider.
type Gateway interface {
	Name() string
	Open(ctx context.Context, charge models.Charge) (*models.Checkout, error)
	Resolve(ctx context.Context, checkout models.Checkout, cb models.PaymentCallback) Result
	// Lookup asks the provider how an attempt ended when the client never reported back.
	Lookup(ctx context.Context, checkout models.Checkout) (Result, error)
}

// Result is the outcome of one payment attempt.
type Result struct {
	TransactionID string
	Reason        string
}

func Succeeded(transactionID string) Result {
	return Result{TransactionID: transactionID}
}

func Failed(reason string) Result {
	return Result{Reason: reason}
}

// OK reports whether the attempt captured money.
func (r Result) OK() bool {
	return r.TransactionID != "" && r.Reason == ""
}

// toMinor converts whole currency units into the smallest unit gateways charge in.
func toMinor(amount int64) int64 {
	return amount * 100
}

// clientFailure covers the callback fields every gateway treats the same way.
func clientFailure(cb models.PaymentCallback) (Result, bool) {
	if cb.Dismissed {
		return Failed(DismissedReason), true
	}
	if cb.Error != "" {
		return Failed(cb.Error), true
	}
	return Result{}, false
}

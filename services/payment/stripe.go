package payment

import (
	"context"
	"fmt"
	"strings"

	"creatorhub/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// intentAPI is the slice of the Stripe PaymentIntents client this gateway uses.
type intentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway collects payments with Stripe PaymentIntents.
type StripeGateway struct {
	intents        intentAPI
	publishableKey string
}

func NewStripeGateway(secretKey, publishableKey string) *StripeGateway {
	return &StripeGateway{
		intents:        &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		publishableKey: publishableKey,
	}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) Open(ctx context.Context, charge models.Charge) (*models.Checkout, error) {
	if charge.Amount <= 0 {
		return nil, fmt.Errorf("stripe: invalid amount %d", charge.Amount)
	}
	amount := toMinor(charge.Amount)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(charge.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("receipt", charge.Receipt)
	for k, v := range charge.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}
	return &models.Checkout{
		Gateway:      g.Name(),
		Reference:    pi.ID,
		PublicKey:    g.publishableKey,
		ClientSecret: pi.ClientSecret,
		AmountMinor:  amount,
		Currency:     charge.Currency,
	}, nil
}

// Resolve trusts only the intent's status as reported by Stripe. The client's report is
// used to explain a failure, never to override a captured intent.
func (g *StripeGateway) Resolve(ctx context.Context, checkout models.Checkout, cb models.PaymentCallback) Result {
	pi, err := g.fetch(ctx, checkout)
	if err != nil {
		return Failed(UnverifiedReason)
	}
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		return Succeeded(pi.ID)
	}
	if res, done := clientFailure(cb); done {
		return res
	}
	return intentFailure(pi)
}

// Lookup reads the intent's status. Intents Stripe is still processing, or that wait for a
// manual capture, are not settled yet.
func (g *StripeGateway) Lookup(ctx context.Context, checkout models.Checkout) (Result, error) {
	pi, err := g.fetch(ctx, checkout)
	if err != nil {
		return Result{}, err
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return Succeeded(pi.ID), nil
	case stripe.PaymentIntentStatusProcessing, stripe.PaymentIntentStatusRequiresCapture:
		return Result{}, ErrNotSettled
	}
	return intentFailure(pi), nil
}

func (g *StripeGateway) fetch(ctx context.Context, checkout models.Checkout) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.intents.Get(checkout.Reference, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to fetch payment intent: %w", err)
	}
	return pi, nil
}

func intentFailure(pi *stripe.PaymentIntent) Result {
	switch pi.Status {
	case stripe.PaymentIntentStatusCanceled:
		return Failed("Payment was cancelled.")
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			return Failed(pi.LastPaymentError.Msg)
		}
		return Failed("Payment was declined.")
	default:
		return Failed(NotCompletedReason)
	}
}

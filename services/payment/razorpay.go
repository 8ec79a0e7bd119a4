package payment

import (
	"context"
	"fmt"

	"creatorhub/models"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// orderAPI is the slice of the Razorpay orders API this gateway uses.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Payments(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway opens Razorpay orders and verifies checkout signatures.
type RazorpayGateway struct {
	orders    orderAPI
	keyID     string
	keySecret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{orders: client.Order, keyID: keyID, keySecret: keySecret}
}

func (g *RazorpayGateway) Name() string { return "razorpay" }

// Open creates an order for the charge. The returned reference is the order id the
// Razorpay checkout widget is opened with.
func (g *RazorpayGateway) Open(_ context.Context, charge models.Charge) (*models.Checkout, error) {
	if charge.Amount <= 0 {
		return nil, fmt.Errorf("razorpay: invalid amount %d", charge.Amount)
	}
	notes := make(map[string]interface{}, len(charge.Metadata))
	for k, v := range charge.Metadata {
		notes[k] = v
	}
	amount := toMinor(charge.Amount)
	body, err := g.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": charge.Currency,
		"receipt":  charge.Receipt,
		"notes":    notes,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay: failed to create order: %w", err)
	}
	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("razorpay: order response has no id")
	}
	return &models.Checkout{
		Gateway:     g.Name(),
		Reference:   orderID,
		PublicKey:   g.keyID,
		AmountMinor: amount,
		Currency:    charge.Currency,
	}, nil
}

// Resolve verifies the handler response of the checkout widget. The payment id becomes
// the transaction id only when the signature over order and payment ids checks out.
func (g *RazorpayGateway) Resolve(_ context.Context, checkout models.Checkout, cb models.PaymentCallback) Result {
	if res, done := clientFailure(cb); done {
		return res
	}
	if cb.PaymentID == "" || cb.Signature == "" {
		return Failed(IncompleteReason)
	}
	if cb.OrderID != "" && cb.OrderID != checkout.Reference {
		return Failed(UnverifiedReason)
	}
	params := map[string]interface{}{
		"razorpay_order_id":   checkout.Reference,
		"razorpay_payment_id": cb.PaymentID,
	}
	if !utils.VerifyPaymentSignature(params, cb.Signature, g.keySecret) {
		return Failed(UnverifiedReason)
	}
	return Succeeded(cb.PaymentID)
}

// Lookup lists the payments made against the attempt's order. A captured payment settles
// the attempt; an authorized one is still moving and reported as ErrNotSettled.
func (g *RazorpayGateway) Lookup(_ context.Context, checkout models.Checkout) (Result, error) {
	body, err := g.orders.Payments(checkout.Reference, nil, nil)
	if err != nil {
		return Result{}, fmt.Errorf("razorpay: failed to list order payments: %w", err)
	}
	items, _ := body["items"].([]interface{})
	pending := false
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := item["id"].(string)
		switch item["status"] {
		case "captured":
			if id != "" {
				return Succeeded(id), nil
			}
		case "authorized", "created":
			pending = true
		}
	}
	if pending {
		return Result{}, ErrNotSettled
	}
	return Failed(NotCompletedReason), nil
}

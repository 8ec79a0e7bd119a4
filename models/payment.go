package models

// Charge is what the wizard asks a gateway to collect.
type Charge struct {
	// Amount in major currency units.
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Checkout is what the client needs to render the gateway's hosted UI.
type Checkout struct {
	Gateway string `json:"gateway"`
	// Reference is the gateway's order or payment intent id for this attempt.
	Reference    string `json:"reference"`
	PublicKey    string `json:"publicKey,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`
	// AmountMinor is the charge in the currency's smallest unit.
	AmountMinor int64  `json:"amountMinor"`
	Currency    string `json:"currency"`
}

// PaymentCallback is the client's report of how the hosted UI ended.
type PaymentCallback struct {
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
	Error     string `json:"error"`
	Dismissed bool   `json:"dismissed"`
}

package models

// RateCard is the per-unit price list of a creator or campaign plan.
type RateCard struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Rates map[string]int64 `json:"rates"`
}

// QuoteLine is one priced service in a quote.
type QuoteLine struct {
	Service   string `json:"service"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Amount    int64  `json:"amount"`
}

// Quote is the derived price of a draft. It is never accepted as input.
type Quote struct {
	Lines         []QuoteLine `json:"lines"`
	Subtotal      int64       `json:"subtotal"`
	ServiceCharge int64       `json:"serviceCharge"`
	GrandTotal    int64       `json:"grandTotal"`
	Currency      string      `json:"currency"`
}

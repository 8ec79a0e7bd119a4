package models

// PaymentTimeoutPayload is carried by the delayed task that expires an unresolved payment.
type PaymentTimeoutPayload struct {
	DraftID string `json:"draftId"`
	Attempt int    `json:"attempt"`
}

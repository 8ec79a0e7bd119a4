package models

import (
	"fmt"
	"time"
)

// BookingStatus is the back-office workflow state of a paid booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether a reviewer may move a booking from s to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a status received from the back office.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

// RecordCampaign is the campaign snapshot stored with a booking.
type RecordCampaign struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	AttachmentURL string     `json:"attachmentUrl,omitempty"`
}

// BookingRecord is the persisted record of a paid booking, keyed by transaction id.
type BookingRecord struct {
	ID            string         `json:"id"`
	DraftID       string         `json:"draftId"`
	Flow          Flow           `json:"flow"`
	TargetID      string         `json:"targetId"`
	Services      map[string]int `json:"services"`
	Lines         []QuoteLine    `json:"lines"`
	Subtotal      int64          `json:"subtotal"`
	ServiceCharge int64          `json:"serviceCharge"`
	GrandTotal    int64          `json:"grandTotal"`
	Currency      string         `json:"currency"`
	Campaign      RecordCampaign `json:"campaign"`
	Contact       Contact        `json:"contact"`
	Gateway       string         `json:"gateway"`
	OrderRef      string         `json:"orderRef,omitempty"`
	Status        BookingStatus  `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

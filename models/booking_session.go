package models

import "time"

// Flow distinguishes the two entry points that share the booking wizard.
type Flow string

const (
	FlowCreatorBooking Flow = "creator_booking"
	FlowCampaign       Flow = "campaign"
)

// Valid reports whether f is a known flow.
func (f Flow) Valid() bool {
	return f == FlowCreatorBooking || f == FlowCampaign
}

// Step is the persisted name of a wizard position.
type Step string

const (
	StepServiceSelection Step = "service_selection"
	StepCampaignDetails  Step = "campaign_details"
	StepContactDetails   Step = "contact_details"
	StepReviewAndPay     Step = "review_and_pay"
	StepOutcome          Step = "outcome"
)

// PaymentStatus tracks a single payment attempt for a draft.
type PaymentStatus string

const (
	PaymentIdle       PaymentStatus = "idle"
	PaymentProcessing PaymentStatus = "processing"
	PaymentSuccess    PaymentStatus = "success"
	PaymentFailed     PaymentStatus = "failed"
)

// Attachment is the optional brief file a booker adds to the campaign.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// CampaignDetails is what the booker wants the creator to produce.
type CampaignDetails struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Attachment  *Attachment `json:"attachment,omitempty"`
}

// Contact identifies the person paying for the booking.
type Contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PaymentState is the payment sub-state of a draft.
type PaymentState struct {
	Status        PaymentStatus `json:"status"`
	Message       string        `json:"message,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	Attempt       int           `json:"attempt"`
	Checkout      *Checkout     `json:"checkout,omitempty"`
	// Quote charged for the current attempt.
	Quote *Quote `json:"quote,omitempty"`
	// Reconcile marks a captured payment whose booking record could not be saved.
	Reconcile bool `json:"reconcile,omitempty"`
	// Expired marks a failed attempt that timed out before the gateway reported an outcome.
	// The booker may still have paid, so it stays open to a late capture until confirmed.
	Expired bool `json:"expired,omitempty"`
}

// BookingDraft holds context between the first wizard screen and the final record.
type BookingDraft struct {
	ID        string          `json:"id"`
	Flow      Flow            `json:"flow"`
	TargetID  string          `json:"targetId"`
	Step      Step            `json:"step"`
	Services  map[string]int  `json:"services"`
	Campaign  CampaignDetails `json:"campaign"`
	Contact   Contact         `json:"contact"`
	Payment   PaymentState    `json:"payment"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewBookingDraft returns an empty draft positioned on the first step.
func NewBookingDraft(id string, flow Flow, targetID string, now time.Time) *BookingDraft {
	return &BookingDraft{
		ID:        id,
		Flow:      flow,
		TargetID:  targetID,
		Step:      StepServiceSelection,
		Services:  map[string]int{},
		Payment:   PaymentState{Status: PaymentIdle},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DraftResponse is what the API returns for a draft. Attachment bytes are never echoed.
type DraftResponse struct {
	ID         string         `json:"id"`
	Flow       Flow           `json:"flow"`
	TargetID   string         `json:"targetId"`
	Step       Step           `json:"step"`
	Services   map[string]int `json:"services"`
	Campaign   CampaignView   `json:"campaign"`
	Contact    Contact        `json:"contact"`
	Payment    PaymentView    `json:"payment"`
	Quote      *Quote         `json:"quote,omitempty"`
	CanRetreat bool           `json:"canRetreat"`
}

type CampaignView struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	AttachmentName string     `json:"attachmentName,omitempty"`
}

type PaymentView struct {
	Status        PaymentStatus `json:"status"`
	Message       string        `json:"message,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	Checkout      *Checkout     `json:"checkout,omitempty"`
	Expired       bool          `json:"expired,omitempty"`
}

// ToDraftResponse strips internal fields from a draft.
func ToDraftResponse(d BookingDraft, quote *Quote, canRetreat bool) DraftResponse {
	view := CampaignView{
		Name:        d.Campaign.Name,
		Description: d.Campaign.Description,
		Deadline:    d.Campaign.Deadline,
	}
	if d.Campaign.Attachment != nil {
		view.AttachmentName = d.Campaign.Attachment.Filename
	}
	return DraftResponse{
		ID:       d.ID,
		Flow:     d.Flow,
		TargetID: d.TargetID,
		Step:     d.Step,
		Services: d.Services,
		Campaign: view,
		Contact:  d.Contact,
		Payment: PaymentView{
			Status:        d.Payment.Status,
			Message:       d.Payment.Message,
			TransactionID: d.Payment.TransactionID,
			Checkout:      d.Payment.Checkout,
			Expired:       d.Payment.Expired,
		},
		Quote:      quote,
		CanRetreat: canRetreat,
	}
}

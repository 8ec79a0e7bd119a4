// File: creatorhub/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Draft endpoints
	StartDraft       gin.HandlerFunc
	GetDraft         gin.HandlerFunc
	CancelDraft      gin.HandlerFunc
	UpdateServices   gin.HandlerFunc
	UpdateCampaign   gin.HandlerFunc
	UploadAttachment gin.HandlerFunc
	RemoveAttachment gin.HandlerFunc
	UpdateContact    gin.HandlerFunc
	Advance          gin.HandlerFunc
	Retreat          gin.HandlerFunc
	Quote            gin.HandlerFunc

	// Payment endpoints
	SubmitPayment   gin.HandlerFunc
	PaymentCallback gin.HandlerFunc
	ResetPayment    gin.HandlerFunc

	// Admin endpoints
	GetRecord          gin.HandlerFunc
	UpdateRecordStatus gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle wires handler methods into the bundle the router consumes.
func NewHandlerBundle(bh *BookingHandler, ah *AdminHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		StartDraft:       bh.StartDraftHandler,
		GetDraft:         bh.GetDraftHandler,
		CancelDraft:      bh.CancelDraftHandler,
		UpdateServices:   bh.UpdateServicesHandler,
		UpdateCampaign:   bh.UpdateCampaignHandler,
		UploadAttachment: bh.UploadAttachmentHandler,
		RemoveAttachment: bh.RemoveAttachmentHandler,
		UpdateContact:    bh.UpdateContactHandler,
		Advance:          bh.AdvanceHandler,
		Retreat:          bh.RetreatHandler,
		Quote:            bh.QuoteHandler,

		SubmitPayment:   bh.SubmitPaymentHandler,
		PaymentCallback: bh.PaymentCallbackHandler,
		ResetPayment:    bh.ResetPaymentHandler,

		GetRecord:          ah.GetRecordHandler,
		UpdateRecordStatus: ah.UpdateRecordStatusHandler,

		Health: health,
	}
}

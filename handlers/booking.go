package handlers

import (
	"io"
	"net/http"

	"creatorhub/models"
	"creatorhub/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking wizard over HTTP.
type BookingHandler struct {
	Service            booking.BookingService
	MaxAttachmentBytes int64
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, maxAttachmentBytes int64) *BookingHandler {
	return &BookingHandler{Service: svc, MaxAttachmentBytes: maxAttachmentBytes}
}

// StartDraftHandler opens a draft for a creator or a campaign plan.
func (h *BookingHandler) StartDraftHandler(c *gin.Context) {
	var input struct {
		Flow     models.Flow `json:"flow" binding:"required"`
		TargetID string      `json:"targetId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := h.Service.StartDraft(c.Request.Context(), input.Flow, input.TargetID)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) GetDraftHandler(c *gin.Context) {
	resp, err := h.Service.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) CancelDraftHandler(c *gin.Context) {
	if err := h.Service.CancelDraft(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) UpdateServicesHandler(c *gin.Context) {
	var input struct {
		Services map[string]int `json:"services" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.respond(c)(h.Service.UpdateServices(c.Request.Context(), c.Param("id"), input.Services))
}

func (h *BookingHandler) UpdateCampaignHandler(c *gin.Context) {
	var input booking.CampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.respond(c)(h.Service.UpdateCampaign(c.Request.Context(), c.Param("id"), input))
}

// UploadAttachmentHandler accepts the campaign brief as the multipart field "file".
func (h *BookingHandler) UploadAttachmentHandler(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "details": err.Error()})
		return
	}
	if h.MaxAttachmentBytes > 0 && fh.Size > h.MaxAttachmentBytes {
		writeError(c, booking.ErrAttachmentTooLarge, nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file", "details": err.Error()})
		return
	}
	defer f.Close()

	reader := io.Reader(f)
	if h.MaxAttachmentBytes > 0 {
		reader = io.LimitReader(f, h.MaxAttachmentBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file", "details": err.Error()})
		return
	}
	h.respond(c)(h.Service.UploadAttachment(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), data))
}

func (h *BookingHandler) RemoveAttachmentHandler(c *gin.Context) {
	h.respond(c)(h.Service.RemoveAttachment(c.Request.Context(), c.Param("id")))
}

func (h *BookingHandler) UpdateContactHandler(c *gin.Context) {
	var input models.Contact
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.respond(c)(h.Service.UpdateContact(c.Request.Context(), c.Param("id"), input))
}

func (h *BookingHandler) AdvanceHandler(c *gin.Context) {
	h.respond(c)(h.Service.Advance(c.Request.Context(), c.Param("id")))
}

func (h *BookingHandler) RetreatHandler(c *gin.Context) {
	h.respond(c)(h.Service.Retreat(c.Request.Context(), c.Param("id")))
}

func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	quote, err := h.Service.Quote(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// SubmitPaymentHandler opens a checkout; the response carries what the client needs to
// render the gateway's UI.
func (h *BookingHandler) SubmitPaymentHandler(c *gin.Context) {
	h.respond(c)(h.Service.SubmitPayment(c.Request.Context(), c.Param("id")))
}

// PaymentCallbackHandler receives the client's report of how the gateway UI ended.
func (h *BookingHandler) PaymentCallbackHandler(c *gin.Context) {
	var input models.PaymentCallback
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	h.respond(c)(h.Service.CompletePayment(c.Request.Context(), c.Param("id"), input))
}

func (h *BookingHandler) ResetPaymentHandler(c *gin.Context) {
	h.respond(c)(h.Service.ResetPayment(c.Request.Context(), c.Param("id")))
}

func (h *BookingHandler) respond(c *gin.Context) func(*models.DraftResponse, error) {
	return func(resp *models.DraftResponse, err error) {
		if err != nil {
			writeError(c, err, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

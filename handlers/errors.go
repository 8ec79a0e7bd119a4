package handlers

import (
	"errors"
	"net/http"

	documentRepo "creatorhub/database/repository/document"
	draftRepo "creatorhub/database/repository/draft"
	recordsRepo "creatorhub/database/repository/records"
	"creatorhub/models"
	"creatorhub/services/booking"
	"creatorhub/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError maps service errors onto HTTP responses. draft, when present, is the state
// the draft was left in so the client can render the outcome screen.
func writeError(c *gin.Context, err error, draft *models.DraftResponse) {
	var (
		verr     *wizard.ValidationError
		payErr   *booking.PaymentError
		recErr   *booking.ReconciliationError
		transErr *recordsRepo.InvalidTransitionError
	)

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message, "step": verr.Step})
	case errors.As(err, &recErr):
		getLogger(c).Error("reconciliation required",
			zap.String("transaction_id", recErr.TransactionID), zap.Error(recErr.Err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":         draftMessage(draft, recErr.Error()),
			"transactionId": recErr.TransactionID,
			"draft":         draft,
		})
	case errors.As(err, &payErr):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": payErr.Reason, "draft": draft})
	case errors.As(err, &transErr):
		c.JSON(http.StatusConflict, gin.H{"error": transErr.Error()})
	case errors.Is(err, draftRepo.ErrDraftNotFound),
		errors.Is(err, booking.ErrTargetNotFound),
		errors.Is(err, documentRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrUnknownFlow), errors.Is(err, booking.ErrEmptyAttachment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrAttachmentTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case booking.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func draftMessage(draft *models.DraftResponse, fallback string) string {
	if draft != nil && draft.Payment.Message != "" {
		return draft.Payment.Message
	}
	return fallback
}

// File: creatorhub/handlers/admin.go
package handlers

import (
	"net/http"

	recordsRepo "creatorhub/database/repository/records"
	"creatorhub/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates back-office operations on paid bookings.
type AdminHandler struct {
	Records recordsRepo.BookingRecordRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(records recordsRepo.BookingRecordRepository) *AdminHandler {
	return &AdminHandler{Records: records}
}

// GetRecordHandler returns a booking record by flow and transaction id.
func (ah *AdminHandler) GetRecordHandler(c *gin.Context) {
	flow := models.Flow(c.Param("flow"))
	if !flow.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown flow"})
		return
	}
	record, err := ah.Records.GetByID(c.Request.Context(), flow, c.Param("id"))
	if err != nil {
		writeError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateRecordStatusHandler moves a booking along the review workflow.
func (ah *AdminHandler) UpdateRecordStatusHandler(c *gin.Context) {
	flow := models.Flow(c.Param("flow"))
	if !flow.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown flow"})
		return
	}
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	status, err := models.ParseBookingStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := ah.Records.UpdateStatus(c.Request.Context(), flow, c.Param("id"), status)
	if err != nil {
		writeError(c, err, nil)
		return
	}
	zap.L().Info("booking status updated",
		zap.String("transaction_id", record.ID), zap.String("status", string(record.Status)))
	c.JSON(http.StatusOK, record)
}

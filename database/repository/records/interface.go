package recordsRepo

import (
	"context"
	"fmt"
	"time"

	documentRepo "creatorhub/database/repository/document"
	"creatorhub/models"
)

// BookingRecordRepository persists paid bookings keyed by the gateway transaction id.
type BookingRecordRepository interface {
	// Create stores a new record; a second create for the same id yields documentRepo.ErrAlreadyExists.
	Create(ctx context.Context, record models.BookingRecord) error
	GetByID(ctx context.Context, flow models.Flow, id string) (*models.BookingRecord, error)
	UpdateStatus(ctx context.Context, flow models.Flow, id string, status models.BookingStatus) (*models.BookingRecord, error)
}

type storeRecordRepo struct {
	store documentRepo.Store
	now   func() time.Time
}

// NewStoreRecordRepo returns a BookingRecordRepository over any document store.
func NewStoreRecordRepo(store documentRepo.Store) BookingRecordRepository {
	return &storeRecordRepo{store: store, now: time.Now}
}

// CollectionFor maps a flow to the collection holding its records.
func CollectionFor(flow models.Flow) (string, error) {
	switch flow {
	case models.FlowCreatorBooking:
		return "bookings", nil
	case models.FlowCampaign:
		return "campaigns", nil
	}
	return "", fmt.Errorf("unknown flow %q", flow)
}

package recordsRepo

import (
	"context"
	"fmt"
	"time"

	documentRepo "creatorhub/database/repository/document"
	"creatorhub/models"
)

// Create inserts a new booking record under its transaction id.
func (r *storeRecordRepo) Create(ctx context.Context, record models.BookingRecord) error {
	if record.ID == "" {
		return fmt.Errorf("booking record has no transaction id")
	}
	collection, err := CollectionFor(record.Flow)
	if err != nil {
		return err
	}
	doc, err := documentRepo.Encode(record)
	if err != nil {
		return err
	}
	return r.store.Create(ctx, collection, record.ID, doc)
}

// GetByID returns a booking record by its transaction id.
func (r *storeRecordRepo) GetByID(ctx context.Context, flow models.Flow, id string) (*models.BookingRecord, error) {
	collection, err := CollectionFor(flow)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Read(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	var record models.BookingRecord
	if err := documentRepo.Decode(doc, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateStatus moves a record along the review workflow.
func (r *storeRecordRepo) UpdateStatus(ctx context.Context, flow models.Flow, id string, status models.BookingStatus) (*models.BookingRecord, error) {
	record, err := r.GetByID(ctx, flow, id)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransition(status) {
		return nil, &InvalidTransitionError{From: record.Status, To: status}
	}

	collection, _ := CollectionFor(flow)
	now := r.now().UTC()
	partial := documentRepo.Document{
		"status":    string(status),
		"updatedAt": now.Format(time.RFC3339Nano),
	}
	if err := r.store.Update(ctx, collection, id, partial); err != nil {
		return nil, err
	}
	record.Status = status
	record.UpdatedAt = now
	return record, nil
}

// InvalidTransitionError is returned when the review workflow does not allow a move.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("booking cannot move from %s to %s", e.From, e.To)
}

package booking

import (
	"context"
	"time"

	catalogRepo "creatorhub/database/repository/catalog"
	draftRepo "creatorhub/database/repository/draft"
	recordsRepo "creatorhub/database/repository/records"
	"creatorhub/models"
	"creatorhub/services/notification"
	"creatorhub/services/payment"
	"creatorhub/services/storage"
	"creatorhub/services/tasks"
	"creatorhub/services/wizard"

	"go.uber.org/zap"
)

// CampaignInput is the editable part of the campaign details step.
type CampaignInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

// BookingService drives a booking draft from service selection to a paid booking record.
type BookingService interface {
	StartDraft(ctx context.Context, flow models.Flow, targetID string) (*models.DraftResponse, error)
	GetDraft(ctx context.Context, draftID string) (*models.DraftResponse, error)
	CancelDraft(ctx context.Context, draftID string) error

	UpdateServices(ctx context.Context, draftID string, quantities map[string]int) (*models.DraftResponse, error)
	UpdateCampaign(ctx context.Context, draftID string, input CampaignInput) (*models.DraftResponse, error)
	UploadAttachment(ctx context.Context, draftID, filename, contentType string, data []byte) (*models.DraftResponse, error)
	RemoveAttachment(ctx context.Context, draftID string) (*models.DraftResponse, error)
	UpdateContact(ctx context.Context, draftID string, contact models.Contact) (*models.DraftResponse, error)

	Advance(ctx context.Context, draftID string) (*models.DraftResponse, error)
	Retreat(ctx context.Context, draftID string) (*models.DraftResponse, error)
	Quote(ctx context.Context, draftID string) (*models.Quote, error)

	SubmitPayment(ctx context.Context, draftID string) (*models.DraftResponse, error)
	CompletePayment(ctx context.Context, draftID string, cb models.PaymentCallback) (*models.DraftResponse, error)
	ResetPayment(ctx context.Context, draftID string) (*models.DraftResponse, error)
	ExpirePayment(ctx context.Context, draftID string, attempt int) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Drafts    draftRepo.DraftRepository
	RateCards catalogRepo.RateCardRepository
	Records   recordsRepo.BookingRecordRepository
	Blobs     storage.BlobStore
	Gateway   payment.Gateway
	Timeouts  tasks.PaymentTimeoutScheduler
	// Notifier is optional.
	Notifier notification.NotificationService
	Machine  *wizard.Machine
	Logger   *zap.Logger

	ServiceCharge      int64
	Currency           string
	MaxAttachmentBytes int64
	PaymentTimeout     time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

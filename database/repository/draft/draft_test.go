package draftRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"creatorhub/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotIdle = errors.New("not idle")

func newRepo(t *testing.T) (DraftRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisDraftRepo(client, time.Hour), mr
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	d := models.NewBookingDraft("d1", models.FlowCampaign, "plan-1", time.Now())
	d.Campaign.Attachment = &models.Attachment{Filename: "brief.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}

	require.NoError(t, repo.Create(ctx, d))
	assert.Error(t, repo.Create(ctx, d))

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, models.FlowCampaign, got.Flow)
	assert.Equal(t, models.StepServiceSelection, got.Step)
	assert.Equal(t, []byte("%PDF"), got.Campaign.Attachment.Data)

	require.NoError(t, repo.Delete(ctx, "d1"))
	_, err = repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftsExpire(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRepo(t)
	require.NoError(t, repo.Create(ctx, models.NewBookingDraft("d1", models.FlowCreatorBooking, "c1", time.Now())))

	mr.FastForward(2 * time.Hour)
	_, err := repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestUpdate_AppliesAndPersists(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	require.NoError(t, repo.Create(ctx, models.NewBookingDraft("d1", models.FlowCreatorBooking, "c1", time.Now())))

	out, err := repo.Update(ctx, "d1", func(d *models.BookingDraft) error {
		d.Services["reel"] = 2
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Services["reel"])

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Services["reel"])
}

func TestUpdate_ErrorLeavesDraftUntouched(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	require.NoError(t, repo.Create(ctx, models.NewBookingDraft("d1", models.FlowCreatorBooking, "c1", time.Now())))

	boom := errors.New("boom")
	_, err := repo.Update(ctx, "d1", func(d *models.BookingDraft) error {
		d.Services["reel"] = 9
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Zero(t, got.Services["reel"])
}

func TestUpdate_MissingDraft(t *testing.T) {
	repo, _ := newRepo(t)
	_, err := repo.Update(context.Background(), "missing", func(*models.BookingDraft) error { return nil })
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

// A concurrent writer that flips the payment to processing between our read and our write
// forces a retry, and the retry sees the new state.
func TestUpdate_ConcurrentSubmitIsDetected(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)
	require.NoError(t, repo.Create(ctx, models.NewBookingDraft("d1", models.FlowCreatorBooking, "c1", time.Now())))

	calls := 0
	_, err := repo.Update(ctx, "d1", func(d *models.BookingDraft) error {
		calls++
		if d.Payment.Status != models.PaymentIdle {
			return errNotIdle
		}
		if calls == 1 {
			_, innerErr := repo.Update(ctx, "d1", func(other *models.BookingDraft) error {
				other.Payment.Status = models.PaymentProcessing
				return nil
			})
			require.NoError(t, innerErr)
		}
		d.Payment.Status = models.PaymentProcessing
		d.Payment.Attempt++
		return nil
	})

	assert.ErrorIs(t, err, errNotIdle)
	assert.Equal(t, 2, calls)

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Payment.Attempt)
}

package draftRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"creatorhub/models"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "draft:"

var (
	ErrDraftNotFound = errors.New("booking draft not found or expired")
	ErrDraftConflict = errors.New("booking draft is being modified, try again")
)

// DraftRepository keeps in-progress drafts until they expire or are converted.
type DraftRepository interface {
	Create(ctx context.Context, d *models.BookingDraft) error
	Get(ctx context.Context, id string) (*models.BookingDraft, error)
	// Update loads the draft, applies fn and saves the result atomically. If fn returns an
	// error nothing is written and the error is returned unchanged.
	Update(ctx context.Context, id string, fn func(*models.BookingDraft) error) (*models.BookingDraft, error)
	Delete(ctx context.Context, id string) error
}

type redisDraftRepo struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
}

// NewRedisDraftRepo returns a DraftRepository storing JSON drafts with a sliding TTL.
func NewRedisDraftRepo(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepo{client: client, ttl: ttl, maxRetries: 5}
}

func draftKey(id string) string {
	return keyPrefix + id
}

func (r *redisDraftRepo) Create(ctx context.Context, d *models.BookingDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	ok, err := r.client.SetNX(ctx, draftKey(d.ID), data, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	if !ok {
		return fmt.Errorf("booking draft %s already exists", d.ID)
	}
	return nil
}

func (r *redisDraftRepo) Get(ctx context.Context, id string) (*models.BookingDraft, error) {
	data, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking draft: %w", err)
	}
	return decodeDraft(data)
}

func (r *redisDraftRepo) Update(ctx context.Context, id string, fn func(*models.BookingDraft) error) (*models.BookingDraft, error) {
	key := draftKey(id)
	var updated *models.BookingDraft

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load booking draft: %w", err)
		}
		d, err := decodeDraft(data)
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		out, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal booking draft: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, r.ttl)
			return nil
		})
		if err == nil {
			updated = d
		}
		return err
	}

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrDraftConflict
}

func (r *redisDraftRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete booking draft: %w", err)
	}
	return nil
}

func decodeDraft(data []byte) (*models.BookingDraft, error) {
	var d models.BookingDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	if d.Services == nil {
		d.Services = map[string]int{}
	}
	return &d, nil
}

package catalogRepo

import (
	"context"
	"testing"

	documentRepo "creatorhub/database/repository/document"
	"creatorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateCard(t *testing.T) {
	ctx := context.Background()
	store := documentRepo.NewMemoryStore()
	require.NoError(t, store.Create(ctx, "creators", "creator-1", documentRepo.Document{
		"name":  "Asha Creates",
		"rates": map[string]interface{}{"reel": 500, "story": 300},
	}))
	require.NoError(t, store.Create(ctx, "campaign_plans", "plan-1", documentRepo.Document{
		"rates": map[string]interface{}{"combo": 2500},
	}))
	repo := NewStoreRateCardRepo(store)

	card, err := repo.GetRateCard(ctx, models.FlowCreatorBooking, "creator-1")
	require.NoError(t, err)
	assert.Equal(t, "creator-1", card.ID)
	assert.Equal(t, "Asha Creates", card.Name)
	assert.Equal(t, int64(500), card.Rates["reel"])

	plan, err := repo.GetRateCard(ctx, models.FlowCampaign, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), plan.Rates["combo"])

	_, err = repo.GetRateCard(ctx, models.FlowCampaign, "creator-1")
	assert.ErrorIs(t, err, documentRepo.ErrNotFound)
}

func TestGetRateCard_RejectsNegativePrices(t *testing.T) {
	ctx := context.Background()
	store := documentRepo.NewMemoryStore()
	require.NoError(t, store.Create(ctx, "creators", "creator-2", documentRepo.Document{
		"rates": map[string]interface{}{"reel": -1},
	}))
	_, err := NewStoreRateCardRepo(store).GetRateCard(ctx, models.FlowCreatorBooking, "creator-2")
	assert.Error(t, err)
}

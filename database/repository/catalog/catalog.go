package catalogRepo

import (
	"context"
	"fmt"

	documentRepo "creatorhub/database/repository/document"
	"creatorhub/models"
)

// RateCardRepository reads the price list a draft is quoted against.
type RateCardRepository interface {
	GetRateCard(ctx context.Context, flow models.Flow, targetID string) (*models.RateCard, error)
}

type storeRateCardRepo struct {
	store documentRepo.Store
}

// NewStoreRateCardRepo returns a RateCardRepository over any document store.
func NewStoreRateCardRepo(store documentRepo.Store) RateCardRepository {
	return &storeRateCardRepo{store: store}
}

func collectionFor(flow models.Flow) (string, error) {
	switch flow {
	case models.FlowCreatorBooking:
		return "creators", nil
	case models.FlowCampaign:
		return "campaign_plans", nil
	}
	return "", fmt.Errorf("unknown flow %q", flow)
}

// GetRateCard reads the creator or campaign plan document and extracts its rates.
// Rates are read on every call so a price change is picked up by the next quote.
func (r *storeRateCardRepo) GetRateCard(ctx context.Context, flow models.Flow, targetID string) (*models.RateCard, error) {
	collection, err := collectionFor(flow)
	if err != nil {
		return nil, err
	}
	doc, err := r.store.Read(ctx, collection, targetID)
	if err != nil {
		return nil, err
	}
	var card models.RateCard
	if err := documentRepo.Decode(doc, &card); err != nil {
		return nil, err
	}
	card.ID = targetID
	for service, price := range card.Rates {
		if price < 0 {
			return nil, fmt.Errorf("rate card %s has a negative price for %s", targetID, service)
		}
	}
	return &card, nil
}

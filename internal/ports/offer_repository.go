package ports

import (
	"context"

	"cargo-offer-service/internal/domain"
)

// Port: persistence boundary for generated offers.
type OfferRepository interface {
	SaveOffer(ctx context.Context, offer *domain.Offer) error
	ListOffers(ctx context.Context) ([]*domain.Offer, error)
}

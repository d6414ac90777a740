package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/ports"

	"github.com/google/uuid"
)

// Upper bound on the fun-fact collaborator call. The offer is produced with
// an empty fun fact when the call fails or runs past this.
const funFactTimeout = 3 * time.Second

// OfferAssembler turns a route and its cost breakdown into a priced offer.
type OfferAssembler struct {
	FunFacts ports.FunFactProvider
}

// GenerateOffer applies the margin to the breakdown total and decorates the
// offer with a best-effort fun fact. Margin 0 is a valid break-even offer;
// negative margins are rejected. A currency argument that disagrees with the
// breakdown is a configuration error.
func (a *OfferAssembler) GenerateOffer(
	ctx context.Context,
	route *domain.Route,
	breakdown *domain.CostBreakdown,
	marginPercent float64,
	currency string,
) (*domain.Offer, error) {
	if marginPercent < 0 {
		return nil, &domain.ValidationError{
			Code:    domain.CodeNegativeMargin,
			Message: fmt.Sprintf("margin must not be negative, got %.2f", marginPercent),
		}
	}

	if currency == "" {
		currency = breakdown.Currency
	}
	if currency != breakdown.Currency {
		return nil, &domain.ValidationError{
			Code:    domain.CodeMixedCurrency,
			Message: "requested currency " + currency + " does not match cost breakdown currency " + breakdown.Currency,
		}
	}

	finalPrice := breakdown.Total * (1 + marginPercent/100)

	return &domain.Offer{
		ID:            uuid.New(),
		RouteID:       route.ID,
		TotalCost:     breakdown.Total,
		MarginPercent: marginPercent,
		FinalPrice:    finalPrice,
		Breakdown:     breakdown,
		FunFact:       a.fetchFunFact(ctx, route),
		Status:        domain.OfferDraft,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// fetchFunFact isolates the collaborator's failure domain: a slow or broken
// text-generation service must never block offer creation.
func (a *OfferAssembler) fetchFunFact(ctx context.Context, route *domain.Route) string {
	if a.FunFacts == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, funFactTimeout)
	defer cancel()

	fact, err := a.FunFacts.FunFact(ctx, route.Origin.Address, route.Destination.Address, route.TotalDistanceKm())
	if err != nil {
		log.Printf("fun fact unavailable route_id=%s err=%v", route.ID, err)
		return ""
	}
	return fact
}

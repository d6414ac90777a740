package domain

import (
	"time"

	"github.com/google/uuid"
)

type OfferStatus string

const (
	OfferDraft    OfferStatus = "draft"
	OfferActive   OfferStatus = "active"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
	OfferExpired  OfferStatus = "expired"
)

// A priced quote for a route: total cost plus margin, with the breakdown it
// was computed from and a best-effort decorative fun fact.
type Offer struct {
	ID            uuid.UUID
	RouteID       uuid.UUID
	TotalCost     float64
	MarginPercent float64
	FinalPrice    float64
	Breakdown     *CostBreakdown
	FunFact       string
	Status        OfferStatus
	CreatedAt     time.Time
}

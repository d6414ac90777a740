package dto

import (
	"time"

	"cargo-offer-service/internal/domain"
)

type OfferRequest struct {
	RouteID       string  `json:"route_id"`
	MarginPercent float64 `json:"margin_percent"`
	Currency      string  `json:"currency"`
}

type OfferResponse struct {
	OfferID       string                `json:"offer_id"`
	RouteID       string                `json:"route_id"`
	TotalCost     float64               `json:"total_cost"`
	MarginPercent float64               `json:"margin_percent"`
	FinalPrice    float64               `json:"final_price"`
	Breakdown     CostBreakdownResponse `json:"breakdown"`
	FunFact       string                `json:"fun_fact,omitempty"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
}

type ListOfferResponse struct {
	Offers []OfferResponse `json:"offers"`
}

func NewOfferResponse(offer *domain.Offer) OfferResponse {
	res := OfferResponse{
		OfferID:       offer.ID.String(),
		RouteID:       offer.RouteID.String(),
		TotalCost:     Round2(offer.TotalCost),
		MarginPercent: offer.MarginPercent,
		FinalPrice:    Round2(offer.FinalPrice),
		FunFact:       offer.FunFact,
		Status:        string(offer.Status),
		CreatedAt:     offer.CreatedAt,
	}
	if offer.Breakdown != nil {
		res.Breakdown = NewCostBreakdownResponse(offer.Breakdown)
	}
	return res
}

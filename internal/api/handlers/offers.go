package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"cargo-offer-service/internal/api/dto"
	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/platform/metrics"
	"cargo-offer-service/internal/ports"
	"cargo-offer-service/internal/services"

	"github.com/google/uuid"
)

type OfferHandler struct {
	Routes    ports.RouteRepository
	Cache     ports.RouteCache
	Settings  ports.CostSettingRepository
	Offers    ports.OfferRepository
	Assembler *services.OfferAssembler
}

// Create prices a stored route with the requested margin and decorates the
// resulting offer with a fun fact.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OfferRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	routeID, err := uuid.Parse(req.RouteID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "route_id must be a valid UUID")
		return
	}

	route, err := lookupRoute(r, h.Cache, h.Routes, routeID)
	if err != nil {
		log.Printf("route lookup failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if route == nil {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}

	settings, err := h.Settings.ListEnabledCostSettings(r.Context())
	if err != nil {
		log.Printf("list enabled cost settings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	breakdown, err := services.CalculateCosts(route, settings)
	if err != nil {
		var v *domain.ValidationError
		if errors.As(err, &v) {
			writeValidationErrors(w, r, domain.ValidationErrors{v})
			return
		}
		log.Printf("cost calculation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	offer, err := h.Assembler.GenerateOffer(r.Context(), route, breakdown, req.MarginPercent, req.Currency)
	if err != nil {
		var v *domain.ValidationError
		if errors.As(err, &v) {
			writeValidationErrors(w, r, domain.ValidationErrors{v})
			return
		}
		log.Printf("offer generation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	// The assembler swallows provider failures; an empty fact is the only
	// externally visible signal.
	if offer.FunFact != "" {
		metrics.FunFactRequests.WithLabelValues("ok").Inc()
	} else {
		metrics.FunFactRequests.WithLabelValues("empty").Inc()
	}

	if err := h.Offers.SaveOffer(r.Context(), offer); err != nil {
		log.Printf("save offer failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewOfferResponse(offer))
}

// Review lists stored offers, newest first, for manual inspection.
func (h *OfferHandler) Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	offers, err := h.Offers.ListOffers(r.Context())
	if err != nil {
		log.Printf("list offers failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOfferResponse{Offers: make([]dto.OfferResponse, 0, len(offers))}
	for _, o := range offers {
		res.Offers = append(res.Offers, dto.NewOfferResponse(o))
	}
	writeJSON(w, r, http.StatusOK, res)
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"cargo-offer-service/internal/api/dto"
	"cargo-offer-service/internal/domain"
	"cargo-offer-service/internal/ports"
	"cargo-offer-service/internal/services"

	"github.com/google/uuid"
)

type CostHandler struct {
	Routes   ports.RouteRepository
	Cache    ports.RouteCache
	Settings ports.CostSettingRepository
}

// Calculate aggregates the enabled cost settings over a stored route.
func (h *CostHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	routeID, err := uuid.Parse(r.PathValue("route_id"))
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

	writeJSON(w, r, http.StatusOK, dto.CalculateCostsResponse{
		RouteID:   route.ID.String(),
		Breakdown: dto.NewCostBreakdownResponse(breakdown),
	})
}

// SettingsEndpoint serves the cost-setting catalogue: GET lists all
// settings, POST validates and upserts the submitted ones.
func (h *CostHandler) SettingsEndpoint(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSettings(w, r)
	case http.MethodPost:
		h.updateSettings(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *CostHandler) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.ListCostSettings(r.Context())
	if err != nil {
		log.Printf("list cost settings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCostSettingsResponse{Settings: make([]dto.CostSettingPayload, 0, len(settings))}
	for _, s := range settings {
		res.Settings = append(res.Settings, dto.NewCostSettingPayload(s))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *CostHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateCostSettingsRequest

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
	if len(req.Settings) == 0 {
		writeError(w, r, http.StatusBadRequest, "settings must not be empty")
		return
	}

	settings := make([]domain.CostSetting, 0, len(req.Settings))
	for _, p := range req.Settings {
		settings = append(settings, p.ToDomain())
	}

	if errs := services.ValidateCostSettings(settings); len(errs) > 0 {
		writeValidationErrors(w, r, errs)
		return
	}

	updated, err := h.Settings.UpdateCostSettings(r.Context(), settings)
	if err != nil {
		log.Printf("update cost settings failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCostSettingsResponse{Settings: make([]dto.CostSettingPayload, 0, len(updated))}
	for _, s := range updated {
		res.Settings = append(res.Settings, dto.NewCostSettingPayload(s))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// lookupRoute consults the cache first and falls back to the repository.
// A cache error degrades to a repository read, never to a request failure.
func lookupRoute(r *http.Request, cache ports.RouteCache, repo ports.RouteRepository, id uuid.UUID) (*domain.Route, error) {
	if cache != nil {
		route, err := cache.GetRoute(r.Context(), id)
		if err != nil {
			log.Printf("route cache get failed: %v", err)
		} else if route != nil {
			return route, nil
		}
	}
	return repo.GetRoute(r.Context(), id)
}

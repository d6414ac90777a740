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
)

type RouteHandler struct {
	Maps      ports.MapsProvider
	EmptyLegs ports.EmptyDrivingSource
	Routes    ports.RouteRepository
	Cache     ports.RouteCache
}

// Generate builds the timed event sequence for a transport request and
// persists the resulting route for later cost and offer calculations.
func (h *RouteHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

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

	var schedule domain.ValidationErrors

	pickup, err := dto.ParseTimestamp("pickup_time", req.PickupTime)
	if err != nil {
		if !collectViolation(err, &schedule) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	delivery, err := dto.ParseTimestamp("delivery_time", req.DeliveryTime)
	if err != nil {
		if !collectViolation(err, &schedule) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	if len(schedule) > 0 {
		metrics.RoutesGenerated.WithLabelValues("rejected").Inc()
		writeValidationErrors(w, r, schedule)
		return
	}

	origin, err := domain.NewLocation(req.Origin.Latitude, req.Origin.Longitude, req.Origin.Address)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "origin: "+err.Error())
		return
	}
	destination, err := domain.NewLocation(req.Destination.Latitude, req.Destination.Longitude, req.Destination.Address)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "destination: "+err.Error())
		return
	}

	mainRoute, err := h.Maps.GetMainRoute(r.Context(), origin, destination)
	if err != nil {
		log.Printf("maps provider failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route lookup failed")
		return
	}
	emptyLeg, err := h.EmptyLegs.GetEmptyDriving(r.Context(), origin)
	if err != nil {
		log.Printf("empty driving source failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route lookup failed")
		return
	}

	svcReq := services.TimelineRequest{
		Origin:       origin,
		Destination:  destination,
		PickupTime:   pickup,
		DeliveryTime: delivery,
		EmptyDriving: emptyLeg,
		MainRoute:    mainRoute,
	}
	if req.Cargo != nil {
		svcReq.Cargo = &domain.Cargo{
			Type:                req.Cargo.Type,
			WeightKg:            req.Cargo.WeightKg,
			Value:               req.Cargo.Value,
			SpecialRequirements: req.Cargo.SpecialRequirements,
		}
	}
	if req.TransportType != nil {
		svcReq.TransportType = &domain.TransportType{
			Name:                req.TransportType.Name,
			CapacityKg:          req.TransportType.CapacityKg,
			RestrictedCountries: req.TransportType.RestrictedCountries,
		}
	}

	route, err := services.GenerateRoute(svcReq)
	if err != nil {
		var violations domain.ValidationErrors
		if errors.As(err, &violations) {
			metrics.RoutesGenerated.WithLabelValues("rejected").Inc()
			writeValidationErrors(w, r, violations)
			return
		}
		log.Printf("route generation failed: %v", err)
		metrics.RoutesGenerated.WithLabelValues("error").Inc()
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Routes.SaveRoute(r.Context(), route); err != nil {
		log.Printf("save route failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if h.Cache != nil {
		// Cache failures are not client errors; the repository is authoritative.
		if err := h.Cache.PutRoute(r.Context(), route); err != nil {
			log.Printf("route cache put failed: %v", err)
		}
	}

	metrics.RoutesGenerated.WithLabelValues("ok").Inc()
	writeJSON(w, r, http.StatusCreated, dto.NewRouteResponse(route))
}

// collectViolation appends err to errs when it is a business-rule violation
// and reports whether it was one.
func collectViolation(err error, errs *domain.ValidationErrors) bool {
	var v *domain.ValidationError
	if errors.As(err, &v) {
		*errs = append(*errs, v)
		return true
	}
	return false
}

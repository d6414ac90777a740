package api

import (
	"net/http"

	"cargo-offer-service/internal/api/handlers"
	"cargo-offer-service/internal/platform/metrics"
	"cargo-offer-service/internal/ports"
	"cargo-offer-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Dependencies carries every port the HTTP layer needs. Handlers stay
// unaware of concrete adapters; this is the API composition root.
type Dependencies struct {
	Maps      ports.MapsProvider
	EmptyLegs ports.EmptyDrivingSource
	Routes    ports.RouteRepository
	Cache     ports.RouteCache
	Settings  ports.CostSettingRepository
	Offers    ports.OfferRepository
	FunFacts  ports.FunFactProvider
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(deps Dependencies) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{
		Maps:      deps.Maps,
		EmptyLegs: deps.EmptyLegs,
		Routes:    deps.Routes,
		Cache:     deps.Cache,
	}
	costHandler := &handlers.CostHandler{
		Routes:   deps.Routes,
		Cache:    deps.Cache,
		Settings: deps.Settings,
	}
	offerHandler := &handlers.OfferHandler{
		Routes:    deps.Routes,
		Cache:     deps.Cache,
		Settings:  deps.Settings,
		Offers:    deps.Offers,
		Assembler: &services.OfferAssembler{FunFacts: deps.FunFacts},
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/route", routeHandler.Generate)
	mux.HandleFunc("/costs/settings", costHandler.SettingsEndpoint)
	mux.HandleFunc("/costs/{route_id}", costHandler.Calculate)
	mux.HandleFunc("/offer", offerHandler.Create)
	mux.HandleFunc("/data/review", offerHandler.Review)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// 20 req/s with a small burst keeps the demo responsive while capping
	// accidental client loops.
	limiter := rate.NewLimiter(rate.Limit(20), 40)

	return rateLimitMiddleware(limiter, loggingMiddleware(mux))
}

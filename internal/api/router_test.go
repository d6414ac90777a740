package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cargo-offer-service/internal/adapters/funfact"
	"cargo-offer-service/internal/adapters/maps"
	"cargo-offer-service/internal/adapters/repositories"
	"cargo-offer-service/internal/api/dto"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	return NewRouter(Dependencies{
		Maps:      maps.NewMockMapsProvider(nil),
		EmptyLegs: maps.NewStaticEmptyDrivingSource(),
		Routes:    repositories.NewMemory(repositories.DefaultCostSettings()),
		Settings:  repositories.NewMemory(repositories.DefaultCostSettings()),
		Offers:    repositories.NewMemory(nil),
		FunFacts:  funfact.StaticProvider{},
	})
}

// newSharedRouter backs every port with the same in-memory store so routes
// created through the API are visible to the cost and offer endpoints.
func newSharedRouter(t *testing.T) http.Handler {
	t.Helper()

	mem := repositories.NewMemory(repositories.DefaultCostSettings())
	return NewRouter(Dependencies{
		Maps:      maps.NewMockMapsProvider(nil),
		EmptyLegs: maps.NewStaticEmptyDrivingSource(),
		Routes:    mem,
		Settings:  mem,
		Offers:    mem,
		FunFacts:  funfact.StaticProvider{},
	})
}

func routeBody() []byte {
	return []byte(`{
		"origin": {"latitude": 52.52, "longitude": 13.405, "address": "Berlin, Germany"},
		"destination": {"latitude": 48.8566, "longitude": 2.3522, "address": "Paris, France"},
		"pickup_time": "2024-12-08T09:00:00+01:00",
		"delivery_time": "2024-12-09T17:00:00+01:00"
	}`)
}

func postJSON(t *testing.T, h http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health: got %d", rr.Code)
	}
}

func TestGenerateRouteEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rr := postJSON(t, h, "/route", routeBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("route: got %d, body %s", rr.Code, rr.Body.String())
	}

	var res struct {
		RouteID            string  `json:"route_id"`
		TotalDurationHours float64 `json:"total_duration_hours"`
		TotalDistanceKm    float64 `json:"total_distance_km"`
		IsFeasible         bool    `json:"is_feasible"`
		Timeline           []struct {
			Kind string `json:"kind"`
		} `json:"timeline"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.RouteID == "" {
		t.Error("expected a route id")
	}
	if res.TotalDistanceKm != 1200 {
		t.Errorf("total distance = %v, want 1200", res.TotalDistanceKm)
	}
	if res.TotalDurationHours != 16.25 {
		t.Errorf("total duration = %v, want 16.25", res.TotalDurationHours)
	}
	if !res.IsFeasible {
		t.Error("expected a feasible route")
	}
	if len(res.Timeline) == 0 {
		t.Fatal("expected timeline events")
	}
	if res.Timeline[0].Kind != "start" {
		t.Errorf("first event = %s, want start", res.Timeline[0].Kind)
	}
	if res.Timeline[len(res.Timeline)-1].Kind != "end" {
		t.Errorf("last event = %s, want end", res.Timeline[len(res.Timeline)-1].Kind)
	}
}

func TestGenerateRouteRejectsNaiveTimestamp(t *testing.T) {
	h := newTestRouter(t)

	body := []byte(`{
		"origin": {"latitude": 52.52, "longitude": 13.405, "address": "Berlin, Germany"},
		"destination": {"latitude": 48.8566, "longitude": 2.3522, "address": "Paris, France"},
		"pickup_time": "2024-12-08T09:00:00",
		"delivery_time": "2024-12-09T17:00:00+01:00"
	}`)

	rr := postJSON(t, h, "/route", body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body %s", rr.Code, rr.Body.String())
	}

	var res struct {
		Errors []struct {
			Code string `json:"code"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Code != "naive_timestamp" {
		t.Fatalf("errors = %+v, want one naive_timestamp", res.Errors)
	}
}

func TestGenerateRouteRejectsUnknownFields(t *testing.T) {
	h := newTestRouter(t)

	rr := postJSON(t, h, "/route", []byte(`{"bogus": true}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestGenerateRouteRejectsOutOfRangeCoordinates(t *testing.T) {
	h := newTestRouter(t)

	body := []byte(`{
		"origin": {"latitude": 95, "longitude": 13.405, "address": "nowhere"},
		"destination": {"latitude": 48.8566, "longitude": 2.3522, "address": "Paris, France"},
		"pickup_time": "2024-12-08T09:00:00+01:00",
		"delivery_time": "2024-12-09T17:00:00+01:00"
	}`)

	rr := postJSON(t, h, "/route", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400, body %s", rr.Code, rr.Body.String())
	}
}

func TestCalculateCostsEndpoint(t *testing.T) {
	h := newSharedRouter(t)

	rr := postJSON(t, h, "/route", routeBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("route: got %d, body %s", rr.Code, rr.Body.String())
	}
	var route struct {
		RouteID string `json:"route_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &route); err != nil {
		t.Fatalf("decode route: %v", err)
	}

	rr = postJSON(t, h, "/costs/"+route.RouteID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("costs: got %d, body %s", rr.Code, rr.Body.String())
	}

	var res struct {
		RouteID   string `json:"route_id"`
		Breakdown struct {
			Categories map[string]map[string]float64 `json:"categories"`
			Subtotals  map[string]float64            `json:"subtotals"`
			Total      float64                       `json:"total"`
			Currency   string                        `json:"currency"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode costs: %v", err)
	}

	if res.RouteID != route.RouteID {
		t.Errorf("route_id = %s, want %s", res.RouteID, route.RouteID)
	}
	if res.Breakdown.Currency != "EUR" {
		t.Errorf("currency = %s, want EUR", res.Breakdown.Currency)
	}
	// fuel 1.5*1200 + toll 0.2*1200 + maintenance 0.2*1200 + driver 30*16.25 + insurance 100
	want := 1800.0 + 240 + 240 + 487.5 + 100
	if res.Breakdown.Total != want {
		t.Errorf("total = %v, want %v", res.Breakdown.Total, want)
	}
	if got := res.Breakdown.Categories["variable"]["fuel"]; got != 1800 {
		t.Errorf("fuel = %v, want 1800", got)
	}
}

func TestCalculateCostsUnknownRoute(t *testing.T) {
	h := newTestRouter(t)

	rr := postJSON(t, h, "/costs/5f6c1b22-7a93-4a10-9df8-3a2f1c3b9e01", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}

func TestCalculateCostsBadRouteID(t *testing.T) {
	h := newTestRouter(t)

	rr := postJSON(t, h, "/costs/not-a-uuid", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
}

func TestCostSettingsListAndUpdate(t *testing.T) {
	h := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/costs/settings", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("list settings: got %d", rr.Code)
	}

	var res struct {
		Settings []struct {
			ID        string `json:"id"`
			Type      string `json:"type"`
			IsEnabled bool   `json:"is_enabled"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if len(res.Settings) == 0 {
		t.Fatal("expected seeded settings")
	}

	update := []byte(`{"settings": [
		{"id": "` + res.Settings[0].ID + `", "type": "fuel", "category": "variable", "base_value": 2.0, "multiplier": 1, "currency": "EUR", "is_enabled": false, "description": "Fuel cost per kilometer"}
	]}`)
	rr = postJSON(t, h, "/costs/settings", update)
	if rr.Code != http.StatusOK {
		t.Fatalf("update settings: got %d, body %s", rr.Code, rr.Body.String())
	}
}

func TestCostSettingsUpdateRejectsNegativeValues(t *testing.T) {
	h := newTestRouter(t)

	update := []byte(`{"settings": [
		{"type": "fuel", "category": "variable", "base_value": -2.0, "multiplier": 1, "currency": "EUR", "is_enabled": true, "description": ""}
	]}`)
	rr := postJSON(t, h, "/costs/settings", update)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body %s", rr.Code, rr.Body.String())
	}
}

func TestOfferEndpoint(t *testing.T) {
	h := newSharedRouter(t)

	rr := postJSON(t, h, "/route", routeBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("route: got %d", rr.Code)
	}
	var route struct {
		RouteID string `json:"route_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &route); err != nil {
		t.Fatalf("decode route: %v", err)
	}

	rr = postJSON(t, h, "/offer", []byte(`{"route_id": "`+route.RouteID+`", "margin_percent": 15}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("offer: got %d, body %s", rr.Code, rr.Body.String())
	}

	var offer struct {
		OfferID       string  `json:"offer_id"`
		RouteID       string  `json:"route_id"`
		TotalCost     float64 `json:"total_cost"`
		MarginPercent float64 `json:"margin_percent"`
		FinalPrice    float64 `json:"final_price"`
		FunFact       string  `json:"fun_fact"`
		Status        string  `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &offer); err != nil {
		t.Fatalf("decode offer: %v", err)
	}

	if offer.RouteID != route.RouteID {
		t.Errorf("route_id = %s, want %s", offer.RouteID, route.RouteID)
	}
	if offer.Status != "draft" {
		t.Errorf("status = %s, want draft", offer.Status)
	}
	wantFinal := dto.Round2(offer.TotalCost * 1.15)
	if offer.FinalPrice != wantFinal {
		t.Errorf("final price = %v, want %v", offer.FinalPrice, wantFinal)
	}
	if offer.FunFact == "" {
		t.Error("expected a fun fact from the static provider")
	}

	// The review endpoint lists the stored offer.
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/data/review", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("review: got %d", rr.Code)
	}
	var review struct {
		Offers []struct {
			OfferID string `json:"offer_id"`
		} `json:"offers"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &review); err != nil {
		t.Fatalf("decode review: %v", err)
	}
	if len(review.Offers) != 1 || review.Offers[0].OfferID != offer.OfferID {
		t.Fatalf("review offers = %+v, want the created offer", review.Offers)
	}
}

func TestOfferRejectsNegativeMargin(t *testing.T) {
	h := newSharedRouter(t)

	rr := postJSON(t, h, "/route", routeBody())
	if rr.Code != http.StatusCreated {
		t.Fatalf("route: got %d", rr.Code)
	}
	var route struct {
		RouteID string `json:"route_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &route); err != nil {
		t.Fatalf("decode route: %v", err)
	}

	rr = postJSON(t, h, "/offer", []byte(`{"route_id": "`+route.RouteID+`", "margin_percent": -5}`))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %d, want 422, body %s", rr.Code, rr.Body.String())
	}
}

func TestOfferUnknownRoute(t *testing.T) {
	h := newTestRouter(t)

	rr := postJSON(t, h, "/offer", []byte(`{"route_id": "5f6c1b22-7a93-4a10-9df8-3a2f1c3b9e01", "margin_percent": 10}`))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/route", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got %d, want 405", rr.Code)
	}
}

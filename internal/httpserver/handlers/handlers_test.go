package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/roberta039/flight-search-3/internal/cache"
	"github.com/roberta039/flight-search-3/internal/domain"
	"github.com/roberta039/flight-search-3/internal/httpserver/deps"
	"github.com/roberta039/flight-search-3/internal/logger"
	"github.com/roberta039/flight-search-3/internal/provider"
	"github.com/roberta039/flight-search-3/internal/service"
)

type stubProvider struct {
	offers []domain.FlightOffer
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	return s.offers, nil
}

func testDeps(offers ...domain.FlightOffer) deps.Deps {
	caches := cache.NewManager(nil)
	svc := service.New(service.Options{
		Providers: []provider.Client{&stubProvider{offers: offers}},
		Caches:    caches,
		Logger:    logger.Nop(),
	})
	return deps.Deps{
		Logger:          logger.Nop(),
		StartTime:       time.Now(),
		TimeNow:         time.Now,
		Caches:          caches,
		Search:          svc,
		DefaultCurrency: "EUR",
		MaxResults:      50,
		RefreshTrigger:  make(chan struct{}, 1),
		Providers:       []string{"stub"},
	}
}

func testOffer(price float64) domain.FlightOffer {
	dep := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	return domain.FlightOffer{
		ID:            "s1",
		Source:        "stub",
		Origin:        "OTP",
		Destination:   "FCO",
		Price:         price,
		Currency:      "EUR",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(2 * time.Hour),
		Duration:      "2h",
	}
}

func TestSearchHandler(t *testing.T) {
	d := testDeps(testOffer(120.50))
	handler := Search(d)

	body := `{"origin": "OTP", "destination": "FCO", "departure_date": "2025-08-15", "adults": 2}`
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Route    string   `json:"route"`
		Count    int      `json:"count"`
		MinPrice *float64 `json:"min_price"`
		Offers   []struct {
			Price          float64 `json:"price"`
			StopsLabel     string  `json:"stops_label"`
			PricePerPerson float64 `json:"price_per_person"`
		} `json:"offers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response decode error: %v", err)
	}
	if resp.Route != "OTP-FCO-2025-08-15" {
		t.Errorf("route = %q, want OTP-FCO-2025-08-15", resp.Route)
	}
	if resp.Count != 1 || len(resp.Offers) != 1 {
		t.Errorf("count/offers = %d/%d, want 1/1", resp.Count, len(resp.Offers))
	}
	if resp.MinPrice == nil || *resp.MinPrice != 120.50 {
		t.Errorf("min_price = %v, want 120.50", resp.MinPrice)
	}
	// 2 adults requested, so the direct 120.50 offer splits to 60.25 each
	if got := resp.Offers[0]; got.StopsLabel != "Direct" || got.PricePerPerson != 60.25 {
		t.Errorf("offer view = %q/%v, want Direct/60.25", got.StopsLabel, got.PricePerPerson)
	}
}

func TestSearchHandlerBadRequests(t *testing.T) {
	d := testDeps()
	handler := Search(d)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"bad date", `{"origin": "OTP", "destination": "FCO", "departure_date": "15/08/2025"}`},
		{"same airports", `{"origin": "OTP", "destination": "OTP", "departure_date": "2025-08-15"}`},
		{"bad iata", `{"origin": "BUCHAREST", "destination": "FCO", "departure_date": "2025-08-15"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestMonitorHandlers(t *testing.T) {
	d := testDeps(testOffer(99))

	r := chi.NewRouter()
	r.Get("/api/monitors", ListMonitors(d))
	r.Post("/api/monitors", CreateMonitor(d))
	r.Delete("/api/monitors/{route}", DeleteMonitor(d))
	r.Get("/api/monitors/{route}/history", MonitorHistory(d))

	// Create
	body := `{"origin": "OTP", "destination": "FCO", "departure_date": "2025-08-15", "adults": 1, "target_price": 100}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/monitors", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	route := created["route"]
	if route != "OTP-FCO-2025-08-15" {
		t.Fatalf("created route = %q, want OTP-FCO-2025-08-15", route)
	}

	// List
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/monitors", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var listed []monitorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("list decode error: %v", err)
	}
	if len(listed) != 1 || listed[0].Route != route {
		t.Fatalf("listed monitors = %+v, want the created route", listed)
	}

	// History starts empty
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/monitors/"+route+"/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d, want 200", rec.Code)
	}

	// Delete
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/monitors/"+route, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	if len(d.Search.MonitoredRoutes()) != 0 {
		t.Error("monitor survived delete")
	}
}

func TestRefreshMonitorsHandler(t *testing.T) {
	d := testDeps()
	handler := RefreshMonitors(d)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/monitors/refresh", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	// Channel full: second trigger is rejected
	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/monitors/refresh", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second trigger status = %d, want 429", rec.Code)
	}
}

func TestClearCacheHandler(t *testing.T) {
	d := testDeps()
	d.Caches.Set(cache.CategoryFlights, "payload", "k")
	handler := ClearCache(d)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/cache/clear?category=flights", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, ok := d.Caches.Get(cache.CategoryFlights, "k"); ok {
		t.Error("flights cache survived clear")
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/api/cache/clear?category=bogus", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown category status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	d := testDeps()
	d.Version = "1.2.3"

	rec := httptest.NewRecorder()
	Healthz(d)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "1.2.3" {
		t.Errorf("response = %+v, want ok/1.2.3", resp)
	}
}

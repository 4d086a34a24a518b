package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/alex-user-go/ean/internal/ean"
	"github.com/alex-user-go/ean/internal/handler"
)

// mockSearcher is a test service that records the request it received.
type mockSearcher struct {
	result      *ean.Result
	err         error
	gotReq      *ean.SearchRequest
	gotHotelID  int64
	roomsCalled bool
}

func (m *mockSearcher) Search(ctx context.Context, req ean.SearchRequest) (*ean.Result, error) {
	m.gotReq = &req
	return m.result, m.err
}

func (m *mockSearcher) SearchRooms(ctx context.Context, hotelID int64, req ean.SearchRequest) (*ean.Result, error) {
	m.roomsCalled = true
	m.gotHotelID = hotelID
	m.gotReq = &req
	return m.result, m.err
}

func newHandler(svc handler.Searcher) *handler.Handler {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return handler.New(svc, logger)
}

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandler_SearchHandler_Validation(t *testing.T) {
	tests := []struct {
		name        string
		queryParams string
		wantStatus  int
		wantError   string
	}{
		{
			name:        "successful dateless search",
			queryParams: "destination=seattle",
			wantStatus:  http.StatusOK,
		},
		{
			name:        "successful availability search",
			queryParams: "destination=seattle&arrival=2025-12-01&departure=2025-12-03&room=2&room=2,5,7",
			wantStatus:  http.StatusOK,
		},
		{
			name:        "missing destination and hotels",
			queryParams: "arrival=2025-12-01&departure=2025-12-03&room=2",
			wantStatus:  http.StatusBadRequest,
			wantError:   "destination or hotels is required",
		},
		{
			name:        "arrival without departure",
			queryParams: "destination=seattle&arrival=2025-12-01&room=2",
			wantStatus:  http.StatusBadRequest,
			wantError:   "arrival and departure must be supplied together",
		},
		{
			name:        "invalid arrival format",
			queryParams: "destination=seattle&arrival=12/01/2025&departure=12/03/2025&room=2",
			wantStatus:  http.StatusBadRequest,
			wantError:   "arrival must be in YYYY-MM-DD format",
		},
		{
			name:        "departure before arrival",
			queryParams: "destination=seattle&arrival=2025-12-03&departure=2025-12-01&room=2",
			wantStatus:  http.StatusBadRequest,
			wantError:   "departure must be after arrival",
		},
		{
			name:        "room without dates",
			queryParams: "destination=seattle&room=2",
			wantStatus:  http.StatusBadRequest,
			wantError:   "room requires arrival and departure dates",
		},
		{
			name:        "dated search without rooms",
			queryParams: "destination=seattle&arrival=2025-12-01&departure=2025-12-03",
			wantStatus:  http.StatusBadRequest,
			wantError:   "at least one room is required for a dated search",
		},
		{
			name:        "invalid room adults",
			queryParams: "destination=seattle&arrival=2025-12-01&departure=2025-12-03&room=0",
			wantStatus:  http.StatusBadRequest,
			wantError:   "room adults must be a positive integer",
		},
		{
			name:        "invalid room child age",
			queryParams: "destination=seattle&arrival=2025-12-01&departure=2025-12-03&room=2,abc",
			wantStatus:  http.StatusBadRequest,
			wantError:   "room child ages must be non-negative integers",
		},
		{
			name:        "invalid results",
			queryParams: "destination=seattle&results=-5",
			wantStatus:  http.StatusBadRequest,
			wantError:   "results must be a positive integer",
		},
		{
			name:        "invalid hotels list",
			queryParams: "hotels=12345,abc",
			wantStatus:  http.StatusBadRequest,
			wantError:   "hotels must be a comma-joined list of positive integers",
		},
		{
			name:        "invalid flag",
			queryParams: "destination=seattle&details=maybe",
			wantStatus:  http.StatusBadRequest,
			wantError:   "details must be a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockSearcher{result: &ean.Result{Hotels: []ean.Hotel{{ID: 109496, Name: "Hotel A"}}}}
			h := newHandler(svc)

			rec := serve(h.SearchHandler, "/search?"+tt.queryParams)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantError != "" {
				var body map[string]string
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode error body: %v", err)
				}
				if body["error"] != tt.wantError {
					t.Errorf("error = %q, want %q", body["error"], tt.wantError)
				}
			}
		})
	}
}

func TestHandler_SearchHandler_BuildsRequest(t *testing.T) {
	svc := &mockSearcher{result: &ean.Result{Hotels: []ean.Hotel{{ID: 109496}}}}
	h := newHandler(svc)

	rec := serve(h.SearchHandler,
		"/search?destination=seattle&arrival=2025-12-01&departure=2025-12-03&room=2&room=1,4&results=25&details=true&surrounding=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	req := svc.gotReq
	if req == nil {
		t.Fatal("service was not called")
	}
	if req.Arrival != "12/01/2025" || req.Departure != "12/03/2025" {
		t.Errorf("dates = %q/%q, want EAN wire format", req.Arrival, req.Departure)
	}
	wantRooms := []ean.RoomOccupancy{{Adults: 2}, {Adults: 1, ChildAges: []int{4}}}
	if !reflect.DeepEqual(req.Rooms, wantRooms) {
		t.Errorf("rooms = %+v, want %+v", req.Rooms, wantRooms)
	}
	if req.NumberOfResults != 25 {
		t.Errorf("NumberOfResults = %d, want 25", req.NumberOfResults)
	}
	if !req.IncludeDetails || !req.IncludeSurrounding || req.IncludeFeeBreakdown {
		t.Errorf("flags = %v/%v/%v, want true/true/false",
			req.IncludeDetails, req.IncludeSurrounding, req.IncludeFeeBreakdown)
	}
	if req.Location != ean.Destination("seattle") {
		t.Errorf("Location = %v, want Destination(seattle)", req.Location)
	}

	var body handler.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Stats.Hotels != 1 {
		t.Errorf("stats.hotels = %d, want 1", body.Stats.Hotels)
	}
	if body.Search.Arrival != "2025-12-01" {
		t.Errorf("search.arrival = %q, want the ISO date echoed", body.Search.Arrival)
	}
}

func TestHandler_SearchHandler_UpstreamAPIError(t *testing.T) {
	svc := &mockSearcher{err: &ean.APIError{
		Message:  "The API key is invalid.",
		Handling: "RECOVERABLE",
	}}
	h := newHandler(svc)

	rec := serve(h.SearchHandler, "/search?destination=seattle")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "The API key is invalid." {
		t.Errorf("error = %v", body["error"])
	}
	if body["reservation_made"] != false {
		t.Errorf("reservation_made = %v, want false", body["reservation_made"])
	}
}

func TestHandler_SearchHandler_TransportError(t *testing.T) {
	svc := &mockSearcher{err: context.DeadlineExceeded}
	h := newHandler(svc)

	rec := serve(h.SearchHandler, "/search?destination=seattle")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "search failed") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandler_RoomsHandler(t *testing.T) {
	svc := &mockSearcher{result: &ean.Result{Hotels: []ean.Hotel{{
		ID:    109496,
		Rooms: []ean.Room{{RateKey: "0ABAA845"}},
	}}}}
	h := newHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /hotels/{id}/rooms", h.RoomsHandler)

	req := httptest.NewRequest(http.MethodGet,
		"/hotels/109496/rooms?destination=seattle&arrival=2025-12-01&departure=2025-12-03&room=2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !svc.roomsCalled {
		t.Fatal("expected SearchRooms to be called")
	}
	if svc.gotHotelID != 109496 {
		t.Errorf("hotel id = %d, want 109496", svc.gotHotelID)
	}

	var body handler.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Search.HotelIDs != "109496" {
		t.Errorf("search.hotel_ids = %q, want the scoped id", body.Search.HotelIDs)
	}
	if body.Search.Destination != "" {
		t.Errorf("search.destination = %q, want empty once scoped", body.Search.Destination)
	}
}

func TestHandler_RoomsHandler_Validation(t *testing.T) {
	svc := &mockSearcher{result: &ean.Result{}}
	h := newHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /hotels/{id}/rooms", h.RoomsHandler)

	tests := []struct {
		name      string
		target    string
		wantError string
	}{
		{
			name:      "non-numeric hotel id",
			target:    "/hotels/abc/rooms?arrival=2025-12-01&departure=2025-12-03&room=2",
			wantError: "hotel id must be a positive integer",
		},
		{
			name:      "dateless room search",
			target:    "/hotels/109496/rooms?destination=seattle",
			wantError: "arrival and departure are required for room searches",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}

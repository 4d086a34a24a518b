package search_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/alex-user-go/ean/internal/ean"
	"github.com/alex-user-go/ean/internal/obs"
	"github.com/alex-user-go/ean/internal/search"
)

// mockClient is a test client that returns predefined results.
type mockClient struct {
	result *ean.Result
	err    error
}

func (m *mockClient) Search(ctx context.Context, req ean.SearchRequest) (*ean.Result, error) {
	return m.result, m.err
}

func (m *mockClient) SearchRooms(ctx context.Context, hotelID int64, req ean.SearchRequest) (*ean.Result, error) {
	return m.result, m.err
}

func newService(client search.EANClient) (*search.Service, *obs.Metrics) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	metrics := obs.NewMetrics(logger)
	return search.New(client, metrics, logger), metrics
}

func TestService_Search_Success(t *testing.T) {
	want := &ean.Result{
		URL:    "http://api.ean.com/ean-services/rs/hotel/v3/list?destinationString=paris",
		Hotels: []ean.Hotel{{ID: 109496, Name: "Hotel A"}},
	}
	svc, metrics := newService(&mockClient{result: want})

	result, err := svc.Search(context.Background(), ean.SearchRequest{Location: ean.Destination("paris")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != want {
		t.Error("service must return the client result untouched")
	}

	snapshot := metrics.Snapshot()
	if snapshot.Searches != 1 {
		t.Errorf("Searches = %d, want 1", snapshot.Searches)
	}
	if snapshot.APIErrors != 0 || snapshot.TransportErrors != 0 {
		t.Errorf("expected no error counts, got %+v", snapshot)
	}
}

func TestService_Search_APIErrorCounted(t *testing.T) {
	apiErr := &ean.APIError{Message: "The API key is invalid.", Handling: "RECOVERABLE"}
	svc, metrics := newService(&mockClient{err: apiErr})

	_, err := svc.Search(context.Background(), ean.SearchRequest{Location: ean.Destination("paris")})
	if !errors.Is(err, apiErr) {
		t.Fatalf("expected the API error to propagate, got %v", err)
	}

	snapshot := metrics.Snapshot()
	if snapshot.APIErrors != 1 {
		t.Errorf("APIErrors = %d, want 1", snapshot.APIErrors)
	}
	if snapshot.TransportErrors != 0 {
		t.Errorf("TransportErrors = %d, want 0", snapshot.TransportErrors)
	}
}

func TestService_Search_TransportErrorCounted(t *testing.T) {
	transportErr := errors.New("request failed: connection refused")
	svc, metrics := newService(&mockClient{err: transportErr})

	_, err := svc.Search(context.Background(), ean.SearchRequest{Location: ean.Destination("paris")})
	if !errors.Is(err, transportErr) {
		t.Fatalf("expected the transport error to propagate, got %v", err)
	}

	snapshot := metrics.Snapshot()
	if snapshot.TransportErrors != 1 {
		t.Errorf("TransportErrors = %d, want 1", snapshot.TransportErrors)
	}
	if snapshot.APIErrors != 0 {
		t.Errorf("APIErrors = %d, want 0", snapshot.APIErrors)
	}
}

func TestService_Search_ValidationErrorNotCounted(t *testing.T) {
	svc, metrics := newService(&mockClient{err: ean.ErrNoLocation})

	_, err := svc.Search(context.Background(), ean.SearchRequest{})
	if !errors.Is(err, ean.ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}

	snapshot := metrics.Snapshot()
	if snapshot.APIErrors != 0 || snapshot.TransportErrors != 0 {
		t.Errorf("validation errors must not count as upstream failures, got %+v", snapshot)
	}
}

func TestService_SearchRooms(t *testing.T) {
	want := &ean.Result{
		Hotels: []ean.Hotel{{
			ID:    109496,
			Rooms: []ean.Room{{RateKey: "0ABAA845"}, {RateKey: "1BCBB956"}},
		}},
	}
	svc, metrics := newService(&mockClient{result: want})

	result, err := svc.SearchRooms(context.Background(), 109496, ean.SearchRequest{
		Arrival:   "12/01/2025",
		Departure: "12/02/2025",
		Rooms:     []ean.RoomOccupancy{{Adults: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != want {
		t.Error("service must return the client result untouched")
	}
	if metrics.Snapshot().Searches != 1 {
		t.Errorf("Searches = %d, want 1", metrics.Snapshot().Searches)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api error", &ean.APIError{Message: "boom"}, search.FailureAPI},
		{"wrapped api error", errors.Join(errors.New("ctx"), &ean.APIError{Message: "boom"}), search.FailureAPI},
		{"transport error", errors.New("request failed: timeout"), search.FailureTransport},
		{"no location", ean.ErrNoLocation, ""},
		{"not implemented", ean.ErrNotImplemented, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := search.Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

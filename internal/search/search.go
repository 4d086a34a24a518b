package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alex-user-go/ean/internal/ean"
	"github.com/alex-user-go/ean/internal/obs"
)

// EANClient is the upstream the service searches against.
type EANClient interface {
	Search(ctx context.Context, req ean.SearchRequest) (*ean.Result, error)
	SearchRooms(ctx context.Context, hotelID int64, req ean.SearchRequest) (*ean.Result, error)
}

// Failure classes recorded on errors, for stats and logging.
const (
	FailureAPI       = "api"
	FailureTransport = "transport"
)

// Service runs hotel searches against a single EAN client, recording
// metrics and classifying failures. It adds no retry, caching or
// batching; every call is one upstream round-trip.
type Service struct {
	client  EANClient
	metrics *obs.Metrics
	logger  *slog.Logger
}

// New creates a new Service.
func New(client EANClient, metrics *obs.Metrics, logger *slog.Logger) *Service {
	return &Service{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Search performs one hotel search.
func (s *Service) Search(ctx context.Context, req ean.SearchRequest) (*ean.Result, error) {
	s.metrics.IncSearches()
	start := time.Now()

	result, err := s.client.Search(ctx, req)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.logger.Info("search completed",
		"availability", req.IsAvailability(),
		"hotels", len(result.Hotels),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// SearchRooms fetches room rates for a single property.
func (s *Service) SearchRooms(ctx context.Context, hotelID int64, req ean.SearchRequest) (*ean.Result, error) {
	s.metrics.IncSearches()
	start := time.Now()

	result, err := s.client.SearchRooms(ctx, hotelID, req)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	rooms := 0
	for _, h := range result.Hotels {
		rooms += len(h.Rooms)
	}
	s.logger.Info("room search completed",
		"hotel_id", hotelID,
		"rooms", rooms,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// Classify maps an upstream error onto its failure class. Validation
// errors such as ean.ErrNoLocation classify as neither.
func Classify(err error) string {
	var apiErr *ean.APIError
	if errors.As(err, &apiErr) {
		return FailureAPI
	}
	if errors.Is(err, ean.ErrNoLocation) || errors.Is(err, ean.ErrNotImplemented) {
		return ""
	}
	return FailureTransport
}

func (s *Service) recordFailure(err error) {
	switch Classify(err) {
	case FailureAPI:
		var apiErr *ean.APIError
		errors.As(err, &apiErr)
		s.metrics.IncAPIErrors()
		s.logger.Warn("ean reported error",
			"handling", apiErr.Handling,
			"reservation_made", apiErr.ReservationMade,
			"error", apiErr.Message,
		)
	case FailureTransport:
		s.metrics.IncTransportErrors()
		s.logger.Error("ean request failed", "error", err)
	}
}

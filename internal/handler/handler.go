package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alex-user-go/ean/internal/ean"
	"github.com/alex-user-go/ean/internal/middleware"
	"github.com/alex-user-go/ean/internal/search"
)

// wireDateFormat is what the EAN endpoint expects; the HTTP surface
// accepts ISO dates and converts.
const (
	isoDateFormat  = "2006-01-02"
	wireDateFormat = "01/02/2006"
)

// Searcher is the search service the handler fronts.
type Searcher interface {
	Search(ctx context.Context, req ean.SearchRequest) (*ean.Result, error)
	SearchRooms(ctx context.Context, hotelID int64, req ean.SearchRequest) (*ean.Result, error)
}

// Handler handles HTTP requests.
type Handler struct {
	service Searcher
	logger  *slog.Logger
}

// New creates a new Handler.
func New(service Searcher, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SearchResponse represents the complete API response.
type SearchResponse struct {
	Search SearchInfo  `json:"search"`
	Stats  SearchStats `json:"stats"`
	Hotels []ean.Hotel `json:"hotels"`
}

// SearchInfo echoes the search parameters.
type SearchInfo struct {
	Destination string `json:"destination,omitempty"`
	HotelIDs    string `json:"hotel_ids,omitempty"`
	Arrival     string `json:"arrival,omitempty"`
	Departure   string `json:"departure,omitempty"`
	Rooms       int    `json:"rooms,omitempty"`
}

// SearchStats contains search statistics.
type SearchStats struct {
	Hotels     int   `json:"hotels"`
	DurationMs int64 `json:"duration_ms"`
}

// SearchHandler handles /search requests.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := middleware.RequestID(r.Context())

	req, info, err := ParseSearchParams(r)
	if err != nil {
		h.logger.Debug("invalid request parameters", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Search(r.Context(), *req)
	if err != nil {
		h.writeSearchError(w, requestID, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SearchResponse{
		Search: *info,
		Stats: SearchStats{
			Hotels:     len(result.Hotels),
			DurationMs: time.Since(startTime).Milliseconds(),
		},
		Hotels: result.Hotels,
	})
}

// RoomsHandler handles /hotels/{id}/rooms requests: an availability
// search scoped to one property.
func (h *Handler) RoomsHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	requestID := middleware.RequestID(r.Context())

	hotelID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || hotelID <= 0 {
		writeError(w, http.StatusBadRequest, "hotel id must be a positive integer")
		return
	}

	// The path already scopes the search to one property, so no
	// destination is expected here; only the stay parameters apply.
	req, info, err := parseStayParams(r)
	if err != nil {
		h.logger.Debug("invalid request parameters", "request_id", requestID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.IsAvailability() {
		writeError(w, http.StatusBadRequest, "arrival and departure are required for room searches")
		return
	}

	result, err := h.service.SearchRooms(r.Context(), hotelID, *req)
	if err != nil {
		h.writeSearchError(w, requestID, err)
		return
	}

	info.HotelIDs = strconv.FormatInt(hotelID, 10)
	writeJSON(w, h.logger, http.StatusOK, SearchResponse{
		Search: *info,
		Stats: SearchStats{
			Hotels:     len(result.Hotels),
			DurationMs: time.Since(startTime).Milliseconds(),
		},
		Hotels: result.Hotels,
	})
}

// writeSearchError maps service failures onto HTTP statuses: EAN's own
// error envelope becomes a 502 carrying the server's diagnostics,
// everything else a generic 500.
func (h *Handler) writeSearchError(w http.ResponseWriter, requestID string, err error) {
	var apiErr *ean.APIError
	if search.Classify(err) == search.FailureAPI && errors.As(err, &apiErr) {
		h.logger.Warn("upstream reported error", "request_id", requestID, "handling", apiErr.Handling, "error", apiErr.Message)
		writeJSON(w, h.logger, http.StatusBadGateway, map[string]any{
			"error":            apiErr.Message,
			"handling":         apiErr.Handling,
			"reservation_made": apiErr.ReservationMade,
		})
		return
	}

	h.logger.Error("search failed", "request_id", requestID, "error", err)
	writeError(w, http.StatusInternalServerError, "search failed")
}

// ParseSearchParams parses and validates search parameters from the
// request into an EAN search request plus an echo of what was asked.
//
// Query parameters: destination, hotels (comma-joined ids), arrival and
// departure (YYYY-MM-DD, both or neither), room (repeatable,
// "adults[,childAge...]"), results, details, fees, surrounding.
func ParseSearchParams(r *http.Request) (*ean.SearchRequest, *SearchInfo, error) {
	query := r.URL.Query()

	req, info, err := parseStayParams(r)
	if err != nil {
		return nil, nil, err
	}

	destination := strings.TrimSpace(query.Get("destination"))
	hotels := strings.TrimSpace(query.Get("hotels"))
	if destination == "" && hotels == "" {
		return nil, nil, fmt.Errorf("destination or hotels is required")
	}
	if destination != "" {
		req.Location = ean.Destination(destination)
		info.Destination = destination
	}
	if hotels != "" {
		ids, err := parseHotelIDs(hotels)
		if err != nil {
			return nil, nil, err
		}
		req.HotelIDs = ids
		info.HotelIDs = hotels
	}

	return req, info, nil
}

// parseStayParams parses the parameters shared by both endpoints: dates,
// rooms, result count and detail flags.
func parseStayParams(r *http.Request) (*ean.SearchRequest, *SearchInfo, error) {
	query := r.URL.Query()

	req := &ean.SearchRequest{}
	info := &SearchInfo{}

	arrival := strings.TrimSpace(query.Get("arrival"))
	departure := strings.TrimSpace(query.Get("departure"))
	if (arrival == "") != (departure == "") {
		return nil, nil, fmt.Errorf("arrival and departure must be supplied together")
	}
	if arrival != "" {
		arrivalDate, err := time.Parse(isoDateFormat, arrival)
		if err != nil {
			return nil, nil, fmt.Errorf("arrival must be in YYYY-MM-DD format")
		}
		departureDate, err := time.Parse(isoDateFormat, departure)
		if err != nil {
			return nil, nil, fmt.Errorf("departure must be in YYYY-MM-DD format")
		}
		if !departureDate.After(arrivalDate) {
			return nil, nil, fmt.Errorf("departure must be after arrival")
		}
		req.Arrival = arrivalDate.Format(wireDateFormat)
		req.Departure = departureDate.Format(wireDateFormat)
		info.Arrival = arrival
		info.Departure = departure
	}

	roomValues := query["room"]
	if len(roomValues) > 0 && arrival == "" {
		return nil, nil, fmt.Errorf("room requires arrival and departure dates")
	}
	if arrival != "" && len(roomValues) == 0 {
		return nil, nil, fmt.Errorf("at least one room is required for a dated search")
	}
	for _, value := range roomValues {
		room, err := parseRoom(value)
		if err != nil {
			return nil, nil, err
		}
		req.Rooms = append(req.Rooms, room)
	}
	info.Rooms = len(req.Rooms)

	if resultsStr := query.Get("results"); resultsStr != "" {
		results, err := strconv.Atoi(resultsStr)
		if err != nil || results <= 0 {
			return nil, nil, fmt.Errorf("results must be a positive integer")
		}
		req.NumberOfResults = results
	}

	var err error
	if req.IncludeDetails, err = parseFlag(query.Get("details")); err != nil {
		return nil, nil, fmt.Errorf("details must be a boolean")
	}
	if req.IncludeFeeBreakdown, err = parseFlag(query.Get("fees")); err != nil {
		return nil, nil, fmt.Errorf("fees must be a boolean")
	}
	if req.IncludeSurrounding, err = parseFlag(query.Get("surrounding")); err != nil {
		return nil, nil, fmt.Errorf("surrounding must be a boolean")
	}

	return req, info, nil
}

// parseRoom parses one room value: "adults" or "adults,age1,age2,...".
func parseRoom(value string) (ean.RoomOccupancy, error) {
	parts := strings.Split(value, ",")

	adults, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || adults < 1 {
		return ean.RoomOccupancy{}, fmt.Errorf("room adults must be a positive integer")
	}

	room := ean.RoomOccupancy{Adults: adults}
	for _, p := range parts[1:] {
		age, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || age < 0 {
			return ean.RoomOccupancy{}, fmt.Errorf("room child ages must be non-negative integers")
		}
		room.ChildAges = append(room.ChildAges, age)
	}
	return room, nil
}

func parseHotelIDs(value string) ([]int64, error) {
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("hotels must be a comma-joined list of positive integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseFlag(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Can't change status after WriteHeader, just log
		logger.Error("failed to encode response", "error", err)
	}
}

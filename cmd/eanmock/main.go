// Command eanmock serves canned EAN list responses for local
// development: point EAN_HOST at it and the server runs without real
// affiliate credentials. The destinationString selects the scenario.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

const listPath = "/ean-services/rs/hotel/v3/list"

// Wire shapes mirroring the EAN envelope. HotelSummary is emitted as an
// array or, in the single-hotel scenario, as a bare object.
type envelope struct {
	HotelListResponse hotelListResponse `json:"HotelListResponse"`
}

type hotelListResponse struct {
	EanWsError *wsError   `json:"EanWsError,omitempty"`
	HotelList  *hotelList `json:"HotelList,omitempty"`
}

type wsError struct {
	ItineraryID         int64  `json:"itineraryId"`
	Handling            string `json:"handling"`
	PresentationMessage string `json:"presentationMessage"`
	VerboseMessage      string `json:"verboseMessage"`
}

type hotelList struct {
	HotelSummary any `json:"HotelSummary"`
}

type hotelSummary struct {
	HotelID             int64            `json:"hotelId"`
	Name                string           `json:"name"`
	Address1            string           `json:"address1"`
	City                string           `json:"city"`
	StateProvinceCode   string           `json:"stateProvinceCode,omitempty"`
	PostalCode          string           `json:"postalCode,omitempty"`
	CountryCode         string           `json:"countryCode"`
	HotelRating         float64          `json:"hotelRating"`
	HighRate            float64          `json:"highRate"`
	LowRate             float64          `json:"lowRate"`
	RateCurrencyCode    string           `json:"rateCurrencyCode"`
	Latitude            float64          `json:"latitude"`
	Longitude           float64          `json:"longitude"`
	HotelInDestination  bool             `json:"hotelInDestination"`
	AmenityMask         uint32           `json:"amenityMask"`
	RoomRateDetailsList *roomDetailsList `json:"RoomRateDetailsList,omitempty"`
}

type roomDetailsList struct {
	RoomRateDetails []roomRateDetails `json:"RoomRateDetails"`
}

type roomRateDetails struct {
	RoomTypeCode        int64  `json:"roomTypeCode"`
	RateCode            int64  `json:"rateCode"`
	RateKey             string `json:"rateKey"`
	MaxRoomOccupancy    int    `json:"maxRoomOccupancy"`
	QuotedRoomOccupancy int    `json:"quotedRoomOccupancy"`
	RoomDescription     string `json:"roomDescription"`
	PromoID             *int64 `json:"promoId,omitempty"`
	PromoDescription    string `json:"promoDescription,omitempty"`
	CurrentAllotment    int    `json:"currentAllotment"`
	PropertyAvailable   bool   `json:"propertyAvailable"`
	PropertyRestricted  bool   `json:"propertyRestricted"`
	ExpediaPropertyID   int64  `json:"expediaPropertyId"`
}

func main() {
	port := getEnv("PORT", "9100")
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+listPath, listHandler(logger))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write healthz response", "error", err)
		}
	})

	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("mock EAN endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// listHandler picks a scenario from the request: destinationString
// "error" returns the EAN error envelope, "single" returns a bare
// single-object HotelSummary, anything else a hotel array. Rooms are
// attached when arrivalDate is present.
func listHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("apiKey") == "" || query.Get("cid") == "" {
			writeResponse(w, logger, errorEnvelope("Authentication failure.", "cid and apiKey are required"))
			return
		}

		destination := strings.ToLower(query.Get("destinationString"))
		withRooms := query.Get("arrivalDate") != ""

		switch destination {
		case "error":
			writeResponse(w, logger, errorEnvelope("We're sorry, this destination is unavailable.", "simulated upstream failure"))
		case "single":
			writeResponse(w, logger, envelope{HotelListResponse: hotelListResponse{
				HotelList: &hotelList{HotelSummary: sampleHotels(withRooms)[0]},
			}})
		default:
			writeResponse(w, logger, envelope{HotelListResponse: hotelListResponse{
				HotelList: &hotelList{HotelSummary: sampleHotels(withRooms)},
			}})
		}
	}
}

func errorEnvelope(message, verbose string) envelope {
	return envelope{HotelListResponse: hotelListResponse{
		EanWsError: &wsError{
			ItineraryID:         -1,
			Handling:            "RECOVERABLE",
			PresentationMessage: message,
			VerboseMessage:      verbose,
		},
	}}
}

func sampleHotels(withRooms bool) []hotelSummary {
	hotels := []hotelSummary{
		{
			HotelID:            109496,
			Name:               "Best Western Pioneer Square",
			Address1:           "77 Yesler Way",
			City:               "Seattle",
			StateProvinceCode:  "WA",
			PostalCode:         "98104",
			CountryCode:        "US",
			HotelRating:        3.0,
			HighRate:           289.0,
			LowRate:            107.0,
			RateCurrencyCode:   "USD",
			Latitude:           47.60189,
			Longitude:          -122.33419,
			HotelInDestination: true,
			AmenityMask:        uint32(1<<0 | 1<<3 | 1<<8), // business center, internet, restaurant
		},
		{
			HotelID:            181673,
			Name:               "The Edgewater",
			Address1:           "2411 Alaskan Way, Pier 67",
			City:               "Seattle",
			StateProvinceCode:  "WA",
			PostalCode:         "98121",
			CountryCode:        "US",
			HotelRating:        4.0,
			HighRate:           549.0,
			LowRate:            203.0,
			RateCurrencyCode:   "USD",
			Latitude:           47.61170,
			Longitude:          -122.35130,
			HotelInDestination: true,
			AmenityMask:        uint32(1<<1 | 1<<8 | 1<<15), // fitness, restaurant, room service
		},
	}

	if withRooms {
		promoID := int64(203058)
		hotels[0].RoomRateDetailsList = &roomDetailsList{RoomRateDetails: []roomRateDetails{
			{
				RoomTypeCode:        253434,
				RateCode:            484072,
				RateKey:             "0ABAA845-D2F6-1739-4A26-C88B6B04A25C",
				MaxRoomOccupancy:    2,
				QuotedRoomOccupancy: 2,
				RoomDescription:     "Standard Double Room",
				PromoID:             &promoID,
				PromoDescription:    "Book early and save",
				CurrentAllotment:    5,
				PropertyAvailable:   true,
				ExpediaPropertyID:   4110,
			},
			{
				RoomTypeCode:        253435,
				RateCode:            484073,
				RateKey:             "1BCBB956-E3A7-2840-5B37-D99C7C15B36D",
				MaxRoomOccupancy:    4,
				QuotedRoomOccupancy: 2,
				RoomDescription:     "Suite",
				CurrentAllotment:    2,
				PropertyAvailable:   true,
				ExpediaPropertyID:   4110,
			},
		}}
	}
	return hotels
}

func writeResponse(w http.ResponseWriter, logger *slog.Logger, v envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

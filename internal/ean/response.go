package ean

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listOrSingle decodes a JSON value the EAN API emits either as a single
// object or as an array of objects; both normalize to a slice.
type listOrSingle[T any] []T

func (l *listOrSingle[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, (*[]T)(l))
	}
	var one T
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = listOrSingle[T]{one}
	return nil
}

// hotelListEnvelope is the wire shape of the list endpoint. EanWsError is
// kept raw so the full error payload can ride along on an APIError.
type hotelListEnvelope struct {
	HotelListResponse struct {
		EanWsError json.RawMessage `json:"EanWsError"`
		HotelList  *struct {
			HotelSummary listOrSingle[hotelSummary] `json:"HotelSummary"`
		} `json:"HotelList"`
	} `json:"HotelListResponse"`
}

type eanWsError struct {
	ItineraryID         *int64 `json:"itineraryId"`
	Handling            string `json:"handling"`
	PresentationMessage string `json:"presentationMessage"`
	VerboseMessage      string `json:"verboseMessage"`
}

type hotelSummary struct {
	HotelID             int64   `json:"hotelId"`
	Name                string  `json:"name"`
	Address1            string  `json:"address1"`
	Address2            string  `json:"address2"`
	City                string  `json:"city"`
	StateProvinceCode   string  `json:"stateProvinceCode"`
	PostalCode          string  `json:"postalCode"`
	CountryCode         string  `json:"countryCode"`
	AirportCode         string  `json:"airportCode"`
	PropertyCategory    int     `json:"propertyCategory"`
	HotelRating         float64 `json:"hotelRating"`
	ConfidenceRating    int     `json:"confidenceRating"`
	TripAdvisorRating   float64 `json:"tripAdvisorRating"`
	ShortDescription    string  `json:"shortDescription"`
	LocationDescription string  `json:"locationDescription"`
	HighRate            float64 `json:"highRate"`
	LowRate             float64 `json:"lowRate"`
	RateCurrencyCode    string  `json:"rateCurrencyCode"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	ProximityDistance   float64 `json:"proximityDistance"`
	ProximityUnit       string  `json:"proximityUnit"`
	HotelInDestination  bool    `json:"hotelInDestination"`
	ThumbNailURL        string  `json:"thumbNailUrl"`
	DeepLink            string  `json:"deepLink"`
	AmenityMask         uint32  `json:"amenityMask"`
	RoomRateDetailsList *struct {
		RoomRateDetails listOrSingle[roomRateDetails] `json:"RoomRateDetails"`
	} `json:"RoomRateDetailsList"`
}

type roomRateDetails struct {
	RoomTypeCode        int64  `json:"roomTypeCode"`
	RateCode            int64  `json:"rateCode"`
	RateKey             string `json:"rateKey"`
	MaxRoomOccupancy    int    `json:"maxRoomOccupancy"`
	QuotedRoomOccupancy int    `json:"quotedRoomOccupancy"`
	MinGuestAge         int    `json:"minGuestAge"`
	RoomDescription     string `json:"roomDescription"`
	PromoID             *int64 `json:"promoId"`
	PromoDescription    string `json:"promoDescription"`
	PromoDetailText     string `json:"promoDetailText"`
	CurrentAllotment    int    `json:"currentAllotment"`
	PropertyAvailable   bool   `json:"propertyAvailable"`
	PropertyRestricted  bool   `json:"propertyRestricted"`
	ExpediaPropertyID   int64  `json:"expediaPropertyId"`
}

// ParseHotelList decodes a list-endpoint body. The EAN error envelope
// surfaces as *APIError; there is no partial success, a body either
// fully parses or the whole call fails.
func ParseHotelList(body []byte) ([]Hotel, error) {
	var env hotelListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if raw := env.HotelListResponse.EanWsError; len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		return nil, parseError(raw)
	}

	if env.HotelListResponse.HotelList == nil {
		return nil, fmt.Errorf("response has neither HotelList nor EanWsError")
	}

	summaries := env.HotelListResponse.HotelList.HotelSummary
	hotels := make([]Hotel, 0, len(summaries))
	for _, s := range summaries {
		hotels = append(hotels, s.hotel())
	}
	return hotels, nil
}

// parseError maps the EanWsError object onto an APIError. An itinerary id
// other than the -1 sentinel means the server created a reservation while
// reporting the failure.
func parseError(raw json.RawMessage) error {
	var w eanWsError
	if err := json.Unmarshal(raw, &w); err != nil {
		return fmt.Errorf("decode error envelope: %w", err)
	}

	apiErr := &APIError{
		Message:        w.PresentationMessage,
		VerboseMessage: w.VerboseMessage,
		Handling:       w.Handling,
		Raw:            raw,
	}
	if w.ItineraryID != nil && *w.ItineraryID != noReservationID {
		apiErr.ReservationMade = true
		apiErr.ReservationID = *w.ItineraryID
	}
	return apiErr
}

func (s hotelSummary) hotel() Hotel {
	address := s.Address1
	if s.Address2 != "" {
		address += ", " + s.Address2
	}

	h := Hotel{
		ID:                  s.HotelID,
		Name:                s.Name,
		Address:             address,
		City:                s.City,
		StateProvince:       s.StateProvinceCode,
		PostalCode:          s.PostalCode,
		Country:             s.CountryCode,
		AirportCode:         s.AirportCode,
		Category:            s.PropertyCategory,
		StarRating:          s.HotelRating,
		ConfidenceRating:    s.ConfidenceRating,
		TripAdvisorRating:   s.TripAdvisorRating,
		ShortDescription:    s.ShortDescription,
		LocationDescription: s.LocationDescription,
		HighRate:            s.HighRate,
		LowRate:             s.LowRate,
		Currency:            s.RateCurrencyCode,
		Latitude:            s.Latitude,
		Longitude:           s.Longitude,
		ProximityDistance:   s.ProximityDistance,
		ProximityUnit:       s.ProximityUnit,
		InDestination:       s.HotelInDestination,
		ThumbnailURL:        s.ThumbNailURL,
		DeepLink:            s.DeepLink,
		Amenities:           AmenityMask(s.AmenityMask),
	}

	if s.RoomRateDetailsList != nil {
		details := s.RoomRateDetailsList.RoomRateDetails
		h.Rooms = make([]Room, 0, len(details))
		for _, d := range details {
			h.Rooms = append(h.Rooms, d.room())
		}
	}
	return h
}

func (d roomRateDetails) room() Room {
	r := Room{
		RoomTypeCode:        d.RoomTypeCode,
		RateCode:            d.RateCode,
		RateKey:             d.RateKey,
		MaxRoomOccupancy:    d.MaxRoomOccupancy,
		QuotedRoomOccupancy: d.QuotedRoomOccupancy,
		MinGuestAge:         d.MinGuestAge,
		Description:         d.RoomDescription,
		CurrentAllotment:    d.CurrentAllotment,
		PropertyAvailable:   d.PropertyAvailable,
		PropertyRestricted:  d.PropertyRestricted,
		ExpediaPropertyID:   d.ExpediaPropertyID,
	}
	if d.PromoID != nil {
		r.Promo = &Promotion{
			ID:          *d.PromoID,
			Description: d.PromoDescription,
			Details:     d.PromoDetailText,
		}
	}
	return r
}

package ean

import (
	"strconv"
	"strings"
)

// Credentials identifies the affiliate account on every request.
// EAN hands these out at partner signup; all three travel as query
// parameters (cid, apiKey, minorRev).
type Credentials struct {
	CID      string
	APIKey   string
	MinorRev string
}

// SearchRequest describes one hotel search. A non-empty Arrival makes it
// an availability search (dated, priced, requires room occupancy); an
// empty Arrival makes it a dateless browse of an area. Exactly one of
// Location or HotelIDs narrows the search.
type SearchRequest struct {
	Arrival   string // EAN wire format MM/DD/YYYY
	Departure string
	Rooms     []RoomOccupancy

	NumberOfResults     int
	IncludeDetails      bool
	IncludeFeeBreakdown bool
	IncludeSurrounding  bool

	Location Location
	HotelIDs []int64
}

// IsAvailability reports whether the request takes the dated search path.
func (r SearchRequest) IsAvailability() bool {
	return r.Arrival != ""
}

// RoomOccupancy is the occupancy of one requested room. Order in
// SearchRequest.Rooms is meaningful: the first entry becomes room1, the
// second room2, and so on.
type RoomOccupancy struct {
	Adults    int
	ChildAges []int
}

// encode renders the comma-joined wire form "adults,age1,age2".
func (r RoomOccupancy) encode() string {
	parts := make([]string, 0, len(r.ChildAges)+1)
	parts = append(parts, strconv.Itoa(r.Adults))
	for _, age := range r.ChildAges {
		parts = append(parts, strconv.Itoa(age))
	}
	return strings.Join(parts, ",")
}

// Location narrows a search geographically. The concrete variant is fixed
// at construction time, so a request can never fall through to an
// unconstrained "list everything" query.
type Location interface {
	encode(p Params)
}

// Destination is a free-text destination query ("paris", "space needle").
type Destination string

func (d Destination) encode(p Params) {
	p.set("destinationString", string(d))
}

// Place is a structured city location. City is the only field EAN
// requires; PostalCode is only sent alongside a street Address.
type Place struct {
	City          string
	StateProvince string
	Country       string
	Address       string
	PostalCode    string
	PropertyName  string
}

func (pl Place) encode(p Params) {
	p.set("city", pl.City)
	p.set("stateProvinceCode", pl.StateProvince)
	p.set("countryCode", pl.Country)
	if pl.Address != "" {
		p.set("address", pl.Address)
		p.set("postalCode", pl.PostalCode)
	}
	p.set("propertyName", pl.PropertyName)
}

// DestinationID references an EAN destination by its identifier.
type DestinationID string

func (d DestinationID) encode(p Params) {
	p.set("destinationId", string(d))
}

// Circle searches around a coordinate.
type Circle struct {
	Latitude   float64
	Longitude  float64
	Radius     int
	RadiusUnit string // "MI" or "KM"
	Sort       string
}

func (c Circle) encode(p Params) {
	p.set("latitude", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	p.set("longitude", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	p.setInt("searchRadius", c.Radius)
	p.set("searchRadiusUnit", c.RadiusUnit)
	p.set("sort", c.Sort)
}

// Hotel is one property from a list response. Values are read-only once
// constructed; Rooms is populated only for availability searches.
type Hotel struct {
	ID                  int64       `json:"hotel_id"`
	Name                string      `json:"name"`
	Address             string      `json:"address,omitempty"`
	City                string      `json:"city,omitempty"`
	StateProvince       string      `json:"state_province,omitempty"`
	PostalCode          string      `json:"postal_code,omitempty"`
	Country             string      `json:"country,omitempty"`
	AirportCode         string      `json:"airport_code,omitempty"`
	Category            int         `json:"category,omitempty"`
	StarRating          float64     `json:"star_rating,omitempty"`
	ConfidenceRating    int         `json:"confidence_rating,omitempty"`
	TripAdvisorRating   float64     `json:"trip_advisor_rating,omitempty"`
	ShortDescription    string      `json:"short_description,omitempty"`
	LocationDescription string      `json:"location_description,omitempty"`
	HighRate            float64     `json:"high_rate,omitempty"`
	LowRate             float64     `json:"low_rate,omitempty"`
	Currency            string      `json:"currency,omitempty"`
	Latitude            float64     `json:"latitude,omitempty"`
	Longitude           float64     `json:"longitude,omitempty"`
	ProximityDistance   float64     `json:"proximity_distance,omitempty"`
	ProximityUnit       string      `json:"proximity_unit,omitempty"`
	InDestination       bool        `json:"in_destination"`
	ThumbnailURL        string      `json:"thumbnail_url,omitempty"`
	DeepLink            string      `json:"deep_link,omitempty"`
	Amenities           AmenityMask `json:"amenities"`
	Rooms               []Room      `json:"rooms,omitempty"`
}

// Room is one priced room offer on a hotel. RateKey is the opaque token
// a later reservation call must present.
type Room struct {
	RoomTypeCode        int64      `json:"room_type_code"`
	RateCode            int64      `json:"rate_code"`
	RateKey             string     `json:"rate_key"`
	MaxRoomOccupancy    int        `json:"max_room_occupancy"`
	QuotedRoomOccupancy int        `json:"quoted_room_occupancy"`
	MinGuestAge         int        `json:"min_guest_age"`
	Description         string     `json:"description,omitempty"`
	Promo               *Promotion `json:"promo,omitempty"`
	CurrentAllotment    int        `json:"current_allotment"`
	PropertyAvailable   bool       `json:"property_available"`
	PropertyRestricted  bool       `json:"property_restricted"`
	ExpediaPropertyID   int64      `json:"expedia_property_id"`
}

// Promotion is attached to a Room only when the rate carried a promo id.
type Promotion struct {
	ID          int64  `json:"id"`
	Description string `json:"description,omitempty"`
	Details     string `json:"details,omitempty"`
}

// Result is the outcome of one successful call: the request URL actually
// sent, the raw response body, and the parsed hotels. It is built once
// per call and never mutated.
type Result struct {
	URL    string
	Body   []byte
	Hotels []Hotel
}

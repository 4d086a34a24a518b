package ean

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is the flat key/value query-parameter set for one request.
// Absent values are never stored, so they can never be serialized as
// empty strings.
type Params map[string]string

// set stores a value, dropping absent (empty) ones.
func (p Params) set(key, value string) {
	if value != "" {
		p[key] = value
	}
}

// setInt stores a positive integer; zero means "not supplied".
func (p Params) setInt(key string, v int) {
	if v != 0 {
		p[key] = strconv.Itoa(v)
	}
}

// setFlag stores the literal "true" for set flags; unset flags are
// omitted entirely.
func (p Params) setFlag(key string, on bool) {
	if on {
		p[key] = "true"
	}
}

// finalize appends the affiliate credentials every request carries.
func (p Params) finalize(c Credentials) {
	p.set("cid", c.CID)
	p.set("apiKey", c.APIKey)
	p.set("minorRev", c.MinorRev)
}

// Encode renders the URL-encoded query string.
func (p Params) Encode() string {
	v := url.Values{}
	for key, value := range p {
		v.Set(key, value)
	}
	return v.Encode()
}

// buildParams validates the request and dispatches on search mode:
// arrival present means availability, otherwise dateless browse.
func buildParams(req SearchRequest) (Params, error) {
	if req.Location == nil && len(req.HotelIDs) == 0 {
		return nil, ErrNoLocation
	}
	if req.IsAvailability() {
		return availabilityParams(req), nil
	}
	return datelessParams(req), nil
}

// availabilityParams builds the query for a dated search: dates, result
// count, detail flags and per-room occupancy, then either explicit hotel
// ids or a location constraint.
func availabilityParams(req SearchRequest) Params {
	p := Params{}
	p.set("arrivalDate", req.Arrival)
	p.set("departureDate", req.Departure)
	p.setInt("numberOfResults", req.NumberOfResults)
	p.setFlag("includeDetails", req.IncludeDetails)
	p.setFlag("includeHotelFeeBreakdown", req.IncludeFeeBreakdown)
	p.setFlag("includeSurrounding", req.IncludeSurrounding)
	for i, room := range req.Rooms {
		p.set("room"+strconv.Itoa(i+1), room.encode())
	}
	if len(req.HotelIDs) > 0 {
		p.set("hotelIds", joinIDs(req.HotelIDs))
		return p
	}
	req.Location.encode(p)
	return p
}

// datelessParams builds the query for a browse-only search: a location
// (with the surrounding-area flag) or an explicit hotel id list. Result
// count and rooms do not apply here.
func datelessParams(req SearchRequest) Params {
	p := Params{}
	if req.Location != nil {
		p.setFlag("includeSurrounding", req.IncludeSurrounding)
		req.Location.encode(p)
		return p
	}
	p.set("hotelIdList", joinIDs(req.HotelIDs))
	return p
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

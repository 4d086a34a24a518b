package ean

import "context"

// BookingRequest carries everything the EAN reservation interface asks
// for when completing a previously quoted rate: the stay, the rate key
// from the Room being booked, the lead guest, payment details, and a
// per-room guest assignment.
type BookingRequest struct {
	Arrival      string
	Departure    string
	HotelID      int64
	RoomTypeCode int64
	RateCode     int64
	RateKey      string

	Guest   Guest
	Payment Payment
	Rooms   []RoomAssignment
}

// Guest is the lead guest on a reservation.
type Guest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Payment is the card charged for the reservation.
type Payment struct {
	CardType        string
	CardNumber      string
	CardCVV         string
	ExpirationMonth string
	ExpirationYear  string

	Address       string
	City          string
	StateProvince string
	Country       string
	PostalCode    string
}

// RoomAssignment names the guest occupying one requested room, in the
// same order as the availability search's room list.
type RoomAssignment struct {
	Occupancy RoomOccupancy
	FirstName string
	LastName  string
	BedTypeID string
	Smoking   bool
}

// Book completes a reservation. Only the parameter contract is defined;
// the call itself always fails with ErrNotImplemented.
func (c *Client) Book(ctx context.Context, req BookingRequest) (*Result, error) {
	return nil, ErrNotImplemented
}

package ean

import (
	"encoding/json"
	"errors"
)

var (
	// ErrNoLocation is returned when a search names neither a location
	// nor explicit hotel ids, instead of issuing an unconstrained query.
	ErrNoLocation = errors.New("ean: search requires a location or hotel ids")

	// ErrNotImplemented is returned by the reservation entry point, which
	// documents its parameter contract but has no wire behavior yet.
	ErrNotImplemented = errors.New("ean: reservation booking not implemented")
)

// noReservationID is the itinerary id EAN sends when no booking exists.
const noReservationID = -1

// APIError is an error the EAN service reported inside its response
// envelope, as opposed to a transport failure. When ReservationMade is
// set the server created a billable reservation despite the error;
// callers must check it before re-attempting a booking.
type APIError struct {
	Message         string
	VerboseMessage  string
	Handling        string // server's recoverability classification, verbatim
	Raw             json.RawMessage
	ReservationMade bool
	ReservationID   int64
}

func (e *APIError) Error() string {
	return "ean: " + e.Message
}

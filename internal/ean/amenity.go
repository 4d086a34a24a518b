package ean

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Amenity is one hotel feature flagged in the EAN amenity bitmask.
type Amenity uint32

// The 27 amenities EAN encodes in HotelSummary.amenityMask, in bit order.
const (
	AmenityBusinessCenter Amenity = 1 << iota
	AmenityFitnessCenter
	AmenityHotTub
	AmenityInternetAccess
	AmenityKidsActivities
	AmenityKitchen
	AmenityPetsAllowed
	AmenityPool
	AmenityRestaurant
	AmenitySpa
	AmenityWhirlpool
	AmenityBreakfast
	AmenityBabysitting
	AmenityJacuzzi
	AmenityParking
	AmenityRoomService
	AmenityAccessiblePath
	AmenityAccessibleBathroom
	AmenityRollInShower
	AmenityHandicappedParking
	AmenityInRoomAccessibility
	AmenityDeafAccessibility
	AmenityBrailleSignage
	AmenityFreeAirportShuttle
	AmenityCasino
	AmenityIndoorPool
	AmenityOutdoorPool
)

var amenityNames = map[Amenity]string{
	AmenityBusinessCenter:      "business_center",
	AmenityFitnessCenter:       "fitness_center",
	AmenityHotTub:              "hot_tub",
	AmenityInternetAccess:      "internet_access",
	AmenityKidsActivities:      "kids_activities",
	AmenityKitchen:             "kitchen",
	AmenityPetsAllowed:         "pets_allowed",
	AmenityPool:                "pool",
	AmenityRestaurant:          "restaurant",
	AmenitySpa:                 "spa",
	AmenityWhirlpool:           "whirlpool",
	AmenityBreakfast:           "breakfast",
	AmenityBabysitting:         "babysitting",
	AmenityJacuzzi:             "jacuzzi",
	AmenityParking:             "parking",
	AmenityRoomService:         "room_service",
	AmenityAccessiblePath:      "accessible_path",
	AmenityAccessibleBathroom:  "accessible_bathroom",
	AmenityRollInShower:        "roll_in_shower",
	AmenityHandicappedParking:  "handicapped_parking",
	AmenityInRoomAccessibility: "in_room_accessibility",
	AmenityDeafAccessibility:   "deaf_accessibility",
	AmenityBrailleSignage:      "braille_signage",
	AmenityFreeAirportShuttle:  "free_airport_shuttle",
	AmenityCasino:              "casino",
	AmenityIndoorPool:          "indoor_pool",
	AmenityOutdoorPool:         "outdoor_pool",
}

func (a Amenity) String() string {
	if name, ok := amenityNames[a]; ok {
		return name
	}
	return "unknown"
}

// AmenityMask is the raw bitmask from a hotel record. Each defined
// amenity is flagged independently; bit adjacency carries no meaning.
type AmenityMask uint32

// Has reports whether the amenity's bit is set.
func (m AmenityMask) Has(a Amenity) bool {
	return uint32(m)&uint32(a) != 0
}

// Amenities decodes the mask into the set of flagged amenities, in bit
// order. An empty mask decodes to an empty set.
func (m AmenityMask) Amenities() []Amenity {
	out := make([]Amenity, 0)
	for bit := AmenityBusinessCenter; bit <= AmenityOutdoorPool; bit <<= 1 {
		if m.Has(bit) {
			out = append(out, bit)
		}
	}
	return out
}

// MarshalJSON renders the decoded amenity names rather than the raw mask.
func (m AmenityMask) MarshalJSON() ([]byte, error) {
	amenities := m.Amenities()
	names := make([]string, 0, len(amenities))
	for _, a := range amenities {
		names = append(names, a.String())
	}
	return json.Marshal(names)
}

var amenitiesByName = func() map[string]Amenity {
	byName := make(map[string]Amenity, len(amenityNames))
	for a, name := range amenityNames {
		byName[name] = a
	}
	return byName
}()

// UnmarshalJSON accepts either the raw numeric mask (the EAN wire form)
// or an array of amenity names (the MarshalJSON form).
func (m *AmenityMask) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			return err
		}
		var mask AmenityMask
		for _, name := range names {
			a, ok := amenitiesByName[name]
			if !ok {
				return fmt.Errorf("unknown amenity %q", name)
			}
			mask |= AmenityMask(a)
		}
		*m = mask
		return nil
	}

	var raw uint32
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*m = AmenityMask(raw)
	return nil
}

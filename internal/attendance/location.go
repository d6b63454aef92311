package attendance

import (
	"math"
	"strings"
	"time"
)

// LocationInput is the raw, untrusted geolocation payload attached to a
// check-in/out request. Everything is optional and nothing is assumed
// well-formed until NormalizeLocation has run.
type LocationInput struct {
	Latitude   *float64      `json:"latitude"`
	Longitude  *float64      `json:"longitude"`
	Accuracy   *float64      `json:"accuracy"`
	CapturedAt string        `json:"captured_at"`
	Source     string        `json:"source"`
	Address    *AddressInput `json:"address"`
}

type AddressInput struct {
	Label    string `json:"label"`
	Road     string `json:"road"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// Location is the bounded shape that actually gets stored.
type Location struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
	Source     string     `json:"source,omitempty"`
	Address    *Address   `json:"address,omitempty"`
}

type Address struct {
	Label    string `json:"label,omitempty"`
	Road     string `json:"road,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

const (
	maxSourceLen   = 32
	maxLabelLen    = 512
	maxRoadLen     = 128
	maxCityLen     = 128
	maxStateLen    = 128
	maxPostcodeLen = 32
	maxCountryLen  = 128
)

// NormalizeLocation clamps a raw payload into a storable Location.
// It returns nil when latitude or longitude is missing or non-finite;
// all other fields are kept only when individually valid.
func NormalizeLocation(in *LocationInput) *Location {
	if in == nil {
		return nil
	}
	if !isFinite(in.Latitude) || !isFinite(in.Longitude) {
		return nil
	}

	loc := &Location{
		Latitude:  *in.Latitude,
		Longitude: *in.Longitude,
		Source:    clip(in.Source, maxSourceLen),
	}

	if isFinite(in.Accuracy) {
		acc := *in.Accuracy
		loc.Accuracy = &acc
	}

	if in.CapturedAt != "" {
		if ts, err := time.Parse(time.RFC3339, in.CapturedAt); err == nil {
			loc.CapturedAt = &ts
		}
	}

	loc.Address = normalizeAddress(in.Address)
	return loc
}

func normalizeAddress(in *AddressInput) *Address {
	if in == nil {
		return nil
	}
	addr := &Address{
		Label:    clip(in.Label, maxLabelLen),
		Road:     clip(in.Road, maxRoadLen),
		City:     clip(in.City, maxCityLen),
		State:    clip(in.State, maxStateLen),
		Postcode: clip(in.Postcode, maxPostcodeLen),
		Country:  clip(in.Country, maxCountryLen),
	}
	if *addr == (Address{}) {
		return nil
	}
	return addr
}

func isFinite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// clip trims whitespace and caps the string at max runes.
func clip(s string, max int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		return string(r[:max])
	}
	return s
}

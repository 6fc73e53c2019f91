package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"trip-log-service/internal/eld"
)

const maxQueryLength = 200

// TripRequest is the user input for one trip.
type TripRequest struct {
	Pickup     string
	Dropoff    string
	Current    string
	CycleHours float64
	Header     eld.Header
}

// Normalized returns the request with trimmed queries.
func (r TripRequest) Normalized() TripRequest {
	r.Pickup = strings.TrimSpace(r.Pickup)
	r.Dropoff = strings.TrimSpace(r.Dropoff)
	r.Current = strings.TrimSpace(r.Current)
	r.Header = r.Header.Trimmed()
	return r
}

// Validate checks a normalized request.
func (r TripRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"pickup", r.Pickup},
		{"dropoff", r.Dropoff},
		{"current", r.Current},
	}
	for _, f := range fields {
		if err := validateQuery(f.name, f.value); err != nil {
			return err
		}
	}

	headers := []struct {
		name  string
		value string
	}{
		{"mileage_today", r.Header.MileageToday},
		{"vehicles", r.Header.Vehicles},
		{"carriers", r.Header.Carriers},
		{"main_office_address", r.Header.MainOfficeAddress},
		{"home_terminal_address", r.Header.HomeTerminalAddress},
	}
	for _, f := range headers {
		if utf8.RuneCountInString(f.value) > maxQueryLength {
			return fmt.Errorf("%s must be at most %d characters", f.name, maxQueryLength)
		}
	}

	if math.IsNaN(r.CycleHours) || math.IsInf(r.CycleHours, 0) {
		return errors.New("cycle_hours must be a finite number")
	}
	if r.CycleHours < 0 || r.CycleHours > eld.MaxCycleHours {
		return fmt.Errorf("cycle_hours must be between 0 and %d", eld.MaxCycleHours)
	}
	return nil
}

func validateQuery(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	if utf8.RuneCountInString(value) > maxQueryLength {
		return fmt.Errorf("%s must be at most %d characters", name, maxQueryLength)
	}
	if strings.ContainsAny(value, "\x00\r\n") {
		return fmt.Errorf("%s contains invalid characters", name)
	}
	return nil
}

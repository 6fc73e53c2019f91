package services

import (
	"errors"
	"fmt"

	"trip-log-service/internal/domain"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrLocationNotFound = errors.New("location not found")
	ErrGeocodeFailed    = errors.New("geocode failed")
	ErrNoRoute          = errors.New("no route found")
	ErrRouteFailed      = errors.New("route failed")
)

// Stage names a step of the trip pipeline.
type Stage string

const (
	StageValidate Stage = "validate"
	StageGeocode  Stage = "geocode"
	StageRoute    Stage = "route"
)

// StageError reports which step failed. Kind is one of the sentinels above and
// Err is the upstream cause; both match errors.Is.
type StageError struct {
	Stage Stage
	Stop  domain.StopRole
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	prefix := string(e.Stage)
	if e.Stop != "" {
		prefix += " " + string(e.Stop)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", prefix, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", prefix, e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage is the text shown to clients for err.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		var se *StageError
		if errors.As(err, &se) && se.Err != nil {
			return se.Err.Error()
		}
		return "Invalid input."
	case errors.Is(err, ErrLocationNotFound):
		return "One or both locations could not be found. Try again."
	case errors.Is(err, ErrGeocodeFailed):
		return "Failed to fetch coordinates."
	case errors.Is(err, ErrNoRoute):
		return "No route found."
	case errors.Is(err, ErrRouteFailed):
		return "Failed to fetch route."
	}
	return "Internal error."
}

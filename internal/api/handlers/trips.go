package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/logging"
	"trip-log-service/internal/ports"
	"trip-log-service/internal/services"
)

const maxBodyBytes = 16 << 10

type TripHandler struct {
	Geocoder   ports.Geocoder
	Directions ports.DirectionsProvider
}

// Plan geocodes the trip, routes it and returns the map view with its daily logs.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		WriteError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}
	if req.CycleHours == nil {
		WriteError(w, r, http.StatusBadRequest, "cycle_hours is required")
		return
	}

	svcReq := services.TripRequest{
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		Current:    req.Current,
		CycleHours: *req.CycleHours,
		Header:     headerRequest(req.Header),
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Geocoder, h.Directions)
	if err != nil {
		status := tripErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logging.LogError(logging.FromContext(r.Context()), "plan trip failed", err)
		}
		WriteError(w, r, status, services.UserMessage(err))
		return
	}

	writeJSON(w, r, http.StatusOK, tripResponse(plan))
}

func tripErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrLocationNotFound), errors.Is(err, services.ErrNoRoute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrGeocodeFailed), errors.Is(err, services.ErrRouteFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func tripResponse(plan *services.TripPlan) dto.TripResponse {
	trip := plan.Trip

	stops := make([]dto.StopResponse, 0, len(trip.Stops))
	for _, s := range trip.Stops {
		stops = append(stops, dto.StopResponse{
			Role:  string(s.Role),
			Query: s.Query,
			Lon:   s.Coordinates.Lon,
			Lat:   s.Coordinates.Lat,
		})
	}

	snap := plan.Map
	markers := make([]dto.MarkerResponse, 0, len(snap.Markers))
	for _, m := range snap.Markers {
		markers = append(markers, dto.MarkerResponse{
			Role:     string(m.Role),
			Label:    m.Label,
			Position: lonLat(m.Position),
		})
	}
	layers := make([]dto.LayerResponse, 0, len(snap.Layers))
	for _, l := range snap.Layers {
		layers = append(layers, dto.LayerResponse{
			ID:       l.ID,
			Source:   l.SourceID,
			LineJoin: l.LineJoin,
			LineCap:  l.LineCap,
			Color:    l.Color,
			Width:    l.Width,
		})
	}

	pickup, _ := trip.Stop(domain.RolePickup)
	dropoff, _ := trip.Stop(domain.RoleDropoff)

	return dto.TripResponse{
		Stops: stops,
		Route: dto.RouteResponse{
			DistanceMeters:  trip.Route.DistanceMeters,
			DurationSeconds: trip.Route.DurationSeconds,
			TotalMiles:      roundTenth(trip.TotalMiles()),
			Polyline:        plan.Polyline,
			GeoJSON:         plan.GeoJSON,
		},
		Map: dto.MapResponse{
			State:      snap.State.String(),
			Style:      snap.Style,
			Center:     lonLat(snap.Center),
			Zoom:       snap.Zoom,
			FitPadding: snap.FitPadding,
			Bounds:     snap.Bounds,
			Markers:    markers,
			Layers:     layers,
		},
		PanelCount: len(plan.Panels),
		Panels:     panelResponses(plan.Panels, pickup.Query, dropoff.Query),
	}
}

func lonLat(c domain.Coordinates) [2]float64 { return [2]float64{c.Lon, c.Lat} }

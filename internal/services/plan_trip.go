package services

import (
	"context"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/eld"
	"trip-log-service/internal/mapview"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"
)

// TripPlan is everything a client needs to draw the trip and its daily logs.
type TripPlan struct {
	Trip     domain.Trip
	Polyline string
	GeoJSON  *geojson.Feature
	Map      mapview.Snapshot
	Panels   []eld.Panel
}

// geocodeOrder is the order stops are resolved and failures are reported in.
var geocodeOrder = []domain.StopRole{domain.RolePickup, domain.RoleDropoff, domain.RoleCurrent}

// routeOrder is the waypoint order of the driven route.
var routeOrder = []domain.StopRole{domain.RoleCurrent, domain.RolePickup, domain.RoleDropoff}

// PlanTrip geocodes the three stops, routes current -> pickup -> dropoff and
// synthesizes the daily log panels for the routed distance.
func PlanTrip(
	ctx context.Context,
	req TripRequest,
	geocoder ports.Geocoder,
	directions ports.DirectionsProvider,
) (plan *TripPlan, err error) {
	defer obs.Time(ctx, "plan_trip")(&err)

	req = req.Normalized()
	if err := req.Validate(); err != nil {
		return nil, &StageError{Stage: StageValidate, Kind: ErrInvalidInput, Err: err}
	}

	stops, err := geocodeStops(ctx, req, geocoder)
	if err != nil {
		return nil, err
	}

	byRole := make(map[domain.StopRole]domain.Coordinates, len(stops))
	for _, s := range stops {
		byRole[s.Role] = s.Coordinates
	}
	waypoints := make([]domain.Coordinates, 0, len(routeOrder))
	for _, role := range routeOrder {
		waypoints = append(waypoints, byRole[role])
	}

	route, err := directions.Route(ctx, waypoints)
	if err != nil {
		kind := ErrRouteFailed
		if errors.Is(err, ports.ErrNotFound) {
			kind = ErrNoRoute
		}
		return nil, &StageError{Stage: StageRoute, Kind: kind, Err: err}
	}
	if route.DistanceMeters == 0 && len(route.Geometry) > 1 {
		route.DistanceMeters = int(mapview.LineLengthMeters(route.Geometry) + 0.5)
	}

	trip := domain.Trip{Stops: stops, Route: route}

	session := mapview.NewSession(mapview.DefaultOptions())
	session.Load()
	if err := session.Populate(stops, route.Geometry); err != nil {
		return nil, err
	}

	return &TripPlan{
		Trip:     trip,
		Polyline: mapview.EncodePolyline(route.Geometry),
		GeoJSON:  routeFeature(route),
		Map:      session.Snapshot(),
		Panels:   eld.WithHeader(eld.BuildPanels(trip.TotalMiles(), req.CycleHours, req.Pickup, req.Dropoff), req.Header),
	}, nil
}

// geocodeStops resolves all stops concurrently. When several lookups fail,
// the error of the earliest stop in geocodeOrder wins.
func geocodeStops(ctx context.Context, req TripRequest, geocoder ports.Geocoder) ([]domain.Stop, error) {
	queries := map[domain.StopRole]string{
		domain.RolePickup:  req.Pickup,
		domain.RoleDropoff: req.Dropoff,
		domain.RoleCurrent: req.Current,
	}

	stops := make([]domain.Stop, len(geocodeOrder))
	errs := make([]error, len(geocodeOrder))

	var g errgroup.Group
	for i, role := range geocodeOrder {
		i, role := i, role
		g.Go(func() error {
			q := queries[role]
			c, err := geocoder.Geocode(ctx, q)
			if err != nil {
				kind := ErrGeocodeFailed
				if errors.Is(err, ports.ErrNotFound) {
					kind = ErrLocationNotFound
				}
				errs[i] = &StageError{Stage: StageGeocode, Stop: role, Kind: kind, Err: err}
				return errs[i]
			}
			stops[i] = domain.Stop{Role: role, Query: q, Coordinates: c}
			return nil
		})
	}

	// Wait reports whichever lookup failed first in time; report by stop order instead.
	if err := g.Wait(); err != nil {
		for _, stageErr := range errs {
			if stageErr != nil {
				return nil, stageErr
			}
		}
		return nil, err
	}
	return stops, nil
}

func routeFeature(route domain.Route) *geojson.Feature {
	line := make(orb.LineString, 0, len(route.Geometry))
	for _, c := range route.Geometry {
		line = append(line, c.Point())
	}
	f := geojson.NewFeature(line)
	f.Properties["distance_meters"] = route.DistanceMeters
	f.Properties["duration_seconds"] = route.DurationSeconds
	return f
}

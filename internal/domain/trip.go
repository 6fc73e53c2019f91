package domain

// StopRole names the part a location plays in a trip.
type StopRole string

const (
	RoleCurrent StopRole = "current"
	RolePickup  StopRole = "pickup"
	RoleDropoff StopRole = "dropoff"
)

// Stop is a user-supplied address resolved to coordinates.
type Stop struct {
	Role        StopRole
	Query       string
	Coordinates Coordinates
}

// Route is a driving route through an ordered list of waypoints.
// Geometry is the full overview line, lon/lat ordered.
type Route struct {
	DistanceMeters  int
	DurationSeconds int
	Geometry        []Coordinates
}

const metersPerMile = 1609.344

// Miles returns the route distance in statute miles.
func (r Route) Miles() float64 { return float64(r.DistanceMeters) / metersPerMile }

// Trip is the result of planning: the resolved stops in request order
// (pickup, dropoff, current) and the route through current -> pickup -> dropoff.
type Trip struct {
	Stops []Stop
	Route Route
}

// TotalMiles is the distance fed to the duty-status synthesizer.
func (t Trip) TotalMiles() float64 { return t.Route.Miles() }

// Stop returns the stop with the given role.
func (t Trip) Stop(role StopRole) (Stop, bool) {
	for _, s := range t.Stops {
		if s.Role == role {
			return s, true
		}
	}
	return Stop{}, false
}

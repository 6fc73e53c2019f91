package mapview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trip-log-service/internal/domain"
)

// State is the lifecycle of a map session.
type State int

const (
	Uninitialized State = iota
	Loaded
	Populated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case Populated:
		return "populated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

var ErrNotLoaded = errors.New("map session: style not loaded")

const RouteLayerID = "route"

// Options configures a new session.
type Options struct {
	Style      string
	Center     domain.Coordinates
	Zoom       float64
	FitPadding int
}

func DefaultOptions() Options {
	return Options{
		Style:      "mapbox://styles/mapbox/streets-v11",
		Center:     domain.Coordinates{Lon: 28.9784, Lat: 41.0082},
		Zoom:       10,
		FitPadding: 50,
	}
}

// Marker pins one stop on the map.
type Marker struct {
	Role     domain.StopRole
	Label    string
	Position domain.Coordinates
}

// LineLayer describes how the route source is drawn.
type LineLayer struct {
	ID       string
	SourceID string
	LineJoin string
	LineCap  string
	Color    string
	Width    float64
}

func routeLayer() LineLayer {
	return LineLayer{
		ID:       RouteLayerID,
		SourceID: RouteLayerID,
		LineJoin: "round",
		LineCap:  "round",
		Color:    "#FF0000",
		Width:    4,
	}
}

// Session owns the state of one rendered map: its markers, the fitted bounds
// and at most one route layer. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	opts    Options
	state   State
	markers []Marker
	bounds  orb.Bound
	route   orb.LineString
	layer   *LineLayer
}

func NewSession(opts Options) *Session {
	return &Session{opts: opts}
}

// Load marks the style as ready. Loading an already loaded session is a no-op.
func (s *Session) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Uninitialized {
		s.state = Loaded
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Populate replaces the markers and route with the given trip.
// The view is fitted to the stops, not to the route line.
func (s *Session) Populate(stops []domain.Stop, geometry []domain.Coordinates) error {
	if len(stops) == 0 {
		return errors.New("map session: populate: no stops")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Uninitialized {
		return ErrNotLoaded
	}

	points := make(orb.MultiPoint, 0, len(stops))
	markers := make([]Marker, 0, len(stops))
	for _, st := range stops {
		points = append(points, st.Coordinates.Point())
		markers = append(markers, Marker{Role: st.Role, Label: st.Query, Position: st.Coordinates})
	}

	line := make(orb.LineString, 0, len(geometry))
	for _, c := range geometry {
		line = append(line, c.Point())
	}

	s.markers = markers
	s.bounds = points.Bound()
	s.route = line
	layer := routeLayer()
	s.layer = &layer
	s.state = Populated

	return nil
}

// Snapshot is a serializable copy of the session for map clients.
type Snapshot struct {
	State      State
	Style      string
	Center     domain.Coordinates
	Zoom       float64
	FitPadding int
	// Bounds is [[west, south], [east, north]]; nil until populated.
	Bounds  *[2][2]float64
	Markers []Marker
	Layers  []LineLayer
	// Route is the GeoJSON source feed for the route layer.
	Route *geojson.Feature
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:      s.state,
		Style:      s.opts.Style,
		Center:     s.opts.Center,
		Zoom:       s.opts.Zoom,
		FitPadding: s.opts.FitPadding,
		Markers:    append([]Marker(nil), s.markers...),
	}

	if s.state == Populated {
		b := [2][2]float64{
			{s.bounds.Min.Lon(), s.bounds.Min.Lat()},
			{s.bounds.Max.Lon(), s.bounds.Max.Lat()},
		}
		snap.Bounds = &b
	}

	if s.layer != nil {
		snap.Layers = []LineLayer{*s.layer}
		snap.Route = geojson.NewFeature(s.route.Clone())
	}

	return snap
}

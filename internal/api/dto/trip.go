package dto

import "github.com/paulmach/orb/geojson"

type TripRequest struct {
	Pickup     string       `json:"pickup"`
	Dropoff    string       `json:"dropoff"`
	Current    string       `json:"current"`
	CycleHours *float64     `json:"cycle_hours"`
	Header     *PanelHeader `json:"header,omitempty"`
}

type StopResponse struct {
	Role  string  `json:"role"`
	Query string  `json:"query"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
}

type RouteResponse struct {
	DistanceMeters  int              `json:"distance_meters"`
	DurationSeconds int              `json:"duration_seconds"`
	TotalMiles      float64          `json:"total_miles"`
	Polyline        string           `json:"polyline"`
	GeoJSON         *geojson.Feature `json:"geojson"`
}

type MarkerResponse struct {
	Role     string     `json:"role"`
	Label    string     `json:"label"`
	Position [2]float64 `json:"position"`
}

type LayerResponse struct {
	ID       string  `json:"id"`
	Source   string  `json:"source"`
	LineJoin string  `json:"line_join"`
	LineCap  string  `json:"line_cap"`
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
}

type MapResponse struct {
	State      string           `json:"state"`
	Style      string           `json:"style"`
	Center     [2]float64       `json:"center"`
	Zoom       float64          `json:"zoom"`
	FitPadding int              `json:"fit_padding"`
	Bounds     *[2][2]float64   `json:"bounds"`
	Markers    []MarkerResponse `json:"markers"`
	Layers     []LayerResponse  `json:"layers"`
}

type TripResponse struct {
	Stops      []StopResponse  `json:"stops"`
	Route      RouteResponse   `json:"route"`
	Map        MapResponse     `json:"map"`
	PanelCount int             `json:"panel_count"`
	Panels     []PanelResponse `json:"panels"`
}

package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/twpayne/go-polyline"

	"trip-log-service/internal/domain"
)

// EncodePolyline encodes a lon/lat geometry in Google's polyline format,
// which orders each pair as lat, lon.
func EncodePolyline(geometry []domain.Coordinates) string {
	coords := make([][]float64, 0, len(geometry))
	for _, c := range geometry {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePolyline is the inverse of EncodePolyline.
func DecodePolyline(s string) ([]domain.Coordinates, error) {
	coords, _, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		out = append(out, domain.Coordinates{Lon: c[1], Lat: c[0]})
	}
	return out, nil
}

// LineLengthMeters is the geodesic length of the geometry.
func LineLengthMeters(geometry []domain.Coordinates) float64 {
	line := make(orb.LineString, 0, len(geometry))
	for _, c := range geometry {
		line = append(line, c.Point())
	}
	return geo.Length(line)
}

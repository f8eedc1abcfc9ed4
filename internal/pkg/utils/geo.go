package utils

import "github.com/partner-crm/internal/domain"

// ValidateCoordinates reports whether the pair is a plausible WGS84 point.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// BoundsOf computes the bounding rectangle over a set of coordinates with a
// padding margin applied to each side, expressed as a fraction of the span
// (0.1 = 10%). Returns nil for an empty set.
func BoundsOf(coords []domain.Coordinate, padding float64) *domain.BoundingBox {
	if len(coords) == 0 {
		return nil
	}

	box := domain.BoundingBox{
		MinLat: coords[0].Lat,
		MaxLat: coords[0].Lat,
		MinLon: coords[0].Lon,
		MaxLon: coords[0].Lon,
	}

	for _, c := range coords[1:] {
		if c.Lat < box.MinLat {
			box.MinLat = c.Lat
		}
		if c.Lat > box.MaxLat {
			box.MaxLat = c.Lat
		}
		if c.Lon < box.MinLon {
			box.MinLon = c.Lon
		}
		if c.Lon > box.MaxLon {
			box.MaxLon = c.Lon
		}
	}

	latPad := (box.MaxLat - box.MinLat) * padding
	lonPad := (box.MaxLon - box.MinLon) * padding

	box.MinLat -= latPad
	box.MaxLat += latPad
	box.MinLon -= lonPad
	box.MaxLon += lonPad

	return &box
}

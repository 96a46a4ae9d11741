package domain

import "math"

// kmPerDegreeLat is the approximate length of one degree of latitude.
const kmPerDegreeLat = 111.0

// duplicateLocationDelta is the half-width, in degrees on both axes, of the
// box inside which two fountains are treated as the same location.
const duplicateLocationDelta = 0.0001

// BoundingBox is an axis-aligned latitude/longitude rectangle used to
// approximate a circular search radius. Bounds are inclusive.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBoxAround returns the box approximating a circle of radiusKm around
// the given center. One latitude degree is taken as a constant 111 km; the
// longitude delta is corrected by cos(lat) since longitude degrees shrink
// away from the equator. Near the poles cos(lat) reaches 0 and the longitude
// bound degenerates; the box then spans the full longitude range rather than
// dividing by zero.
func BoundingBoxAround(lat, lng, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegreeLat

	lngDelta := 180.0
	if cos := math.Cos(lat * math.Pi / 180); math.Abs(cos) > 1e-9 {
		lngDelta = radiusKm / (kmPerDegreeLat * cos)
	}

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}

// DuplicateLocationBox returns the fixed small box used to reject a new
// fountain placed on top of an existing one.
func DuplicateLocationBox(lat, lng float64) BoundingBox {
	return BoundingBox{
		MinLat: lat - duplicateLocationDelta,
		MaxLat: lat + duplicateLocationDelta,
		MinLng: lng - duplicateLocationDelta,
		MaxLng: lng + duplicateLocationDelta,
	}
}

// Contains reports whether the point lies inside the box, bounds included.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

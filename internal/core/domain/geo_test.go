package domain

import "testing"

func TestBoundingBoxAround_CenterAlwaysIncluded(t *testing.T) {
	for _, radius := range []float64{0.001, 0.5, 1, 50} {
		box := BoundingBoxAround(48.8566, 2.3522, radius)
		if !box.Contains(48.8566, 2.3522) {
			t.Fatalf("center excluded for radius %f", radius)
		}
	}
}

func TestBoundingBoxAround_LatitudeBound(t *testing.T) {
	// 111 km ≈ 1 degree of latitude.
	box := BoundingBoxAround(10, 20, 111)

	if !box.Contains(10.9999, 20) {
		t.Fatalf("point inside latitude delta excluded")
	}
	if box.Contains(11.0001, 20) {
		t.Fatalf("point beyond latitude delta included")
	}
	if box.Contains(8.9999, 20) {
		t.Fatalf("point below latitude delta included")
	}
}

func TestBoundingBoxAround_LongitudeWidensAwayFromEquator(t *testing.T) {
	equator := BoundingBoxAround(0, 0, 111)
	north := BoundingBoxAround(60, 0, 111)

	if (north.MaxLng - north.MinLng) <= (equator.MaxLng - equator.MinLng) {
		t.Fatalf("expected wider longitude delta away from the equator")
	}
}

func TestBoundingBoxAround_PoleFallback(t *testing.T) {
	// cos(90°) is 0; the longitude bound must degenerate to the full range
	// instead of dividing by zero.
	box := BoundingBoxAround(90, 0, 1)

	for _, lng := range []float64{-180, -45, 0, 179.9} {
		if !box.Contains(90, lng) {
			t.Fatalf("longitude %f excluded at the pole", lng)
		}
	}
}

func TestDuplicateLocationBox(t *testing.T) {
	box := DuplicateLocationBox(40.7128, -74.0060)

	if !box.Contains(40.7128+0.00005, -74.0060+0.00005) {
		t.Fatalf("near-identical location not treated as duplicate")
	}
	if box.Contains(40.7128+0.0002, -74.0060) {
		t.Fatalf("location 0.0002 degrees away treated as duplicate")
	}
	if box.Contains(40.7128, -74.0060+0.0002) {
		t.Fatalf("location 0.0002 degrees away on lng treated as duplicate")
	}
}

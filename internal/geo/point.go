// Package geo provides flat 2D geographic geometry: polygon area and
// winding, convex clipping, and latitude-band extraction.
//
// Throughout the package, longitude is treated as the x axis and latitude
// as the y axis. Angles are degrees (north and east positive).
package geo

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64 // degrees, north positive
	Lon float64 // degrees, east positive
}

// Polygon is an ordered vertex sequence, implicitly closed (the last vertex
// connects back to the first). Fewer than 3 vertices is degenerate.
type Polygon []Point

// TileBounds is an axis-aligned rectangle in degrees.
type TileBounds struct {
	North float64
	South float64
	East  float64
	West  float64
}

// Polygon returns the rectangle as a four-vertex polygon (clockwise in
// lat/lon axes), suitable as a convex clip region.
func (t TileBounds) Polygon() Polygon {
	return Polygon{
		{Lat: t.North, Lon: t.West},
		{Lat: t.North, Lon: t.East},
		{Lat: t.South, Lon: t.East},
		{Lat: t.South, Lon: t.West},
	}
}

// Width returns the longitude extent in degrees.
func (t TileBounds) Width() float64 { return t.East - t.West }

// Height returns the latitude extent in degrees.
func (t TileBounds) Height() float64 { return t.North - t.South }

// Area returns the rectangle area in square degrees.
func (t TileBounds) Area() float64 { return t.Width() * t.Height() }

// Contains reports whether the point lies within the rectangle (inclusive).
func (t TileBounds) Contains(p Point) bool {
	return p.Lat >= t.South && p.Lat <= t.North && p.Lon >= t.West && p.Lon <= t.East
}

// ValidCoordinates reports whether latitude is in [-90, 90] and longitude
// in [-180, 180].
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

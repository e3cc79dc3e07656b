package geo

import "math"

// intersectEps is the denominator magnitude below which two segments are
// treated as parallel during clipping.
const intersectEps = 1e-12

// SignedArea computes the shoelace area of the polygon with longitude as x
// and latitude as y. A negative result means the vertices wind clockwise in
// those axes; that is the orientation the rest of the package treats as
// normalized. Returns 0 for fewer than 3 vertices.
func SignedArea(p Polygon) float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		sum += a.Lon*b.Lat - b.Lon*a.Lat
	}
	return sum / 2
}

// NormalizeWinding returns the polygon wound clockwise (signed area < 0).
// The input is never mutated; a reversed copy is returned when needed.
// Normalizing an already-clockwise polygon returns it unchanged, so the
// operation is idempotent.
func NormalizeWinding(p Polygon) Polygon {
	if SignedArea(p) < 0 {
		return p
	}
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Clip intersects subject with a convex clip polygon using the
// Sutherland–Hodgman algorithm and returns the resulting polygon.
//
// The clip polygon must be convex; that is a caller contract and is not
// checked. Either polygon may be given in either winding order: the
// half-plane test is oriented by the clip polygon's own signed area, so the
// result does not depend on input orientation. If either input has fewer
// than 3 vertices the result is an empty polygon, meaning "no overlap".
func Clip(subject, clip Polygon) Polygon {
	if len(subject) < 3 || len(clip) < 3 {
		return Polygon{}
	}

	clockwise := SignedArea(clip) < 0

	out := make(Polygon, len(subject))
	copy(out, subject)

	for i := range clip {
		edgeA := clip[i]
		edgeB := clip[(i+1)%len(clip)]

		in := out
		out = nil
		if len(in) == 0 {
			break
		}

		prev := in[len(in)-1]
		prevInside := insideEdge(prev, edgeA, edgeB, clockwise)
		for _, cur := range in {
			curInside := insideEdge(cur, edgeA, edgeB, clockwise)
			switch {
			case curInside && prevInside:
				out = append(out, cur)
			case curInside && !prevInside:
				out = append(out, lineIntersection(prev, cur, edgeA, edgeB), cur)
			case !curInside && prevInside:
				out = append(out, lineIntersection(prev, cur, edgeA, edgeB))
			}
			prev = cur
			prevInside = curInside
		}
	}

	if out == nil {
		return Polygon{}
	}
	return out
}

// insideEdge reports whether p lies on the interior side of the directed
// clip edge a->b, where interior is determined by the clip polygon's
// winding.
func insideEdge(p, a, b Point, clockwise bool) bool {
	cross := (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
	if clockwise {
		return cross <= 0
	}
	return cross >= 0
}

// lineIntersection returns the intersection of lines p1-p2 and p3-p4.
// Near-parallel lines (denominator below intersectEps) yield p2 unchanged
// instead of dividing by a vanishing denominator; the small clipping error
// on degenerate geometry is accepted in exchange for never producing NaN.
func lineIntersection(p1, p2, p3, p4 Point) Point {
	denom := (p1.Lon-p2.Lon)*(p3.Lat-p4.Lat) - (p1.Lat-p2.Lat)*(p3.Lon-p4.Lon)
	if math.Abs(denom) < intersectEps {
		return p2
	}
	c1 := p1.Lon*p2.Lat - p1.Lat*p2.Lon
	c2 := p3.Lon*p4.Lat - p3.Lat*p4.Lon
	return Point{
		Lon: (c1*(p3.Lon-p4.Lon) - (p1.Lon-p2.Lon)*c2) / denom,
		Lat: (c1*(p3.Lat-p4.Lat) - (p1.Lat-p2.Lat)*c2) / denom,
	}
}

// Contains reports whether the point lies inside the polygon using the
// even-odd ray casting rule. Points exactly on an edge may land on either
// side.
func Contains(p Polygon, pt Point) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := range p {
		a, b := p[i], p[j]
		if (a.Lat > pt.Lat) != (b.Lat > pt.Lat) {
			x := a.Lon + (pt.Lat-a.Lat)/(b.Lat-a.Lat)*(b.Lon-a.Lon)
			if pt.Lon < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

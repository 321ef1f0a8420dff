package spatial

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/porkytheunique/ocean-insight/internal/model"
)

// DegToKM converts planar degree distance to kilometers using a fixed
// 111.32 km-per-degree-of-latitude multiplier. This is an approximation,
// not a geodesic distance; it matches the published feed's precision needs.
const DegToKM = 111.32

// PointToGeometry returns the exact planar distance in degrees from p to
// the nearest part of g. A point inside a polygon has distance zero.
// ok is false when the geometry is nil, empty, or of an unsupported type.
func PointToGeometry(p model.GeoPoint, g geom.T) (float64, bool) {
	switch s := g.(type) {
	case *geom.Point:
		c := s.Coords()
		if len(c) < 2 {
			return 0, false
		}
		return math.Hypot(p.Lon-c[0], p.Lat-c[1]), true

	case *geom.LineString:
		return pointToCoords(p, s.Coords())

	case *geom.MultiLineString:
		best := math.Inf(1)
		found := false
		for i := 0; i < s.NumLineStrings(); i++ {
			if d, ok := pointToCoords(p, s.LineString(i).Coords()); ok && d < best {
				best = d
				found = true
			}
		}
		return best, found

	case *geom.Polygon:
		return pointToPolygon(p, s)

	case *geom.MultiPolygon:
		best := math.Inf(1)
		found := false
		for i := 0; i < s.NumPolygons(); i++ {
			d, ok := pointToPolygon(p, s.Polygon(i))
			if !ok {
				continue
			}
			if d == 0 {
				return 0, true
			}
			if d < best {
				best = d
				found = true
			}
		}
		return best, found

	default:
		return 0, false
	}
}

// pointToPolygon returns zero for points inside the polygon (outside any
// hole), otherwise the distance to the nearest ring segment.
func pointToPolygon(p model.GeoPoint, poly *geom.Polygon) (float64, bool) {
	n := poly.NumLinearRings()
	if n == 0 {
		return 0, false
	}
	exterior := poly.LinearRing(0).Coords()
	if len(exterior) < 3 {
		return 0, false
	}

	if pointInRing(p, exterior) {
		inHole := false
		for i := 1; i < n; i++ {
			if pointInRing(p, poly.LinearRing(i).Coords()) {
				inHole = true
				break
			}
		}
		if !inHole {
			return 0, true
		}
	}

	best := math.Inf(1)
	found := false
	for i := 0; i < n; i++ {
		if d, ok := pointToCoords(p, poly.LinearRing(i).Coords()); ok && d < best {
			best = d
			found = true
		}
	}
	return best, found
}

// pointToCoords returns the minimum distance from p to the polyline
// described by coords.
func pointToCoords(p model.GeoPoint, coords []geom.Coord) (float64, bool) {
	if len(coords) == 0 {
		return 0, false
	}
	if len(coords) == 1 {
		if len(coords[0]) < 2 {
			return 0, false
		}
		return math.Hypot(p.Lon-coords[0][0], p.Lat-coords[0][1]), true
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(coords); i++ {
		a, b := coords[i], coords[i+1]
		if len(a) < 2 || len(b) < 2 {
			continue
		}
		d := pointToSegment(p.Lon, p.Lat, a[0], a[1], b[0], b[1])
		if d < best {
			best = d
		}
	}
	return best, !math.IsInf(best, 1)
}

// pointToSegment returns the distance from (px,py) to segment (ax,ay)-(bx,by).
func pointToSegment(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	if dx == 0 && dy == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// pointInRing reports whether p is inside the ring using ray casting.
func pointInRing(p model.GeoPoint, ring []geom.Coord) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		if len(ring[i]) < 2 || len(ring[j]) < 2 {
			j = i
			continue
		}
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > p.Lat) != (yj > p.Lat) &&
			p.Lon < (xj-xi)*(p.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

package geo

import (
	"math"

	"github.com/golang/geo/s2"
)

func toS2Point(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

func fromS2Point(p s2.Point) Coordinate {
	ll := s2.LatLngFromPoint(p)
	return NewCoordinate(ll.Lat.Degrees(), ll.Lng.Degrees())
}

// InterpolateCoord. point at fraction t (0..1) of the great circle segment a-b.
func InterpolateCoord(a, b Coordinate, t float64) Coordinate {
	return fromS2Point(s2.Interpolate(t, toS2Point(a), toS2Point(b)))
}

// PolylineLength. length of the polyline in meter
func PolylineLength(coords []Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += DistanceMeter(coords[i-1], coords[i])
	}
	return length
}

// PointAlongPolyline. point located dist meter from the first coordinate of the polyline.
// dist beyond the polyline length returns the last coordinate.
func PointAlongPolyline(coords []Coordinate, dist float64) Coordinate {
	if len(coords) == 0 {
		return Coordinate{}
	}
	if dist <= 0 {
		return coords[0]
	}
	walked := 0.0
	for i := 1; i < len(coords); i++ {
		segment := DistanceMeter(coords[i-1], coords[i])
		if walked+segment >= dist && segment > 0 {
			return InterpolateCoord(coords[i-1], coords[i], (dist-walked)/segment)
		}
		walked += segment
	}
	return coords[len(coords)-1]
}

// BearingAlongPolyline. bearing from the first coordinate to the point located dist meter along the polyline.
func BearingAlongPolyline(coords []Coordinate, dist float64) float64 {
	if len(coords) < 2 {
		return 0
	}
	length := PolylineLength(coords)
	if dist > length {
		dist = length
	}
	to := PointAlongPolyline(coords, dist)
	from := coords[0]
	if DistanceMeter(from, to) == 0 {
		to = coords[len(coords)-1]
	}
	return BearingTo(from.Lat, from.Lon, to.Lat, to.Lon)
}

// ProjectOntoPolyline. closest point of the polyline to c and its distance to c in meter.
func ProjectOntoPolyline(coords []Coordinate, c Coordinate) (Coordinate, float64) {
	if len(coords) == 0 {
		return Coordinate{}, math.Inf(1)
	}
	if len(coords) == 1 {
		return coords[0], DistanceMeter(coords[0], c)
	}
	line := make(s2.Polyline, 0, len(coords))
	for _, coord := range coords {
		line = append(line, toS2Point(coord))
	}
	projected, _ := line.Project(toS2Point(c))
	p := fromS2Point(projected)
	return p, DistanceMeter(p, c)
}

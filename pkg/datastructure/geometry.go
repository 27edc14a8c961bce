package datastructure

import (
	"math"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
)

const (
	EPS = 1e-9
)

// Point in planar lon (x) / lat (y) space.
type Point struct {
	x, y float64
}

func NewPoint(x, y float64) *Point {
	return &Point{x, y}
}

func pointFromCoordinate(c geo.Coordinate) *Point {
	return NewPoint(c.Lon, c.Lat)
}


// equal operator
func Eq(a, b float64) bool {
	return math.Abs(a-b) <= EPS
}

// less than operator
func Lt(a, b float64) bool {
	return a+EPS < b
}

// greater than or equal than operator
func Ge(a, b float64) bool {
	return Le(b, a)
}

// less than or equal operator
func Le(a, b float64) bool {
	return a <= b+EPS
}

type Vector struct {
	x, y float64
}

func NewVector(x, y float64) *Vector {
	return &Vector{x, y}
}

func toVec(a, b *Point) *Vector {
	return NewVector(b.x-a.x, b.y-a.y)
}

// cross product of two vectors a and b
func cross(a, b *Vector) float64 {
	return a.x*b.y - a.y*b.x
}

// dir. orientation of r relative to line pq: 0 collinear, 1 clockwise, -1 counterclockwise
func dir(p, q, r *Point) int {
	x := cross(toVec(p, r), toVec(p, q))
	if math.Abs(x) < EPS {
		return 0
	}

	if x > 0 {
		return 1
	}
	return -1
}

// onSegment. r collinear with pq lies within the bounding box of pq
func onSegment(p, q, r *Point) bool {
	return Le(math.Min(p.x, q.x), r.x) && Le(r.x, math.Max(p.x, q.x)) &&
		Le(math.Min(p.y, q.y), r.y) && Le(r.y, math.Max(p.y, q.y))
}

// intersect. check wether line segments (ab) and (pq) intersect, touching endpoints included
func intersect(a, b, p, q *Point) bool {
	d1 := dir(a, b, p)
	d2 := dir(a, b, q)
	d3 := dir(p, q, a)
	d4 := dir(p, q, b)

	if d1 != d2 && d3 != d4 {
		return true
	}

	// collinear cases
	if d1 == 0 && onSegment(a, b, p) {
		return true
	}
	if d2 == 0 && onSegment(a, b, q) {
		return true
	}
	if d3 == 0 && onSegment(p, q, a) {
		return true
	}
	return d4 == 0 && onSegment(p, q, b)
}

// intersectionPoint. intersection point of the lines through (ab) and (pq)
func intersectionPoint(a, b, p, q *Point) *Point {
	denom := cross(toVec(q, p), toVec(a, b))
	cp := cross(toVec(q, p), toVec(a, p)) / denom

	return NewPoint(a.x+(b.x-a.x)*cp, a.y+(b.y-a.y)*cp)
}

// PolylineIntersectsBox. true if any part of the polyline lies inside the box.
func PolylineIntersectsBox(coords []geo.Coordinate, bb *BoundingBox) bool {
	for _, c := range coords {
		if bb.Contains(c) {
			return true
		}
	}

	corners := []*Point{
		NewPoint(bb.minLon, bb.minLat),
		NewPoint(bb.maxLon, bb.minLat),
		NewPoint(bb.maxLon, bb.maxLat),
		NewPoint(bb.minLon, bb.maxLat),
	}
	for i := 1; i < len(coords); i++ {
		a, b := pointFromCoordinate(coords[i-1]), pointFromCoordinate(coords[i])
		for j := 0; j < 4; j++ {
			if intersect(a, b, corners[j], corners[(j+1)%4]) {
				return true
			}
		}
	}
	return false
}

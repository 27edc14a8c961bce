package datastructure

import (
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
)

func TestIntersect(t *testing.T) {
	ps := []*Point{
		NewPoint(2, 2),
		NewPoint(4, 3),
		NewPoint(2, 4),
		NewPoint(6, 6),
		NewPoint(2, 6),
		NewPoint(6, 5),
		NewPoint(8, 6),
		NewPoint(4, 5),
	}

	testCases := []struct {
		name               string
		p1                 *Point
		p2                 *Point
		p3                 *Point
		p4                 *Point
		want               bool
		wantIntersectPoint *Point
	}{
		{
			name:               "test intersect 1",
			p1:                 ps[0],
			p2:                 ps[6],
			p3:                 ps[1],
			p4:                 ps[7],
			wantIntersectPoint: NewPoint(4.0, 3.3333333333),
			want:               true,
		},
		{
			name: "parallel segments",
			p1:   ps[0],
			p2:   ps[2],
			p3:   ps[1],
			p4:   ps[7],
			want: false,
		},
		{
			name:               "touching endpoint",
			p1:                 ps[0],
			p2:                 ps[1],
			p3:                 ps[1],
			p4:                 ps[7],
			wantIntersectPoint: ps[1],
			want:               true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := intersect(tt.p1, tt.p2, tt.p3, tt.p4)
			if got != tt.want {
				t.Fatalf("intersect() = %v, want %v", got, tt.want)
			}
			if !tt.want {
				return
			}
			intersectPoint := intersectionPoint(tt.p1, tt.p2, tt.p3, tt.p4)
			if !Eq(intersectPoint.x, tt.wantIntersectPoint.x) || math.Abs(intersectPoint.y-tt.wantIntersectPoint.y) > 1e-6 {
				t.Errorf("intersection point = (%v,%v), want (%v,%v)", intersectPoint.x, intersectPoint.y,
					tt.wantIntersectPoint.x, tt.wantIntersectPoint.y)
			}
		})
	}
}

func TestPolylineIntersectsBox(t *testing.T) {
	bb := NewBoundingBox(0, 0, 1, 1)

	testCases := []struct {
		name   string
		coords []geo.Coordinate
		want   bool
	}{
		{
			name:   "inside",
			coords: []geo.Coordinate{geo.NewCoordinate(0.5, 0.5), geo.NewCoordinate(0.6, 0.6)},
			want:   true,
		},
		{
			name:   "crossing without vertex inside",
			coords: []geo.Coordinate{geo.NewCoordinate(0.5, -1), geo.NewCoordinate(0.5, 2)},
			want:   true,
		},
		{
			name:   "outside",
			coords: []geo.Coordinate{geo.NewCoordinate(2, 2), geo.NewCoordinate(3, 3)},
			want:   false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolylineIntersectsBox(tt.coords, bb); got != tt.want {
				t.Errorf("PolylineIntersectsBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

package datastructure

import "github.com/lintang-b-s/navigatorx-openlr/pkg/geo"

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

func (b *BoundingBox) Contains(c geo.Coordinate) bool {
	return c.Lat >= b.minLat && c.Lat <= b.maxLat && c.Lon >= b.minLon && c.Lon <= b.maxLon
}

// Package codec. JSON representation of map-independent locations.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
)

// Document. {"type": "line", "line": {...}}, exactly one payload matching type is set.
type Document struct {
	Type           string                        `json:"type"`
	Line           *model.LineLocation           `json:"line,omitempty"`
	PointAlongLine *model.PointAlongLineLocation `json:"point_along_line,omitempty"`
	ClosedLine     *model.ClosedLineLocation     `json:"closed_line,omitempty"`
	Rectangle      *model.RectangleLocation      `json:"rectangle,omitempty"`
}

// JSONCodec. raw decoder & encoder for Document.
type JSONCodec struct {
}

func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Decode(data []byte) (model.Location, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal location: %w", err)
	}
	return doc.Location()
}

func (c *JSONCodec) Encode(location model.Location) ([]byte, error) {
	doc, err := NewDocument(location)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func NewDocument(location model.Location) (Document, error) {
	var doc Document
	switch loc := location.(type) {
	case *model.LineLocation:
		doc.Line = loc
	case *model.PointAlongLineLocation:
		doc.PointAlongLine = loc
	case *model.ClosedLineLocation:
		doc.ClosedLine = loc
	case *model.RectangleLocation:
		doc.Rectangle = loc
	default:
		return Document{}, fmt.Errorf("unsupported location type %T", location)
	}
	doc.Type = location.Type().String()
	return doc, nil
}

// Location. the payload selected by Type.
func (doc Document) Location() (model.Location, error) {
	locationType, ok := model.ParseLocationType(doc.Type)
	if !ok {
		return nil, fmt.Errorf("unknown location type %q", doc.Type)
	}

	var location model.Location
	switch locationType {
	case model.LINE_LOCATION:
		if doc.Line != nil {
			location = doc.Line
		}
	case model.POINT_ALONG_LINE_LOCATION:
		if doc.PointAlongLine != nil {
			location = doc.PointAlongLine
		}
	case model.CLOSED_LINE_LOCATION:
		if doc.ClosedLine != nil {
			location = doc.ClosedLine
		}
	case model.RECTANGLE_LOCATION:
		if doc.Rectangle != nil {
			location = doc.Rectangle
		}
	}
	if location == nil {
		return nil, fmt.Errorf("missing %q payload", doc.Type)
	}
	return location, nil
}

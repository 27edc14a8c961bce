// Package tagmatcher maps OSM highway tags to OpenLR functional road class & form of way.
package tagmatcher

import (
	"github.com/lintang-b-s/navigatorx-openlr/pkg"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/paulmach/osm"
)

type OSMTagMatcher struct {
}

func NewOSMTagMatcher() *OSMTagMatcher {
	return &OSMTagMatcher{}
}

var highwayFRC = map[pkg.OsmHighwayType]model.FRC{
	pkg.MOTORWAY:       model.FRC0,
	pkg.MOTORWAY_LINK:  model.FRC0,
	pkg.TRUNK:          model.FRC1,
	pkg.TRUNK_LINK:     model.FRC1,
	pkg.MOTORROAD:      model.FRC1,
	pkg.PRIMARY:        model.FRC2,
	pkg.PRIMARY_LINK:   model.FRC2,
	pkg.SECONDARY:      model.FRC3,
	pkg.SECONDARY_LINK: model.FRC3,
	pkg.TERTIARY:       model.FRC4,
	pkg.TERTIARY_LINK:  model.FRC4,
	pkg.UNCLASSIFIED:   model.FRC5,
	pkg.RESIDENTIAL:    model.FRC5,
	pkg.ROAD:           model.FRC5,
	pkg.LIVING_STREET:  model.FRC6,
	pkg.SERVICE:        model.FRC6,
	pkg.TRACK:          model.FRC7,
}

// Classify. FRC/FOW of an OSM way, false if the way has no routable highway tag.
func (m *OSMTagMatcher) Classify(tags osm.Tags) (model.FRC, model.FOW, bool) {
	highway := pkg.GetHighwayType(tags.Find("highway"))
	frc, ok := highwayFRC[highway]
	if !ok {
		return model.FRC7, model.FOW_UNDEFINED, false
	}

	var fow model.FOW
	switch {
	case isRoundabout(tags):
		fow = model.FOW_ROUNDABOUT
	case highway.IsLink():
		fow = model.FOW_SLIPROAD
	case highway == pkg.MOTORWAY:
		fow = model.FOW_MOTORWAY
	case tags.Find("area") == "yes":
		fow = model.FOW_TRAFFICSQUARE
	case frc <= model.FRC3 && tags.Find("dual_carriageway") == "yes":
		fow = model.FOW_MULTIPLE_CARRIAGEWAY
	case frc <= model.FRC2 && isOnewayValue(tags.Find("oneway")):
		// one carriageway of a divided main road.
		fow = model.FOW_MULTIPLE_CARRIAGEWAY
	case highway == pkg.TRACK:
		fow = model.FOW_OTHER
	default:
		fow = model.FOW_SINGLE_CARRIAGEWAY
	}
	return frc, fow, true
}

// OnewayRestriction. nil: no restriction, true: only along the way direction, false: only against it.
func (m *OSMTagMatcher) OnewayRestriction(tags osm.Tags) *bool {
	oneway := tags.Find("oneway")
	switch {
	case isOnewayValue(oneway):
		return boolPtr(true)
	case oneway == "-1" || oneway == "reverse":
		return boolPtr(false)
	case oneway == "no" || oneway == "false" || oneway == "0":
		return nil
	}

	forwardRestricted, backwardRestricted := restrictedDirections(tags)
	switch {
	case forwardRestricted && !backwardRestricted:
		return boolPtr(false)
	case backwardRestricted && !forwardRestricted:
		return boolPtr(true)
	}

	highway := pkg.GetHighwayType(tags.Find("highway"))
	if isRoundabout(tags) || highway == pkg.MOTORWAY || highway == pkg.MOTORWAY_LINK {
		return boolPtr(true)
	}
	return nil
}

func isOnewayValue(v string) bool {
	return v == "yes" || v == "true" || v == "1"
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

// restrictedDirections. vehicle:forward / motor_vehicle:forward (and backward) access restrictions.
func restrictedDirections(tags osm.Tags) (bool, bool) {
	forward := isRestricted(tags.Find("vehicle:forward")) || isRestricted(tags.Find("motor_vehicle:forward"))
	backward := isRestricted(tags.Find("vehicle:backward")) || isRestricted(tags.Find("motor_vehicle:backward"))
	return forward, backward
}

func isRoundabout(tags osm.Tags) bool {
	junction := tags.Find("junction")
	return junction == "roundabout" || junction == "circular"
}

func boolPtr(b bool) *bool {
	return &b
}

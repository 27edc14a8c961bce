package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lintang-b-s/navigatorx-openlr/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/engine"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/logger"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/openlr/model"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/util"
)

const usage = `usage: openlr [-network file] <command> [flags]

commands:
  decode -in location.json [-geojson]   resolve a location reference on the road network
  encode -in referenced.json            build a location reference from road network edges
`

var networkFile = flag.String("network", "./data/network.graph", "road network file (.graph, .geojson, .osm.pbf, .osm)")

// referencedInput. edges of a line, point along line or closed line, corners of a rectangle.
type referencedInput struct {
	Type        string                `json:"type"`
	Edges       []datastructure.Index `json:"edges"`
	StartOffset float64               `json:"start_offset"`
	EndOffset   float64               `json:"end_offset"`
	Offset      float64               `json:"offset"`
	LowerLeft   geo.Coordinate        `json:"lower_left"`
	UpperRight  geo.Coordinate        `json:"upper_right"`
}

func (in referencedInput) location() (model.ReferencedLocation, error) {
	locationType, ok := model.ParseLocationType(in.Type)
	if !ok {
		return nil, fmt.Errorf("unknown location type %q", in.Type)
	}
	switch locationType {
	case model.POINT_ALONG_LINE_LOCATION:
		return &model.ReferencedPointAlongLine{Route: &model.ReferencedLine{Edges: in.Edges}, Offset: in.Offset}, nil
	case model.CLOSED_LINE_LOCATION:
		return &model.ReferencedClosedLine{Edges: in.Edges}, nil
	case model.RECTANGLE_LOCATION:
		return &model.ReferencedRectangle{LowerLeft: in.LowerLeft, UpperRight: in.UpperRight}, nil
	default:
		return &model.ReferencedLine{Edges: in.Edges, StartOffset: in.StartOffset, EndOffset: in.EndOffset}, nil
	}
}

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := util.ReadConfig(); err != nil {
		fatal(err)
	}
	logger, err := logger.New()
	if err != nil {
		fatal(err)
	}
	defer logger.Sync()

	cmd := flag.NewFlagSet(flag.Arg(0), flag.ExitOnError)
	in := cmd.String("in", "-", "input json file, - for stdin")
	asGeojson := cmd.Bool("geojson", false, "write the decoded edges as a geojson FeatureCollection")
	_ = cmd.Parse(flag.Args()[1:])

	data, err := readInput(*in)
	if err != nil {
		fatal(err)
	}

	openlrEngine, err := engine.NewEngine(*networkFile, logger)
	if err != nil {
		fatal(err)
	}

	switch flag.Arg(0) {
	case "decode":
		decoded, err := openlrEngine.GetDecoder().DecodeRaw(context.Background(), data)
		if err != nil {
			fatal(err)
		}
		if *asGeojson {
			graph := openlrEngine.GetRoadNetwork().GetGraph()
			writeJSON(graph.EdgesToFeatureCollection(edgesOf(decoded)))
			return
		}
		writeJSON(decoded)
	case "encode":
		var input referencedInput
		if err := json.Unmarshal(data, &input); err != nil {
			fatal(fmt.Errorf("invalid referenced location: %w", err))
		}
		location, err := input.location()
		if err != nil {
			fatal(err)
		}
		encoded, err := openlrEngine.GetEncoder().EncodeRaw(location)
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(encoded))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func edgesOf(location model.ReferencedLocation) []datastructure.Index {
	switch loc := location.(type) {
	case *model.ReferencedLine:
		return loc.Edges
	case *model.ReferencedPointAlongLine:
		return loc.Route.Edges
	case *model.ReferencedClosedLine:
		return loc.Edges
	case *model.ReferencedRectangle:
		return loc.Edges
	}
	return nil
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func writeJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "openlr:", err)
	os.Exit(1)
}

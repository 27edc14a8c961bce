package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-openlr/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// WriteGraph. write the road network as bzip2 compressed text.
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)
	defer w.Flush()

	gs := g.graphStorage
	fmt.Fprintf(w, "%d %d %d %d\n",
		g.NumberOfVertices(), g.NumberOfEdges(), len(gs.tags), len(gs.globalPoints))

	for vId := 0; vId < g.NumberOfVertices(); vId++ {
		v := g.vertices[vId]
		fmt.Fprintf(w, "%s %s\n", formatFloat(v.lat), formatFloat(v.lon))
	}

	for _, e := range g.edges {
		info := gs.mapEdgeInfo[e.edgeId]
		fmt.Fprintf(w, "%d %d %s %d %t %d %d\n",
			e.tail, e.head, formatFloat(e.dist), e.tagsId, e.reversed, info.startPointsIndex, info.endPointsIndex)
	}

	for _, tags := range gs.tags {
		fmt.Fprintf(w, "%d", len(tags))
		for _, tag := range tags {
			fmt.Fprintf(w, " %s %s", strconv.Quote(tag.Key), strconv.Quote(tag.Value))
		}
		fmt.Fprintf(w, "\n")
	}

	for _, p := range gs.globalPoints {
		fmt.Fprintf(w, "%s %s\n", formatFloat(p.Lat), formatFloat(p.Lon))
	}

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ReadGraph. read a road network written by WriteGraph.
func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open graph file %s", filename)
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, errors.Wrap(err, "bzip2 reader")
	}
	defer bz.Close()

	return readGraph(bz)
}

func readGraph(r io.Reader) (*Graph, error) {
	br := bufio.NewReader(r)

	line, err := readLine(br)
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	var numVertices, numEdges, numTags, numPoints int
	if _, err := fmt.Sscanf(line, "%d %d %d %d", &numVertices, &numEdges, &numTags, &numPoints); err != nil {
		return nil, errors.Wrap(err, "parse header")
	}

	b := NewGraphBuilder()
	for i := 0; i < numVertices; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read vertex %d", i)
		}
		var lat, lon float64
		if _, err := fmt.Sscanf(line, "%g %g", &lat, &lon); err != nil {
			return nil, errors.Wrapf(err, "parse vertex %d", i)
		}
		b.AddVertex(lat, lon)
	}

	for i := 0; i < numEdges; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read edge %d", i)
		}
		var (
			tail, head, tagsId, start, end Index
			dist                           float64
			reversed                       bool
		)
		if _, err := fmt.Sscanf(line, "%d %d %g %d %t %d %d", &tail, &head, &dist, &tagsId, &reversed,
			&start, &end); err != nil {
			return nil, errors.Wrapf(err, "parse edge %d", i)
		}
		if int(tail) >= numVertices || int(head) >= numVertices {
			return nil, errors.Errorf("edge %d references unknown vertex", i)
		}
		b.edges = append(b.edges, NewEdge(Index(i), tail, head, dist, tagsId, reversed))
		b.gs.AppendMapEdgeInfo(NewEdgeExtraInfo(start, end))
	}

	for i := 0; i < numTags; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read tags %d", i)
		}
		tags, err := parseTags(line)
		if err != nil {
			return nil, errors.Wrapf(err, "parse tags %d", i)
		}
		b.gs.AppendTags(tags)
	}

	points := make([]geo.Coordinate, 0, numPoints)
	for i := 0; i < numPoints; i++ {
		line, err := readLine(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read point %d", i)
		}
		var lat, lon float64
		if _, err := fmt.Sscanf(line, "%g %g", &lat, &lon); err != nil {
			return nil, errors.Wrapf(err, "parse point %d", i)
		}
		points = append(points, geo.NewCoordinate(lat, lon))
	}
	b.gs.AppendGlobalPoints(points)

	return b.Build(), nil
}

func parseTags(line string) (osm.Tags, error) {
	countStr, rest, _ := strings.Cut(line, " ")
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, err
	}
	tags := make(osm.Tags, 0, count)
	for i := 0; i < count; i++ {
		key, err := nextQuoted(&rest)
		if err != nil {
			return nil, err
		}
		value, err := nextQuoted(&rest)
		if err != nil {
			return nil, err
		}
		tags = append(tags, osm.Tag{Key: key, Value: value})
	}
	return tags, nil
}

func nextQuoted(s *string) (string, error) {
	trimmed := strings.TrimLeft(*s, " ")
	quoted, err := strconv.QuotedPrefix(trimmed)
	if err != nil {
		return "", err
	}
	*s = trimmed[len(quoted):]
	return strconv.Unquote(quoted)
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

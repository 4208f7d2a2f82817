// Package osmsource implements the two-pass OSM PBF reader: pass 1 filters
// ways through the tag categorizer and reject/require filters, remembering
// every node id a retained way references; pass 2 re-scans the file and
// materializes coordinates for exactly those node ids. PBF files may order
// nodes before or after ways; scanning twice keeps memory proportional to
// the retained ways' node fan-in rather than the extract's full node count.
package osmsource

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"osmgraph/pkg/geo"
	"osmgraph/pkg/graph"
)

// Filter captures the configuration that controls which ways survive pass 1.
// graph.Config satisfies this interface; it is expressed as an interface
// here so osmsource depends only on the queries it makes, not on a concrete
// configuration type.
type Filter interface {
	Rejected(key, value string) bool
	RequiredSatisfied(tagValue func(key string) (string, bool)) bool
	WantTag(key string) bool
}

// Read streams the PBF file at path twice: once for ways, once for the
// coordinates of nodes those ways reference. It returns the retained ways
// and a node map containing only the coordinates needed to split them —
// Uses is left at zero, to be filled in by the usage counter.
func Read(ctx context.Context, path string, filter Filter) ([]*graph.Way, map[graph.NodeID]*graph.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ways, nodesToKeep, err := readWays(ctx, f, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	log.Printf("osmsource: pass 1 complete, %d ways, %d referenced nodes", len(ways), len(nodesToKeep))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodes, err := readNodes(ctx, f, nodesToKeep)
	if err != nil {
		return nil, nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	log.Printf("osmsource: pass 2 complete, %d node coordinates collected", len(nodes))

	return ways, nodes, nil
}

func readWays(ctx context.Context, rs io.ReadSeeker, filter Filter) ([]*graph.Way, map[graph.NodeID]struct{}, error) {
	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	var ways []*graph.Way
	nodesToKeep := make(map[graph.NodeID]struct{})

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}

		var props graph.EdgeProperties
		props.UpdateTags(w.Tags)
		props.Normalize()
		if !props.Accessible() {
			continue
		}
		if rejectedBy(filter, w.Tags) {
			continue
		}
		if !filter.RequiredSatisfied(tagValueFunc(w.Tags)) {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}

		nodeIDs := make([]graph.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			nodesToKeep[wn.ID] = struct{}{}
		}

		ways = append(ways, &graph.Way{
			ID:         w.ID,
			Nodes:      nodeIDs,
			Properties: props,
			Tags:       retainedTags(filter, w.Tags),
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, nil, err
	}
	scanner.Close()

	return ways, nodesToKeep, nil
}

func readNodes(ctx context.Context, rs io.ReadSeeker, nodesToKeep map[graph.NodeID]struct{}) (map[graph.NodeID]*graph.Node, error) {
	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	nodes := make(map[graph.NodeID]*graph.Node, len(nodesToKeep))

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := nodesToKeep[n.ID]; !needed {
			continue
		}
		nodes[n.ID] = &graph.Node{
			ID:    n.ID,
			Coord: geo.Coord{Lon: n.Lon, Lat: n.Lat},
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	return nodes, nil
}

func rejectedBy(filter Filter, tags osm.Tags) bool {
	for _, tag := range tags {
		if filter.Rejected(tag.Key, tag.Value) {
			return true
		}
	}
	return false
}

func retainedTags(filter Filter, tags osm.Tags) map[string]string {
	out := make(map[string]string)
	for _, tag := range tags {
		if filter.WantTag(tag.Key) {
			out[tag.Key] = tag.Value
		}
	}
	return out
}

func tagValueFunc(tags osm.Tags) func(key string) (string, bool) {
	return func(key string) (string, bool) {
		v := tags.Find(key)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

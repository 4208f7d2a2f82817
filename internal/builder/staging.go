// Package builder holds the staging structure and algorithms shared by both
// ingress adapters (the PBF reader and the CSV tile reader): usage counting,
// way splitting, and the optional edge merger. Neither adapter duplicates
// this logic — they only populate a Staging value and hand it off.
package builder

import (
	"fmt"

	"osmgraph/pkg/graph"
)

// MissingNodeError reports a way referencing a node id absent from the
// staging node map after both PBF passes complete.
type MissingNodeError struct {
	NodeID graph.NodeID
	WayID  graph.WayID
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("way %d references missing node %d", e.WayID, e.NodeID)
}

// Staging holds the node map and retained way list populated by one ingress
// adapter invocation, before usage counting and splitting run.
type Staging struct {
	Nodes map[graph.NodeID]*graph.Node
	Ways  []*graph.Way
}

// NewStaging returns an empty Staging ready to be populated by an ingress
// adapter.
func NewStaging() *Staging {
	return &Staging{
		Nodes: make(map[graph.NodeID]*graph.Node),
	}
}

// CountUses tallies node usage across the retained ways: endpoints
// contribute +2 to their node's use count, interior nodes contribute +1.
// onMissing is invoked for the first node id of a way that is absent from
// s.Nodes; it returns whether processing should continue (drop the way) or
// abort (the PBF path returns false, making CountUses fail fast).
func (s *Staging) CountUses(onMissing func(way *graph.Way, nodeID graph.NodeID) bool) error {
	kept := s.Ways[:0]
	for _, way := range s.Ways {
		missing := false
		for _, nodeID := range way.Nodes {
			if _, ok := s.Nodes[nodeID]; !ok {
				if !onMissing(way, nodeID) {
					return &MissingNodeError{NodeID: nodeID, WayID: way.ID}
				}
				missing = true
				break
			}
		}
		if missing {
			continue
		}
		last := len(way.Nodes) - 1
		for i, nodeID := range way.Nodes {
			if i == 0 || i == last {
				s.Nodes[nodeID].Uses += 2
			} else {
				s.Nodes[nodeID].Uses++
			}
		}
		kept = append(kept, way)
	}
	s.Ways = kept
	return nil
}

// CollectNodes returns every node with Uses > 1, excluding any id present in
// exclude (used by the merger to drop nodes it stitched away).
func (s *Staging) CollectNodes(exclude map[graph.NodeID]struct{}) []graph.Node {
	nodes := make([]graph.Node, 0, len(s.Nodes))
	for id, n := range s.Nodes {
		if n.Uses <= 1 {
			continue
		}
		if _, skip := exclude[id]; skip {
			continue
		}
		nodes = append(nodes, *n)
	}
	return nodes
}

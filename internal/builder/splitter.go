package builder

import (
	"osmgraph/pkg/geo"
	"osmgraph/pkg/graph"
)

// SplitWays cuts each way into edges at nodes referenced by more than one
// way (or way endpoints), in way-encounter order with a strictly ascending
// split index per way.
func (s *Staging) SplitWays() []graph.Edge {
	var edges []graph.Edge
	for _, way := range s.Ways {
		edges = append(edges, s.splitWay(way)...)
	}
	return edges
}

func (s *Staging) splitWay(way *graph.Way) []graph.Edge {
	if len(way.Nodes) < 2 {
		return nil
	}

	var result []graph.Edge
	source := way.Nodes[0]
	var geometry []geo.Coord
	var nodeIDs []graph.NodeID

	last := len(way.Nodes) - 1
	for i, nodeID := range way.Nodes {
		node := s.Nodes[nodeID]
		geometry = append(geometry, node.Coord)
		nodeIDs = append(nodeIDs, node.ID)

		if i == 0 {
			continue
		}
		if node.Uses > 1 || i == last {
			result = append(result, graph.Edge{
				ID:         graph.SplitID(way.ID, len(result)),
				OsmID:      way.ID,
				Source:     source,
				Target:     nodeID,
				Geometry:   geometry,
				Properties: way.Properties,
				Nodes:      nodeIDs,
				Tags:       copyTags(way.Tags),
			})

			source = nodeID
			geometry = []geo.Coord{node.Coord}
			nodeIDs = []graph.NodeID{node.ID}
		}
	}
	return result
}

func copyTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

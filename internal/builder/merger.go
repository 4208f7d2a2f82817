package builder

import (
	"sort"

	"osmgraph/pkg/geo"
	"osmgraph/pkg/graph"
)

// MergeEdges stitches back together two edges from distinct source ways
// that meet at a node used by exactly two ways (Uses == 4), when their
// properties and retained tags agree. Merging runs to a fixed point: a chain
// of colinear fragments only fully collapses after repeated passes, so
// MergeEdges loops until a pass produces no merges.
func MergeEdges(edges []graph.Edge, usesOf map[graph.NodeID]int16) ([]graph.Edge, map[graph.NodeID]struct{}) {
	removedNodes := make(map[graph.NodeID]struct{})
	for {
		next, mergedAt := mergePass(edges, usesOf)
		if len(mergedAt) == 0 {
			return next, removedNodes
		}
		for node := range mergedAt {
			removedNodes[node] = struct{}{}
		}
		edges = next
	}
}

func mergePass(edges []graph.Edge, usesOf map[graph.NodeID]int16) ([]graph.Edge, map[graph.NodeID]struct{}) {
	incident := make(map[graph.NodeID][]int)
	var candidates []graph.NodeID
	for i, e := range edges {
		if usesOf[e.Source] == 4 && len(incident[e.Source]) == 0 {
			candidates = append(candidates, e.Source)
		}
		if usesOf[e.Target] == 4 && len(incident[e.Target]) == 0 {
			candidates = append(candidates, e.Target)
		}
		incident[e.Source] = append(incident[e.Source], i)
		incident[e.Target] = append(incident[e.Target], i)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	consumed := make(map[int]bool)
	replacement := make(map[int]graph.Edge)
	mergedAt := make(map[graph.NodeID]struct{})

	for _, node := range candidates {
		idxs := incident[node]
		if len(idxs) != 2 {
			continue
		}
		i, j := idxs[0], idxs[1]
		if consumed[i] || consumed[j] {
			continue
		}
		e1, e2 := edges[i], edges[j]
		if e1.ID == e2.ID {
			continue
		}
		if e1.Properties != e2.Properties {
			continue
		}
		if !tagsEqual(e1.Tags, e2.Tags) {
			continue
		}

		replacement[i] = mergeAt(node, e1, e2)
		consumed[i] = true
		consumed[j] = true
		mergedAt[node] = struct{}{}
	}

	if len(mergedAt) == 0 {
		return edges, mergedAt
	}

	result := make([]graph.Edge, 0, len(edges))
	for i, e := range edges {
		if ne, ok := replacement[i]; ok {
			result = append(result, ne)
			continue
		}
		if consumed[i] {
			continue
		}
		result = append(result, e)
	}
	return result, mergedAt
}

// mergeAt stitches e1 and e2 together at node n, reorienting each edge
// independently: e1 is reversed unless it already ends at n, e2 is reversed
// unless it already starts at n. The junction coordinate is kept once, so
// the result holds geometry and nodes of equal length with the merged edge's
// source and target at the ends.
func mergeAt(n graph.NodeID, e1, e2 graph.Edge) graph.Edge {
	e1 = ensureTarget(e1, n)
	e2 = ensureSource(e2, n)

	geometry := make([]geo.Coord, 0, len(e1.Geometry)+len(e2.Geometry)-1)
	geometry = append(geometry, e1.Geometry...)
	geometry = append(geometry, e2.Geometry[1:]...)

	nodes := make([]graph.NodeID, 0, len(e1.Nodes)+len(e2.Nodes)-1)
	nodes = append(nodes, e1.Nodes...)
	nodes = append(nodes, e2.Nodes[1:]...)

	return graph.Edge{
		ID:         e1.ID + "-" + e2.ID,
		OsmID:      e1.OsmID,
		Source:     e1.Source,
		Target:     e2.Target,
		Geometry:   geometry,
		Properties: e1.Properties,
		Nodes:      nodes,
		Tags:       e1.Tags,
	}
}

func ensureTarget(e graph.Edge, n graph.NodeID) graph.Edge {
	if e.Target == n {
		return e
	}
	return reverseEdge(e)
}

func ensureSource(e graph.Edge, n graph.NodeID) graph.Edge {
	if e.Source == n {
		return e
	}
	return reverseEdge(e)
}

func reverseEdge(e graph.Edge) graph.Edge {
	e.Source, e.Target = e.Target, e.Source

	geometry := make([]geo.Coord, len(e.Geometry))
	for i, c := range e.Geometry {
		geometry[len(geometry)-1-i] = c
	}
	e.Geometry = geometry

	nodes := make([]graph.NodeID, len(e.Nodes))
	for i, id := range e.Nodes {
		nodes[len(nodes)-1-i] = id
	}
	e.Nodes = nodes

	return e
}

func tagsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

package builder

import (
	"testing"

	"osmgraph/pkg/geo"
	"osmgraph/pkg/graph"
)

func straightProps() graph.EdgeProperties {
	var p graph.EdgeProperties
	p.Update("highway", "residential")
	p.Normalize()
	return p
}

func TestMergeEdgesStitchesAtDegreeTwoJunction(t *testing.T) {
	props := straightProps()
	edges := []graph.Edge{
		{
			ID: "100-0", OsmID: 100, Source: 1, Target: 2,
			Geometry:   []geo.Coord{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}},
			Nodes:      []graph.NodeID{1, 2},
			Properties: props,
			Tags:       map[string]string{},
		},
		{
			ID: "101-0", OsmID: 101, Source: 2, Target: 3,
			Geometry:   []geo.Coord{{Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}},
			Nodes:      []graph.NodeID{2, 3},
			Properties: props,
			Tags:       map[string]string{},
		},
	}
	usesOf := map[graph.NodeID]int16{1: 2, 2: 4, 3: 2}

	merged, removed := MergeEdges(edges, usesOf)
	if len(merged) != 1 {
		t.Fatalf("got %d edges after merge, want 1", len(merged))
	}
	e := merged[0]
	if e.Source != 1 || e.Target != 3 {
		t.Errorf("merged edge source/target = %d/%d, want 1/3", e.Source, e.Target)
	}
	if len(e.Geometry) != 3 {
		t.Errorf("merged geometry len = %d, want 3 (shared coordinate not duplicated)", len(e.Geometry))
	}
	if _, ok := removed[2]; !ok {
		t.Errorf("node 2 should be reported as removed")
	}
}

func TestMergeEdgesSkipsWhenPropertiesDiffer(t *testing.T) {
	residential := straightProps()
	var motorway graph.EdgeProperties
	motorway.Update("highway", "motorway")
	motorway.Normalize()

	edges := []graph.Edge{
		{ID: "100-0", Source: 1, Target: 2, Geometry: []geo.Coord{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}, Nodes: []graph.NodeID{1, 2}, Properties: residential, Tags: map[string]string{}},
		{ID: "101-0", Source: 2, Target: 3, Geometry: []geo.Coord{{Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}}, Nodes: []graph.NodeID{2, 3}, Properties: motorway, Tags: map[string]string{}},
	}
	usesOf := map[graph.NodeID]int16{1: 2, 2: 4, 3: 2}

	merged, removed := MergeEdges(edges, usesOf)
	if len(merged) != 2 {
		t.Fatalf("got %d edges, want 2 (no merge across differing properties)", len(merged))
	}
	if len(removed) != 0 {
		t.Errorf("expected no removed nodes, got %v", removed)
	}
}

func TestMergeEdgesSkipsWhenUsesNotFour(t *testing.T) {
	props := straightProps()
	edges := []graph.Edge{
		{ID: "100-0", Source: 1, Target: 2, Geometry: []geo.Coord{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}, Nodes: []graph.NodeID{1, 2}, Properties: props, Tags: map[string]string{}},
		{ID: "101-0", Source: 2, Target: 3, Geometry: []geo.Coord{{Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}}, Nodes: []graph.NodeID{2, 3}, Properties: props, Tags: map[string]string{}},
	}
	// Uses == 3 means node 2 is not the terminus of exactly two ways.
	usesOf := map[graph.NodeID]int16{1: 2, 2: 3, 3: 2}

	merged, _ := MergeEdges(edges, usesOf)
	if len(merged) != 2 {
		t.Fatalf("got %d edges, want 2 (no merge when Uses != 4)", len(merged))
	}
}

func TestMergeEdgesFixedPointChain(t *testing.T) {
	props := straightProps()
	edges := []graph.Edge{
		{ID: "100-0", Source: 1, Target: 2, Geometry: []geo.Coord{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}, Nodes: []graph.NodeID{1, 2}, Properties: props, Tags: map[string]string{}},
		{ID: "101-0", Source: 2, Target: 3, Geometry: []geo.Coord{{Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}}, Nodes: []graph.NodeID{2, 3}, Properties: props, Tags: map[string]string{}},
		{ID: "102-0", Source: 3, Target: 4, Geometry: []geo.Coord{{Lon: 2, Lat: 0}, {Lon: 3, Lat: 0}}, Nodes: []graph.NodeID{3, 4}, Properties: props, Tags: map[string]string{}},
	}
	usesOf := map[graph.NodeID]int16{1: 2, 2: 4, 3: 4, 4: 2}

	merged, removed := MergeEdges(edges, usesOf)
	if len(merged) != 1 {
		t.Fatalf("got %d edges, want 1 (whole chain collapses)", len(merged))
	}
	if merged[0].Source != 1 || merged[0].Target != 4 {
		t.Errorf("merged chain = %d -> %d, want 1 -> 4", merged[0].Source, merged[0].Target)
	}
	if len(removed) != 2 {
		t.Errorf("got %d removed nodes, want 2", len(removed))
	}
}

func TestMergeEdgesReversedOrientation(t *testing.T) {
	props := straightProps()
	edges := []graph.Edge{
		// Both edges point away from node 2: this exercises the
		// independent-reversal branch, not the simple append case.
		{ID: "100-0", Source: 2, Target: 1, Geometry: []geo.Coord{{Lon: 1, Lat: 0}, {Lon: 0, Lat: 0}}, Nodes: []graph.NodeID{2, 1}, Properties: props, Tags: map[string]string{}},
		{ID: "101-0", Source: 2, Target: 3, Geometry: []geo.Coord{{Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}}, Nodes: []graph.NodeID{2, 3}, Properties: props, Tags: map[string]string{}},
	}
	usesOf := map[graph.NodeID]int16{1: 2, 2: 4, 3: 2}

	merged, _ := MergeEdges(edges, usesOf)
	if len(merged) != 1 {
		t.Fatalf("got %d edges, want 1", len(merged))
	}
	e := merged[0]
	if e.Source != 1 || e.Target != 3 {
		t.Errorf("merged edge source/target = %d/%d, want 1/3", e.Source, e.Target)
	}
	if len(e.Geometry) != 3 {
		t.Errorf("merged geometry len = %d, want 3", len(e.Geometry))
	}
}

// Package osmgraph turns OpenStreetMap PBF extracts (or a pair of CSV node/
// way tiles) into a routable edge-split graph: way filtering, node-usage
// counting, splitting at junctions, and optional fixed-point edge merging.
// The public surface is a single fluent Reader.
package osmgraph

import (
	"context"
	"fmt"

	"osmgraph/internal/builder"
	"osmgraph/internal/csvsource"
	"osmgraph/internal/osmsource"
	"osmgraph/pkg/graph"
)

// Reader configures and runs a graph build. The zero value is not usable;
// construct one with NewReader.
type Reader struct {
	cfg *graph.Config
}

// NewReader returns a Reader with no filters: every accessible way is kept,
// no tags are retained on edges, and merging is disabled.
func NewReader() *Reader {
	return &Reader{cfg: graph.NewConfig()}
}

// Reject drops any way carrying the exact tag (key, value), regardless of
// its other tags or accessibility. A value of "*" matches any value for key.
func (r *Reader) Reject(key, value string) *Reader {
	r.cfg.Reject(key, value)
	return r
}

// Require adds an alternative acceptance rule: a way is kept only if it
// satisfies at least one Require call's full set of key/value pairs (pass
// value "" to accept any value for that key). Multiple Require calls are
// OR'd together; with none registered, every accessible way passes.
func (r *Reader) Require(pairs ...[2]string) *Reader {
	r.cfg.Require(pairs...)
	return r
}

// ReadTag marks a tag key to be retained on the Tags map of every edge
// derived from a way that carries it.
func (r *Reader) ReadTag(key string) *Reader {
	r.cfg.ReadTag(key)
	return r
}

// MergeWays enables the fixed-point edge merge pass after splitting:
// colinear edge fragments that share a degree-2 junction, equal properties,
// and equal retained tags are stitched back into one edge.
func (r *Reader) MergeWays() *Reader {
	r.cfg.MergeWays()
	return r
}

// Read builds a graph from the PBF file at path. Ways referencing a node id
// missing from the file (an inconsistent extract) make Read fail; use
// ReadCSV's adapter for lenient handling of that case.
func (r *Reader) Read(ctx context.Context, path string) ([]graph.Node, []graph.Edge, error) {
	ways, nodes, err := osmsource.Read(ctx, path, r.cfg)
	if err != nil {
		return nil, nil, err
	}

	stage := &builder.Staging{Nodes: nodes, Ways: ways}
	if err := stage.CountUses(func(way *graph.Way, nodeID graph.NodeID) bool {
		return false
	}); err != nil {
		return nil, nil, fmt.Errorf("osmgraph: %w", err)
	}

	return r.finish(stage)
}

// ReadCSV builds a graph from a pair of CSV tiles (nodes then ways).
// Unlike Read, a way referencing a missing
// node is dropped rather than treated as fatal; csvsource.Read reports how
// many ways and nodes were skipped via the returned Stats.
func (r *Reader) ReadCSV(nodesPath, waysPath string) ([]graph.Node, []graph.Edge, csvsource.Stats, error) {
	stage, stats, err := csvsource.Read(nodesPath, waysPath)
	if err != nil {
		return nil, nil, stats, err
	}

	nodes, edges, err := r.finish(stage)
	return nodes, edges, stats, err
}

func (r *Reader) finish(stage *builder.Staging) ([]graph.Node, []graph.Edge, error) {
	edges := stage.SplitWays()

	var removed map[graph.NodeID]struct{}
	if r.cfg.MergeEnabled() {
		usesOf := make(map[graph.NodeID]int16, len(stage.Nodes))
		for id, n := range stage.Nodes {
			usesOf[id] = n.Uses
		}
		edges, removed = builder.MergeEdges(edges, usesOf)
	}

	nodes := stage.CollectNodes(removed)
	return nodes, edges, nil
}

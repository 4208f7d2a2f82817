package graph

import (
	"fmt"

	"github.com/paulmach/osm"

	"osmgraph/pkg/geo"
)

// NodeID and WayID are the OSM identifiers, preserved verbatim: they may be
// negative or very large and are never renumbered.
type NodeID = osm.NodeID
type WayID = osm.WayID

// Node is a retained intersection or dead-end: a point touched by more than
// one way, or the terminus of at least one way.
type Node struct {
	ID    NodeID
	Coord geo.Coord
	Uses  int16
}

// Way is the internal, pre-split representation of an accessible OSM way.
// It is discarded once its edges have been generated.
type Way struct {
	ID         WayID
	Nodes      []NodeID
	Properties EdgeProperties
	Tags       map[string]string
}

// Edge is a topological arc between two retained nodes: at most one edge
// connects any pair of adjacent intersections.
type Edge struct {
	ID         string
	OsmID      WayID
	Source     NodeID
	Target     NodeID
	Geometry   []geo.Coord
	Properties EdgeProperties
	Nodes      []NodeID
	Tags       map[string]string
}

// SplitID formats the deterministic id of the k-th edge cut from way w.
func SplitID(way WayID, k int) string {
	return fmt.Sprintf("%d-%d", way, k)
}

// Length returns the edge's length in meters, the sum of its segment
// haversine distances.
func (e Edge) Length() float64 {
	return geo.LineLength(e.Geometry)
}

// LengthUntil returns the length in meters from the edge's source up to (and
// including) the given node. Returns 0 if the node is not found, and 0 for
// the source itself.
func (e Edge) LengthUntil(node NodeID) float64 {
	var length float64
	for i := 1; i < len(e.Nodes); i++ {
		length += geo.Haversine(e.Geometry[i-1], e.Geometry[i])
		if e.Nodes[i] == node {
			return length
		}
	}
	return 0
}

// WKT renders the edge's geometry as a WKT LINESTRING.
func (e Edge) WKT() string {
	return geo.WKT(e.Geometry)
}

// Coordinates renders the edge's geometry as [lon, lat] pairs, the shape
// GeoJSON expects.
func (e Edge) Coordinates() [][]float64 {
	coords := make([][]float64, len(e.Geometry))
	for i, c := range e.Geometry {
		coords[i] = []float64{c.Lon, c.Lat}
	}
	return coords
}

// Package output writes the final (Nodes, Edges) tuple to disk: a pair of
// CSV files, or a GeoJSON FeatureCollection.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"osmgraph/pkg/graph"
)

// WriteNodesCSV writes nodes.csv: header "id,lon,lat", one row per node.
func WriteNodesCSV(path string, nodes []graph.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "lon", "lat"}); err != nil {
		return fmt.Errorf("output: write header to %s: %w", path, err)
	}
	for _, n := range nodes {
		row := []string{
			strconv.FormatInt(int64(n.ID), 10),
			strconv.FormatFloat(n.Coord.Lon, 'f', -1, 64),
			strconv.FormatFloat(n.Coord.Lat, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("output: write row to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteEdgesCSV writes edges.csv: header
// "id,osm_id,source,target,length,foot,car_forward,car_backward,
// bike_forward,bike_backward,train,wkt", one row per edge.
func WriteEdgesCSV(path string, edges []graph.Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"id", "osm_id", "source", "target", "length",
		"foot", "car_forward", "car_backward", "bike_forward", "bike_backward", "train",
		"wkt",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("output: write header to %s: %w", path, err)
	}
	for _, e := range edges {
		row := []string{
			e.ID,
			strconv.FormatInt(int64(e.OsmID), 10),
			strconv.FormatInt(int64(e.Source), 10),
			strconv.FormatInt(int64(e.Target), 10),
			strconv.FormatFloat(e.Length(), 'f', -1, 64),
			e.Properties.Foot.String(),
			e.Properties.CarForward.String(),
			e.Properties.CarBackward.String(),
			e.Properties.BikeForward.String(),
			e.Properties.BikeBackward.String(),
			e.Properties.Train.String(),
			e.WKT(),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("output: write row to %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

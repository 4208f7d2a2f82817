package output

import (
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"osmgraph/pkg/graph"
)

// WriteGeoJSON writes path (conventionally data.geojson) as a single
// FeatureCollection of LineString features, one per edge. Each feature's
// properties mirror the edge CSV columns minus wkt, since the geometry
// itself carries the coordinates. The file ends with a trailing newline.
func WriteGeoJSON(path string, edges []graph.Edge) error {
	fc := geojson.NewFeatureCollection()
	for _, e := range edges {
		ls := make(orb.LineString, len(e.Geometry))
		for i, c := range e.Geometry {
			ls[i] = orb.Point{c.Lon, c.Lat}
		}

		f := geojson.NewFeature(ls)
		f.Properties = geojson.Properties{
			"id":            e.ID,
			"osm_id":        strconv.FormatInt(int64(e.OsmID), 10),
			"source":        strconv.FormatInt(int64(e.Source), 10),
			"target":        strconv.FormatInt(int64(e.Target), 10),
			"length":        e.Length(),
			"foot":          e.Properties.Foot.String(),
			"car_forward":   e.Properties.CarForward.String(),
			"car_backward":  e.Properties.CarBackward.String(),
			"bike_forward":  e.Properties.BikeForward.String(),
			"bike_backward": e.Properties.BikeBackward.String(),
			"train":         e.Properties.Train.String(),
		}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("output: marshal geojson: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

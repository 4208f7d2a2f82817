package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"osmgraph"
	"osmgraph/internal/csvsource"
	"osmgraph/pkg/graph"
	"osmgraph/pkg/output"
)

type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }
func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	nodesFile := flag.String("nodes-file", "nodes.csv", "Output path for the nodes CSV")
	edgesFile := flag.String("edges-file", "edges.csv", "Output path for the edges CSV")
	geojsonFile := flag.String("geojson-file", "data.geojson", "Output path for the GeoJSON FeatureCollection")
	format := flag.String("format", "csv", "Output format: csv or geojson")
	mergeEdges := flag.Bool("merge-edges", false, "Run the fixed-point edge merge pass after splitting")
	csvNodes := flag.String("csv-nodes", "", "Read from a nodes CSV tile instead of a PBF file (requires --csv-ways)")
	csvWays := flag.String("csv-ways", "", "Read from a ways CSV tile instead of a PBF file (requires --csv-nodes)")

	var rejects, requires, readTags repeatedFlag
	flag.Var(&rejects, "reject", "Drop ways carrying tag key=value (repeatable)")
	flag.Var(&requires, "require", "Keep only ways carrying tag key=value, or key= for any value (repeatable, OR'd)")
	flag.Var(&readTags, "read-tag", "Retain tag key on output edges (repeatable)")

	flag.Parse()

	usingCSV := *csvNodes != "" || *csvWays != ""
	if !usingCSV && flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: graphbuild <source.osm.pbf> [--nodes-file PATH] [--edges-file PATH] [--merge-edges] [--format csv|geojson]")
		fmt.Fprintln(os.Stderr, "   or: graphbuild --csv-nodes nodes.csv --csv-ways ways.csv [...]")
		os.Exit(1)
	}
	if (*csvNodes == "") != (*csvWays == "") {
		log.Fatal("--csv-nodes and --csv-ways must be given together")
	}

	reader := osmgraph.NewReader()
	for _, kv := range rejects {
		k, v := splitKV(kv)
		reader.Reject(k, v)
	}
	for _, kv := range requires {
		k, v := splitKV(kv)
		reader.Require([2]string{k, v})
	}
	for _, k := range readTags {
		reader.ReadTag(k)
	}
	if *mergeEdges {
		reader.MergeWays()
	}

	start := time.Now()

	var (
		nodes []graph.Node
		edges []graph.Edge
		err   error
	)
	if usingCSV {
		var stats csvsource.Stats
		nodes, edges, stats, err = reader.ReadCSV(*csvNodes, *csvWays)
		if err == nil {
			log.Printf("csv ingest: dropped %d ways (%d missing node references)", stats.WaysDropped, stats.MissingNodeRef)
		}
	} else {
		nodes, edges, err = reader.Read(context.Background(), flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("building graph: %v", err)
	}
	log.Printf("Built %d nodes, %d edges in %s", len(nodes), len(edges), time.Since(start).Round(time.Millisecond))

	switch *format {
	case "csv":
		if err := output.WriteNodesCSV(*nodesFile, nodes); err != nil {
			log.Fatalf("writing nodes CSV: %v", err)
		}
		if err := output.WriteEdgesCSV(*edgesFile, edges); err != nil {
			log.Fatalf("writing edges CSV: %v", err)
		}
		log.Printf("Wrote %s and %s", *nodesFile, *edgesFile)
	case "geojson":
		if err := output.WriteGeoJSON(*geojsonFile, edges); err != nil {
			log.Fatalf("writing geojson: %v", err)
		}
		log.Printf("Wrote %s", *geojsonFile)
	default:
		log.Fatalf("unknown --format %q: expected csv or geojson", *format)
	}
}

// splitKV splits "key=value" into its parts; a bare "key" (no '=') yields an
// empty value, which Reader.Require treats as "any value for this key".
func splitKV(s string) (key, value string) {
	k, v, _ := strings.Cut(s, "=")
	return k, v
}

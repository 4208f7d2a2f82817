// Package csvsource implements the alternate CSV tile ingest path: a pair of
// pre-digested CSV files (nodes, ways) feeding the same staging structure the
// PBF reader populates. No tag categorization runs here — the CSVs are
// assumed to already carry whatever accessibility the producing run computed —
// so every way defaults to all-Forbidden properties after Normalize.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"osmgraph/internal/builder"
	"osmgraph/pkg/geo"
	"osmgraph/pkg/graph"
)

// Stats reports the degraded-mode bookkeeping of a CSV ingest: ways dropped
// because they referenced a node outside the tile set, and malformed rows
// skipped while reading.
type Stats struct {
	WaysDropped    int
	MissingNodeRef int
	RowsSkipped    int
}

// Read loads nodesPath and waysPath into a Staging value. CSV tiles are often
// partial spatial extracts, so a way referencing a node id absent from
// nodesPath is dropped and logged rather than treated as fatal. Malformed
// rows are skipped per-row with a log line; only unreadable files and broken
// headers abort the ingest.
func Read(nodesPath, waysPath string) (*builder.Staging, Stats, error) {
	var stats Stats

	stage := builder.NewStaging()
	if err := readNodes(nodesPath, stage, &stats); err != nil {
		return nil, stats, fmt.Errorf("csvsource: %w", err)
	}
	if err := readWays(waysPath, stage, &stats); err != nil {
		return nil, stats, fmt.Errorf("csvsource: %w", err)
	}

	total := len(stage.Ways)
	err := stage.CountUses(func(way *graph.Way, nodeID graph.NodeID) bool {
		stats.MissingNodeRef++
		log.Printf("csvsource: way %d references missing node %d, dropping way", way.ID, nodeID)
		return true
	})
	if err != nil {
		return nil, stats, fmt.Errorf("csvsource: %w", err)
	}
	stats.WaysDropped = total - len(stage.Ways)
	if stats.WaysDropped > 0 {
		log.Printf("csvsource: dropped %d of %d ways (%.1f%%) referencing nodes outside the tile set",
			stats.WaysDropped, total, 100*float64(stats.WaysDropped)/float64(total))
	}

	return stage, stats, nil
}

// readRow returns the next row, skipping rows the csv parser cannot decode.
// A nil row with a nil error signals EOF.
func readRow(r *csv.Reader, path string, stats *Stats) ([]string, error) {
	for {
		row, err := r.Read()
		if err == nil {
			return row, nil
		}
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			log.Printf("csvsource: %s: skipping malformed row: %v", path, err)
			stats.RowsSkipped++
			continue
		}
		return nil, fmt.Errorf("read row of %s: %w", path, err)
	}
}

func readNodes(path string, stage *builder.Staging, stats *Stats) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	for {
		row, err := readRow(r, path, stats)
		if err != nil {
			return err
		}
		if row == nil {
			break
		}
		if len(row) < 3 {
			log.Printf("csvsource: %s: skipping short row %v", path, row)
			stats.RowsSkipped++
			continue
		}

		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			log.Printf("csvsource: %s: skipping row with bad node id %q", path, row[0])
			stats.RowsSkipped++
			continue
		}
		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			log.Printf("csvsource: %s: skipping node %d with bad lat %q", path, id, row[1])
			stats.RowsSkipped++
			continue
		}
		lon, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			log.Printf("csvsource: %s: skipping node %d with bad lon %q", path, id, row[2])
			stats.RowsSkipped++
			continue
		}

		nodeID := graph.NodeID(id)
		stage.Nodes[nodeID] = &graph.Node{
			ID:    nodeID,
			Coord: geo.Coord{Lon: lon, Lat: lat},
		}
	}
	return nil
}

func readWays(path string, stage *builder.Staging, stats *Stats) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	for {
		row, err := readRow(r, path, stats)
		if err != nil {
			return err
		}
		if row == nil {
			break
		}
		if len(row) < 2 {
			log.Printf("csvsource: %s: skipping short row %v", path, row)
			stats.RowsSkipped++
			continue
		}

		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			log.Printf("csvsource: %s: skipping row with bad way id %q", path, row[0])
			stats.RowsSkipped++
			continue
		}

		nodeIDs, err := parseNodeList(row[1])
		if err != nil {
			log.Printf("csvsource: %s: skipping way %d: %v", path, id, err)
			stats.RowsSkipped++
			continue
		}

		var props graph.EdgeProperties
		props.Normalize()

		stage.Ways = append(stage.Ways, &graph.Way{
			ID:         graph.WayID(id),
			Nodes:      nodeIDs,
			Properties: props,
			Tags:       map[string]string{},
		})
	}
	return nil
}

// parseNodeList parses the bracketed, comma-space separated node id list
// "[n1, n2, …]" carried in the ways CSV.
func parseNodeList(field string) ([]graph.NodeID, error) {
	field = strings.TrimSpace(field)
	field = strings.TrimPrefix(field, "[")
	field = strings.TrimSuffix(field, "]")
	if field == "" {
		return nil, nil
	}

	parts := strings.Split(field, ", ")
	ids := make([]graph.NodeID, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad node id %q in list: %w", p, err)
		}
		ids[i] = graph.NodeID(v)
	}
	return ids, nil
}

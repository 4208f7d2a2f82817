package csvsource

import (
	"os"
	"path/filepath"
	"testing"

	"osmgraph/pkg/graph"
)

func TestParseNodeList(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []graph.NodeID
	}{
		{name: "single", field: "[1]", want: []graph.NodeID{1}},
		{name: "multiple", field: "[1, 2, 3]", want: []graph.NodeID{1, 2, 3}},
		{name: "empty", field: "[]", want: nil},
		{name: "negative ids", field: "[-5, 7]", want: []graph.NodeID{-5, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNodeList(tt.field)
			if err != nil {
				t.Fatalf("parseNodeList(%q): %v", tt.field, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseNodeList(%q) = %v, want %v", tt.field, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseNodeList(%q)[%d] = %d, want %d", tt.field, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseNodeListMalformed(t *testing.T) {
	if _, err := parseNodeList("[1, x, 3]"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadDropsWaysWithMissingNodes(t *testing.T) {
	dir := t.TempDir()
	nodesPath := writeCSV(t, dir, "nodes.csv", "id,lat,lon\n1,1.0,103.0\n2,1.1,103.1\n")
	waysPath := writeCSV(t, dir, "ways.csv", "id,nodes\n100,\"[1, 2]\"\n101,\"[1, 999]\"\n")

	stage, stats, err := Read(nodesPath, waysPath)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(stage.Ways) != 1 {
		t.Fatalf("got %d surviving ways, want 1", len(stage.Ways))
	}
	if stage.Ways[0].ID != 100 {
		t.Errorf("surviving way = %d, want 100", stage.Ways[0].ID)
	}
	if stats.WaysDropped != 1 {
		t.Errorf("stats.WaysDropped = %d, want 1", stats.WaysDropped)
	}
}

func TestReadSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	nodesPath := writeCSV(t, dir, "nodes.csv", "id,lat,lon\n1,1.0,103.0\nbogus,x,y\n2,1.1,103.1\n")
	waysPath := writeCSV(t, dir, "ways.csv", "id,nodes\nnotanid,\"[1, 2]\"\n100,\"[1, 2]\"\n")

	stage, stats, err := Read(nodesPath, waysPath)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(stage.Nodes) != 2 {
		t.Errorf("got %d nodes, want 2 (malformed row skipped)", len(stage.Nodes))
	}
	if len(stage.Ways) != 1 {
		t.Errorf("got %d ways, want 1 (malformed row skipped)", len(stage.Ways))
	}
	if stats.RowsSkipped != 2 {
		t.Errorf("stats.RowsSkipped = %d, want 2", stats.RowsSkipped)
	}
}

func TestReadDefaultsPropertiesToForbidden(t *testing.T) {
	dir := t.TempDir()
	nodesPath := writeCSV(t, dir, "nodes.csv", "id,lat,lon\n1,1.0,103.0\n2,1.1,103.1\n")
	waysPath := writeCSV(t, dir, "ways.csv", "id,nodes\n100,\"[1, 2]\"\n")

	stage, _, err := Read(nodesPath, waysPath)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(stage.Ways) != 1 {
		t.Fatalf("got %d ways, want 1", len(stage.Ways))
	}
	p := stage.Ways[0].Properties
	if p.Accessible() {
		t.Error("untagged CSV way should default to fully inaccessible properties")
	}
}

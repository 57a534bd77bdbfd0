package usecase

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
)

func TestTestRunWritesCSV(t *testing.T) {
	t.Parallel()

	source := &fakeBillSource{
		content:    map[string]billContent{"1": availableContent()},
		cosponsors: "The bill (H.R 1) was introduced on 1/5/2025.",
	}
	generator := &fakeGenerator{releases: map[string]domain.Release{"1": okRelease(1)}}

	outPath := filepath.Join(t.TempDir(), "test_outputs.csv")
	run := NewTestRun(source, generator, discardLogger())
	if err := run.Run(context.Background(), 1, 3, outPath); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	file, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	// Header plus [1, 3) for the Senate then the House.
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}

	header := []string{"FileName", "Headline", "Press release", "Cosponsors"}
	for i, want := range header {
		if records[0][i] != want {
			t.Fatalf("unexpected header: %v", records[0])
		}
	}

	senateRow := records[1]
	if senateRow[0] != "$H billSumh-250105-hr1" {
		t.Fatalf("unexpected filename: %q", senateRow[0])
	}
	if !strings.Contains(senateRow[2], "Primary source of information: "+domain.Senate.BillURL(1)) {
		t.Fatalf("missing source attribution: %q", senateRow[2])
	}
	// The intro block carries the House marker, so the Senate pass cannot
	// derive an intro date and leaves the cosponsor column empty.
	if senateRow[3] != "" {
		t.Fatalf("unexpected senate cosponsors: %q", senateRow[3])
	}

	houseRow := records[3]
	if !strings.Contains(houseRow[2], "Primary source of information: "+domain.House.BillURL(1)) {
		t.Fatalf("missing source attribution: %q", houseRow[2])
	}
	if houseRow[3] != "The bill (H.R 1) was introduced on 1/5/2025." {
		t.Fatalf("unexpected house cosponsors: %q", houseRow[3])
	}

	// Bill 2 has no content in either chamber: empty placeholder rows.
	for _, row := range [][]string{records[2], records[4]} {
		for _, cell := range row {
			if cell != "" {
				t.Fatalf("expected empty row, got %v", row)
			}
		}
	}
}

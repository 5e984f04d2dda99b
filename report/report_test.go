package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestTimestamped(t *testing.T) {
	nowFunc = func() time.Time {
		return time.Date(2025, 11, 30, 14, 5, 0, 0, time.UTC)
	}
	t.Cleanup(func() { nowFunc = time.Now })

	got := Timestamped("exports", "artist_brand_matches", "csv")
	want := filepath.Join("exports", "artist_brand_matches_20251130_1405.csv")
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestTable(t *testing.T) {
	out := Table(
		[]string{"Artist", "Brand", "Score"},
		[][]string{{"Los Tigres", "Mega Seltzer", "87.5"}},
	)
	for _, want := range []string{"Artist", "Los Tigres", "87.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestKeyValues(t *testing.T) {
	out := KeyValues([][2]string{
		{"Total contacts", "1234"},
		{"With email", "987 (80.0%)"},
	})
	if !strings.Contains(out, "Total contacts  1234") {
		t.Errorf("unexpected key-value alignment:\n%s", out)
	}
}

// TestCSVRoundTrip checks that an exported CSV preserves row count and
// score columns when read back.
func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.csv")
	headers := []string{"artist", "brand", "score", "tier"}
	rows := [][]string{
		{"Los Tigres", "Mega Seltzer", "87.50", "Exceptional"},
		{"Los Tigres", "Sip Soda", "61.20", "Good"},
		{"DJ Nova", "Mega Films", "54.00", "Fair"},
	}
	if err := WriteCSV(path, headers, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}

	if got, want := len(records), len(rows)+1; got != want {
		t.Fatalf("got %d records, want %d", got, want)
	}
	if diff := cmp.Diff(headers, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rows, records[1:]); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSVCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "matches.csv")
	if err := WriteCSV(path, []string{"a"}, nil); err == nil {
		t.Error("expected error writing to a missing directory")
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.xlsx")
	sheets := []Sheet{
		{
			Name:    "All_Matches",
			Headers: []string{"artist", "brand", "score"},
			Rows: [][]any{
				{"Los Tigres", "Mega Seltzer", 87.5},
				{"DJ Nova", "Mega Films", 54.0},
			},
		},
		{
			Name:    "Summary_Stats",
			Headers: []string{"metric", "value"},
			Rows:    [][]any{{"total_matches", 2}},
		},
	}
	if err := WriteExcel(path, sheets); err != nil {
		t.Fatalf("WriteExcel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"All_Matches", "Summary_Stats"}, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}
	rows, err := f.GetRows("All_Matches")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(rows), 3; got != want {
		t.Errorf("got %d rows, want %d", got, want)
	}
	if got, want := rows[1][0], "Los Tigres"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	if err := WriteText(path, "CUSTOMER LOOKALIKE SUMMARY\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "CUSTOMER LOOKALIKE") {
		t.Errorf("unexpected text content %q", b)
	}
}

package importer

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WardView/internal/export"
	"github.com/piwi3910/WardView/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Bed,Status\nicu-bed-1,available\nicu-bed-2,cleaning\n", ','},
		{"semicolon", "Bed;Status\nicu-bed-1;available\nicu-bed-2;cleaning\n", ';'},
		{"tab", "Bed\tStatus\nicu-bed-1\tavailable\nicu-bed-2\tcleaning\n", '\t'},
		{"pipe", "Bed|Status\nicu-bed-1|available\nicu-bed-2|cleaning\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_CensusHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Bed", "Floor", "Room", "Status", "Patient"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Bed != 0 || mapping.Status != 3 {
		t.Errorf("got bed %d status %d, want 0 and 3", mapping.Bed, mapping.Status)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"icu-bed-1", "occupied"})
	if isHeader {
		t.Error("data row detected as header")
	}
	if mapping.Bed != 0 || mapping.Status != 1 {
		t.Errorf("positional mapping: got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader(t *testing.T) {
	data := "Status,Bed\nAvailable,icu-bed-1\n CLEANING ,icu-bed-2\n\noccupied,er-bed-3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []StatusUpdate{
		{"icu-bed-1", model.BedAvailable},
		{"icu-bed-2", model.BedCleaning},
		{"er-bed-3", model.BedOccupied},
	}
	if len(result.Updates) != len(want) {
		t.Fatalf("got %d updates, want %d", len(result.Updates), len(want))
	}
	for i := range want {
		if result.Updates[i] != want[i] {
			t.Errorf("update %d: got %+v, want %+v", i, result.Updates[i], want[i])
		}
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Bed,Status\nicu-bed-1,broken\n,available\nicu-bed-3\nicu-bed-4,cleaning\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 row errors, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Line 2:") {
		t.Errorf("error should name the line: %q", result.Errors[0])
	}
	if len(result.Updates) != 1 || result.Updates[0].BedID != "icu-bed-4" {
		t.Errorf("valid rows should still import: %+v", result.Updates)
	}
}

func TestImportCSVFromReader_DuplicateBedOverrides(t *testing.T) {
	data := "Bed,Status\nicu-bed-1,available\nicu-bed-1,cleaning\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Updates) != 1 || result.Updates[0].Status != model.BedCleaning {
		t.Fatalf("got %+v", result.Updates)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected a duplicate warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Bed,Room\nicu-bed-1,ICU-101\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Status") {
		t.Fatalf("expected missing Status column error, got %v", result.Errors)
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beds.csv")
	if err := os.WriteFile(path, []byte("Bed;Status\nicu-bed-1;cleaning\nicu-bed-2;available\n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Updates) != 2 {
		t.Errorf("got %d updates, want 2", len(result.Updates))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_EmptyAndMissing(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := ImportCSV(empty); len(r.Errors) != 1 {
		t.Errorf("empty file: got %v", r.Errors)
	}
	if r := ImportCSV(filepath.Join(t.TempDir(), "nope.csv")); len(r.Errors) != 1 {
		t.Errorf("missing file: got %v", r.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beds.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_FirstSheet(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Bed ID", "State"},
		{"surgery-bed-1", "Occupied"},
		{"surgery-bed-2", "Available"},
	})
	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Updates) != 2 || result.Updates[0].Status != model.BedOccupied {
		t.Errorf("got %+v", result.Updates)
	}
}

func TestImportExcel_CensusRoundTrip(t *testing.T) {
	h := model.Generate(rand.New(rand.NewSource(11)))
	path := filepath.Join(t.TempDir(), "census.xlsx")
	if err := export.ExportCensusXLSX(path, h); err != nil {
		t.Fatalf("export: %v", err)
	}

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Updates) != len(h.Beds) {
		t.Fatalf("got %d updates, want one per bed (%d)", len(result.Updates), len(h.Beds))
	}
	for i, u := range result.Updates {
		if u.BedID != h.Beds[i].ID || u.Status != h.Beds[i].Status {
			t.Errorf("update %d: got %+v, want %s %s", i, u, h.Beds[i].ID, h.Beds[i].Status)
		}
	}
}

func TestImportExcel_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := ImportExcel(path); len(r.Errors) != 1 {
		t.Errorf("got %v", r.Errors)
	}
}

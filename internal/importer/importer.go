// Package importer reads bulk bed status updates from CSV and Excel files,
// such as a census spreadsheet edited by ward staff. Delimiters and column
// positions are detected automatically.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WardView/internal/model"
)

// StatusUpdate sets the status of one bed.
type StatusUpdate struct {
	BedID  string
	Status model.BedStatus
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Updates  []StatusUpdate
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Bed    int
	Status int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"bed":    {"bed", "bed id", "bed_id", "id"},
	"status": {"status", "bed status", "state"},
}

// DetectCSVDelimiter determines the most likely delimiter among comma,
// semicolon, tab and pipe: the one giving the most rows with the same
// column count as the first row wins.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		r := csv.NewReader(bytes.NewReader(data))
		r.Comma = delim
		r.LazyQuotes = true
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == len(records[0]) {
				score++
			}
		}
		if weighted := score*10 + len(records[0]); weighted > bestScore {
			best, bestScore = delim, weighted
		}
	}
	return best
}

// DetectColumns examines a header row. It returns the mapping and true if
// the row is a header, or the positional mapping (bed, status) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Bed: -1, Status: -1}
	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch {
				case role == "bed" && mapping.Bed == -1:
					mapping.Bed = i
				case role == "status" && mapping.Status == -1:
					mapping.Status = i
				}
			}
		}
	}
	if !isHeader {
		return ColumnMapping{Bed: 0, Status: 1}, false
	}
	return mapping, true
}

// ImportCSV reads status updates from a CSV file.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}
	result := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader reads status updates from CSV with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	r := csv.NewReader(reader)
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line")
}

// ImportExcel reads status updates from a workbook. The "Beds" sheet of an
// exported census is used when present, otherwise the first sheet.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if s == "Beds" {
			sheet = s
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	var result ImportResult
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		var missing []string
		if mapping.Bed == -1 {
			missing = append(missing, "Bed")
		}
		if mapping.Status == -1 {
			missing = append(missing, "Status")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	seen := make(map[string]int)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		line := i + 1
		if isBlank(row) {
			continue
		}
		if mapping.Bed >= len(row) || mapping.Status >= len(row) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %d: not enough columns", rowPrefix, line))
			continue
		}
		id := strings.TrimSpace(row[mapping.Bed])
		if id == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %d: missing bed id", rowPrefix, line))
			continue
		}
		status, err := model.ParseBedStatus(normalizeStatus(row[mapping.Status]))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %d: %v", rowPrefix, line, err))
			continue
		}
		if prev, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s %d: bed %s repeated, overriding line %d", rowPrefix, line, id, prev))
			for j := range result.Updates {
				if result.Updates[j].BedID == id {
					result.Updates[j].Status = status
				}
			}
			seen[id] = line
			continue
		}
		seen[id] = line
		result.Updates = append(result.Updates, StatusUpdate{BedID: id, Status: status})
	}

	if len(result.Updates) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

// normalizeStatus lowercases s so "AVAILABLE" and " Cleaning " parse.
func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

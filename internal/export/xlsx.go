package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/scene"
)

// Sheet names of the census workbook, in order.
const (
	SheetSummary  = "Summary"
	SheetBeds     = "Beds"
	SheetPatients = "Patients"
	SheetStaff    = "Staff"
)

// ExportCensusXLSX writes the hospital to a workbook with a summary sheet
// and one sheet each for beds, patients and staff. Bed status cells are
// filled with the status color.
func ExportCensusXLSX(path string, h model.Hospital) error {
	if len(h.Beds) == 0 {
		return ErrEmptyHospital
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetBeds, SheetPatients, SheetStaff} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	statusStyles := make(map[model.BedStatus]int, len(model.BedStatuses))
	for _, s := range model.BedStatuses {
		c := scene.BedStatusColors[s]
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("create status style: %w", err)
		}
		statusStyles[s] = id
	}

	w := sheetWriter{f: f, header: header}
	w.write(SheetSummary, []any{"Floor", "Level", "Beds", "Occupied", "Available", "Cleaning", "Occupancy %"})
	for _, s := range model.FloorSummaries(h) {
		w.write(SheetSummary, []any{
			s.Floor.Name, s.Floor.Level, s.Total,
			s.Beds[model.BedOccupied], s.Beds[model.BedAvailable], s.Beds[model.BedCleaning],
			round1(s.Occupancy),
		})
	}
	w.write(SheetSummary, []any{"Total", "", len(h.Beds), model.CountBeds(h.Beds)[model.BedOccupied], "", "", round1(model.OccupancyRate(h.Beds))})

	w.write(SheetBeds, []any{"Bed", "Floor", "Room", "Status", "Patient", "X", "Y", "Z"})
	for _, b := range h.Beds {
		patient := ""
		if b.PatientID != nil {
			patient = *b.PatientID
		}
		row := w.write(SheetBeds, []any{b.ID, string(b.Floor), b.Room, b.Status.Label(), patient, b.Position.X, b.Position.Y, b.Position.Z})
		cell, _ := excelize.CoordinatesToCellName(4, row)
		if w.err == nil {
			w.err = f.SetCellStyle(SheetBeds, cell, cell, statusStyles[b.Status])
		}
	}

	w.write(SheetPatients, []any{"Patient", "Name", "Status", "Admission", "Bed", "Staff", "Notes"})
	for _, p := range h.Patients {
		bed := ""
		if p.BedID != nil {
			bed = *p.BedID
		}
		w.write(SheetPatients, []any{p.ID, p.Name, p.Status.Label(), string(p.Admission), bed, strings.Join(p.Staff, ", "), p.Notes})
	}

	w.write(SheetStaff, []any{"Staff", "Name", "Role", "Floor", "Patients"})
	for _, s := range h.Staff {
		w.write(SheetStaff, []any{s.ID, s.Name, string(s.Type), string(s.Floor), len(s.Patients)})
	}
	if w.err != nil {
		return fmt.Errorf("write census rows: %w", w.err)
	}

	for _, name := range []string{SheetSummary, SheetBeds, SheetPatients, SheetStaff} {
		if err := f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("freeze header of %s: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// sheetWriter appends rows to sheets and keeps the first error. The first
// row of every sheet gets the header style.
type sheetWriter struct {
	f      *excelize.File
	header int
	rows   map[string]int
	err    error
}

// write appends values as the next row of sheet and returns its 1-based
// row number.
func (w *sheetWriter) write(sheet string, values []any) int {
	if w.rows == nil {
		w.rows = make(map[string]int)
	}
	w.rows[sheet]++
	row := w.rows[sheet]
	if w.err != nil {
		return row
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return row
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = err
		return row
	}
	if row == 1 {
		w.err = w.f.SetRowStyle(sheet, 1, 1, w.header)
	}
	return row
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

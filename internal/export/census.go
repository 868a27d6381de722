// Package export writes hospital census data to PDF, spreadsheet and CAD
// files.
package export

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/WardView/internal/model"
	"github.com/piwi3910/WardView/internal/scene"
)

// ErrEmptyHospital is returned when there is nothing to export.
var ErrEmptyHospital = errors.New("no beds to export")

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0

	planWidth  = 140.0
	tableLeft  = marginLeft + planWidth + 10.0
	tableWidth = pageWidth - marginRight - tableLeft
	rowHeight  = 5.0
)

// Bed footprint in scene units.
const (
	bedFootW = 1.8
	bedFootD = 3.0
)

var tableColumns = []struct {
	title string
	width float64
}{
	{"Bed", 28},
	{"Room", 16},
	{"Status", 22},
	{"Patient", 40},
	{"Condition", 21},
}

// ExportCensusPDF writes a census report: one page per floor with a
// top-down plan colored by bed status and a bed table, then a summary page
// stamped with at.
func ExportCensusPDF(path string, h model.Hospital, at time.Time) error {
	if len(h.Beds) == 0 {
		return ErrEmptyHospital
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Hospital census", false)

	for _, f := range h.Floors {
		v := model.Filter(h, f.ID)
		renderFloorPages(pdf, f, v)
	}

	pdf.AddPage()
	renderCensusSummary(pdf, h, at)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write census pdf: %w", err)
	}
	return nil
}

// renderFloorPages draws the plan and as many table pages as the floor's
// beds need.
func renderFloorPages(pdf *fpdf.Fpdf, f model.Floor, v model.View) {
	rowsPerPage := int((pageHeight - drawAreaTop - marginBottom - rowHeight) / rowHeight)
	beds := v.Beds
	page := 0
	for {
		pdf.AddPage()
		title := fmt.Sprintf("%s (level %d)", f.Name, f.Level)
		if page > 0 {
			title += " (cont.)"
		}
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(marginLeft, marginTop)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

		counts := model.CountBeds(v.Beds)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft, marginTop+headerHeight)
		stats := fmt.Sprintf("Beds: %d | Occupied: %d | Available: %d | Cleaning: %d | Occupancy: %.1f%%",
			len(v.Beds), counts[model.BedOccupied], counts[model.BedAvailable], counts[model.BedCleaning],
			model.OccupancyRate(v.Beds))
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

		if page == 0 {
			drawPlan(pdf, v.Beds)
		}

		n := min(rowsPerPage, len(beds))
		drawBedTable(pdf, beds[:n], v)
		beds = beds[n:]
		page++
		if len(beds) == 0 {
			return
		}
	}
}

// drawPlan renders the beds top-down, scaled into the left half of the page.
func drawPlan(pdf *fpdf.Fpdf, beds []model.Bed) {
	if len(beds) == 0 {
		return
	}
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, b := range beds {
		minX = math.Min(minX, b.Position.X-bedFootW/2)
		maxX = math.Max(maxX, b.Position.X+bedFootW/2)
		minZ = math.Min(minZ, b.Position.Z-bedFootD/2)
		maxZ = math.Max(maxZ, b.Position.Z+bedFootD/2)
	}
	const pad = 1.5
	minX, minZ = minX-pad, minZ-pad
	maxX, maxZ = maxX+pad, maxZ+pad

	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(planWidth/(maxX-minX), drawHeight/(maxZ-minZ))
	offsetX, offsetY := marginLeft, drawAreaTop

	pdf.SetFillColor(214, 219, 226)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, (maxX-minX)*scale, (maxZ-minZ)*scale, "FD")

	for _, b := range beds {
		col := scene.BedStatusColors[b.Status]
		bw, bd := bedFootW*scale, bedFootD*scale
		bx := offsetX + (b.Position.X-bedFootW/2-minX)*scale
		by := offsetY + (b.Position.Z-bedFootD/2-minZ)*scale

		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(bx, by, bw, bd, "FD")

		if bw > 8 && bd > 6 {
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetXY(bx, by+bd/2-1.5)
			pdf.CellFormat(bw, 3, b.Room, "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawBedTable(pdf *fpdf.Fpdf, beds []model.Bed, v model.View) {
	x, y := tableLeft, drawAreaTop

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(x, y)
	for _, c := range tableColumns {
		pdf.CellFormat(c.width, rowHeight, c.title, "1", 0, "L", true, 0, "")
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 8)
	for _, b := range beds {
		patient, condition := "", ""
		if p, ok := v.PatientInBed(b.ID); ok {
			patient, condition = p.Name, p.Status.Label()
		}
		cells := []string{b.ID, b.Room, b.Status.Label(), patient, condition}
		pdf.SetXY(x, y)
		for i, c := range tableColumns {
			pdf.CellFormat(c.width, rowHeight, fit(pdf, cells[i], c.width-1), "1", 0, "L", false, 0, "")
		}
		y += rowHeight
	}
}

func renderCensusSummary(pdf *fpdf.Fpdf, h model.Hospital, at time.Time) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Census Summary", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(0, 6, "Generated "+at.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")

	y := drawAreaTop + 5
	colW := []float64{60, 25, 25, 25, 25, 30}
	headers := []string{"Floor", "Beds", "Occupied", "Available", "Cleaning", "Occupancy"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft, y)
	for i, hd := range headers {
		pdf.CellFormat(colW[i], 7, hd, "1", 0, "C", true, 0, "")
	}
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	for _, s := range model.FloorSummaries(h) {
		pdf.SetXY(marginLeft, y)
		row := []string{
			s.Floor.Name,
			fmt.Sprintf("%d", s.Total),
			fmt.Sprintf("%d", s.Beds[model.BedOccupied]),
			fmt.Sprintf("%d", s.Beds[model.BedAvailable]),
			fmt.Sprintf("%d", s.Beds[model.BedCleaning]),
			fmt.Sprintf("%.1f%%", s.Occupancy),
		}
		for i, val := range row {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(colW[i], 6, val, "1", 0, align, false, 0, "")
		}
		y += 6
	}

	y += 8
	patients := model.CountPatients(h.Patients)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 7, "Overall", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Total beds: %d", len(h.Beds)),
		fmt.Sprintf("Occupancy rate: %.1f%%", model.OccupancyRate(h.Beds)),
		fmt.Sprintf("Patients: %d (%d critical, %d stable, %d discharged)",
			len(h.Patients), patients[model.PatientCritical], patients[model.PatientStable], patients[model.PatientDischarged]),
		fmt.Sprintf("Staff on duty: %d", len(h.Staff)),
	} {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(0, 6, line, "", 0, "L", false, 0, "")
		y += 6
	}
}

// fit truncates s with an ellipsis so it fits in width mm at the current font.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

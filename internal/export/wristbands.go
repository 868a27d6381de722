package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/WardView/internal/model"
)

// WristbandInfo holds the data encoded into each wristband's QR code.
type WristbandInfo struct {
	PatientID string `json:"patient_id"`
	Name      string `json:"name"`
	BedID     string `json:"bed_id"`
	Room      string `json:"room"`
	Floor     string `json:"floor"`
	Status    string `json:"status"`
	Admission string `json:"admission"`
}

// Wristband layout: one band per row, 8 per A4 portrait page.
const (
	bandMarginTop  = 12.0
	bandMarginLeft = 15.0
	bandWidth      = 180.0
	bandHeight     = 32.0
	bandGap        = 2.0
	bandsPerPage   = 8
	bandQRSize     = 26.0
	bandPadding    = 3.0
)

// CollectWristbands returns one entry per patient who is in a bed, in
// patient order.
func CollectWristbands(h model.Hospital) []WristbandInfo {
	var bands []WristbandInfo
	for _, p := range h.Patients {
		if p.BedID == nil {
			continue
		}
		b, ok := h.FindBed(*p.BedID)
		if !ok {
			continue
		}
		bands = append(bands, WristbandInfo{
			PatientID: p.ID,
			Name:      p.Name,
			BedID:     b.ID,
			Room:      b.Room,
			Floor:     string(b.Floor),
			Status:    string(p.Status),
			Admission: string(p.Admission),
		})
	}
	return bands
}

// ExportWristbands writes a PDF with a QR-coded wristband for every
// admitted patient. The QR code carries the WristbandInfo as JSON.
func ExportWristbands(path string, h model.Hospital) error {
	bands := CollectWristbands(h)
	if len(bands) == 0 {
		return fmt.Errorf("no admitted patients to print wristbands for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, band := range bands {
		if i%bandsPerPage == 0 {
			pdf.AddPage()
		}
		y := bandMarginTop + float64(i%bandsPerPage)*(bandHeight+bandGap)
		if err := renderWristband(pdf, bandMarginLeft, y, band); err != nil {
			return fmt.Errorf("render wristband for %s: %w", band.PatientID, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write wristbands pdf: %w", err)
	}
	return nil
}

func renderWristband(pdf *fpdf.Fpdf, x, y float64, info WristbandInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.RoundedRect(x, y, bandWidth, bandHeight, 4, "1234", "D")

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal wristband info: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := "qr_" + info.PatientID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	qrX := x + bandWidth - bandQRSize - bandPadding
	qrY := y + (bandHeight-bandQRSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, bandQRSize, bandQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// status stripe on the left edge
	stripe := map[string][3]int{
		string(model.PatientCritical):   {244, 67, 54},
		string(model.PatientStable):     {76, 175, 80},
		string(model.PatientDischarged): {158, 158, 158},
	}[info.Status]
	pdf.SetFillColor(stripe[0], stripe[1], stripe[2])
	pdf.Rect(x+bandPadding, y+bandPadding, 3, bandHeight-2*bandPadding, "F")

	textX := x + bandPadding + 6
	textW := bandWidth - bandQRSize - 3*bandPadding - 6

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+bandPadding)
	pdf.CellFormat(textW, 6, fit(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(textX, y+bandPadding+8)
	pdf.CellFormat(textW, 4.5, "ID "+info.PatientID, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+bandPadding+13)
	where := fmt.Sprintf("Bed %s, room %s, %s", info.BedID, info.Room, info.Floor)
	pdf.CellFormat(textW, 4.5, fit(pdf, where, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+bandPadding+18)
	pdf.CellFormat(textW, 4, fmt.Sprintf("%s admission, %s", info.Admission, info.Status), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

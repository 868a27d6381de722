package ui

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/piwi3910/WardView/internal/importer"
	"github.com/piwi3910/WardView/internal/model"
)

// Dashboard is the UI state behind the main window: the hospital and the
// selected floor, bed and patient. Selected bed and patient are kept as a
// pair; selecting one selects its counterpart. Empty strings mean nothing
// is selected.
type Dashboard struct {
	Hospital  model.Hospital
	FloorID   string
	BedID     string
	PatientID string
	Options   model.GenOptions

	history *History
	log     *zap.Logger
}

// NewDashboard returns a dashboard over h showing every floor.
func NewDashboard(h model.Hospital, opts model.GenOptions, log *zap.Logger) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{Hospital: h, Options: opts, history: NewHistory(), log: log}
}

// View returns the part of the hospital visible on the selected floor.
func (d *Dashboard) View() model.View {
	return model.Filter(d.Hospital, d.FloorID)
}

// Floor returns the selected floor.
func (d *Dashboard) Floor() (model.Floor, bool) {
	if d.FloorID == "" {
		return model.Floor{}, false
	}
	return d.Hospital.FindFloor(d.FloorID)
}

// SelectedBed returns the selected bed.
func (d *Dashboard) SelectedBed() (model.Bed, bool) {
	if d.BedID == "" {
		return model.Bed{}, false
	}
	return d.Hospital.FindBed(d.BedID)
}

// SelectedPatient returns the selected patient.
func (d *Dashboard) SelectedPatient() (model.Patient, bool) {
	if d.PatientID == "" {
		return model.Patient{}, false
	}
	return d.Hospital.FindPatient(d.PatientID)
}

// SelectBed selects the bed and its occupant, if any. Unknown ids are
// ignored and reported as false.
func (d *Dashboard) SelectBed(id string) bool {
	bed, ok := d.Hospital.FindBed(id)
	if !ok {
		return false
	}
	d.BedID = bed.ID
	d.PatientID = ""
	if bed.PatientID != nil {
		d.PatientID = *bed.PatientID
	}
	d.log.Debug("bed selected", zap.String("bed", d.BedID), zap.String("patient", d.PatientID))
	return true
}

// SelectPatient selects the patient and the bed they occupy.
func (d *Dashboard) SelectPatient(id string) bool {
	p, ok := d.Hospital.FindPatient(id)
	if !ok {
		return false
	}
	d.PatientID = p.ID
	d.BedID = ""
	if p.BedID != nil {
		d.BedID = *p.BedID
	}
	d.log.Debug("patient selected", zap.String("patient", d.PatientID), zap.String("bed", d.BedID))
	return true
}

// ClearSelection drops the selected bed and patient.
func (d *Dashboard) ClearSelection() {
	d.BedID = ""
	d.PatientID = ""
}

// SelectFloor shows only floor id, or every floor for "". The bed and
// patient selection is cleared because it may no longer be visible.
func (d *Dashboard) SelectFloor(id string) {
	d.FloorID = id
	d.ClearSelection()
	d.log.Debug("floor selected", zap.String("floor", id))
}

// Refresh regenerates the hospital from rng, discarding every edit and
// the edit history.
func (d *Dashboard) Refresh(rng *rand.Rand) string {
	d.Hospital = model.GenerateWithOptions(rng, d.Options)
	d.ClearSelection()
	if _, ok := d.Hospital.FindFloor(d.FloorID); !ok {
		d.FloorID = ""
	}
	d.history.Clear()
	d.log.Info("hospital regenerated",
		zap.Int("beds", len(d.Hospital.Beds)),
		zap.Int("patients", len(d.Hospital.Patients)))
	return fmt.Sprintf("Hospital data refreshed: %d beds, %d patients", len(d.Hospital.Beds), len(d.Hospital.Patients))
}

// SetBedStatus changes one bed's status and returns the notification to
// show. Unknown beds and unchanged statuses are no-ops returning "".
func (d *Dashboard) SetBedStatus(id string, status model.BedStatus) string {
	bed, ok := d.Hospital.FindBed(id)
	if !ok || bed.Status == status {
		return ""
	}
	label := fmt.Sprintf("Bed %s → %s", id, status.Label())
	d.history.Push(MakeSnapshot(d.Hospital, label))
	d.Hospital = model.UpdateBedStatus(d.Hospital, id, status)
	d.log.Info("bed status updated", zap.String("bed", id),
		zap.String("from", string(bed.Status)), zap.String("to", string(status)))
	d.validate()
	return fmt.Sprintf("Bed %s (room %s) status updated to %s", id, bed.Room, status.Label())
}

// SetPatientStatus changes one patient's status and returns the
// notification to show.
func (d *Dashboard) SetPatientStatus(id string, status model.PatientStatus) string {
	p, ok := d.Hospital.FindPatient(id)
	if !ok || p.Status == status {
		return ""
	}
	label := fmt.Sprintf("%s → %s", p.Name, status.Label())
	d.history.Push(MakeSnapshot(d.Hospital, label))
	d.Hospital = model.UpdatePatientStatus(d.Hospital, id, status)
	d.log.Info("patient status updated", zap.String("patient", id),
		zap.String("from", string(p.Status)), zap.String("to", string(status)))
	d.validate()
	return fmt.Sprintf("Patient %s status updated to %s", p.Name, status.Label())
}

// ApplyBedStatuses applies imported status updates as one undoable edit.
// Unknown beds are skipped; it returns the notification and the ids that
// were skipped.
func (d *Dashboard) ApplyBedStatuses(updates []importer.StatusUpdate) (string, []string) {
	next := d.Hospital
	changed := 0
	var skipped []string
	for _, u := range updates {
		bed, ok := next.FindBed(u.BedID)
		if !ok {
			skipped = append(skipped, u.BedID)
			continue
		}
		if bed.Status == u.Status {
			continue
		}
		next = model.UpdateBedStatus(next, u.BedID, u.Status)
		changed++
	}
	if changed == 0 {
		return "", skipped
	}
	d.history.Push(MakeSnapshot(d.Hospital, fmt.Sprintf("Import of %d bed statuses", changed)))
	d.Hospital = next
	d.log.Info("bed statuses imported", zap.Int("changed", changed), zap.Int("skipped", len(skipped)))
	d.validate()
	return fmt.Sprintf("Imported %d bed status changes", changed), skipped
}

func (d *Dashboard) CanUndo() bool { return d.history.CanUndo() }
func (d *Dashboard) CanRedo() bool { return d.history.CanRedo() }

// Undo reverts the last status edit and returns its notification.
func (d *Dashboard) Undo() (string, bool) {
	snap, ok := d.history.Undo(MakeSnapshot(d.Hospital, ""))
	if !ok {
		return "", false
	}
	d.restore(snap)
	return "Undid: " + snap.Label, true
}

// Redo re-applies the last undone edit.
func (d *Dashboard) Redo() (string, bool) {
	snap, ok := d.history.Redo(MakeSnapshot(d.Hospital, ""))
	if !ok {
		return "", false
	}
	d.restore(snap)
	return "Redid: " + snap.Label, true
}

func (d *Dashboard) restore(snap Snapshot) {
	d.Hospital = snap.Hospital
	// selection ids stay valid: edits never add or remove entities
	d.log.Debug("history restored", zap.String("label", snap.Label))
}

// validate logs a warning when the bed/patient references are broken.
func (d *Dashboard) validate() {
	if err := model.Validate(d.Hospital); err != nil {
		d.log.Warn("hospital invariants violated", zap.Error(err))
	}
}

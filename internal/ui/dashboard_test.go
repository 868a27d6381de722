package ui

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/piwi3910/WardView/internal/importer"
	"github.com/piwi3910/WardView/internal/model"
)

func newTestDashboard(seed int64) *Dashboard {
	return NewDashboard(testHospital(seed), model.DefaultGenOptions(), zap.NewNop())
}

func occupiedBed(t *testing.T, h model.Hospital) model.Bed {
	t.Helper()
	for _, b := range h.Beds {
		if b.Status == model.BedOccupied {
			return b
		}
	}
	t.Fatal("no occupied bed")
	return model.Bed{}
}

func freeBed(t *testing.T, h model.Hospital) model.Bed {
	t.Helper()
	for _, b := range h.Beds {
		if b.PatientID == nil {
			return b
		}
	}
	t.Fatal("no free bed")
	return model.Bed{}
}

func TestDashboard_SelectBedSelectsOccupant(t *testing.T) {
	d := newTestDashboard(1)
	bed := occupiedBed(t, d.Hospital)

	require.True(t, d.SelectBed(bed.ID))
	assert.Equal(t, bed.ID, d.BedID)
	assert.Equal(t, *bed.PatientID, d.PatientID)

	free := freeBed(t, d.Hospital)
	require.True(t, d.SelectBed(free.ID))
	assert.Equal(t, free.ID, d.BedID)
	assert.Empty(t, d.PatientID, "empty bed clears the patient")

	assert.False(t, d.SelectBed("bed-unknown"))
	assert.Equal(t, free.ID, d.BedID)
}

func TestDashboard_SelectPatientSelectsBed(t *testing.T) {
	d := newTestDashboard(2)
	p := d.Hospital.Patients[0]

	require.True(t, d.SelectPatient(p.ID))
	assert.Equal(t, p.ID, d.PatientID)
	assert.Equal(t, *p.BedID, d.BedID)

	got, ok := d.SelectedPatient()
	require.True(t, ok)
	assert.Equal(t, p.Name, got.Name)
	bed, ok := d.SelectedBed()
	require.True(t, ok)
	assert.Equal(t, p.ID, *bed.PatientID)
}

func TestDashboard_SelectFloorClearsSelection(t *testing.T) {
	d := newTestDashboard(3)
	d.SelectPatient(d.Hospital.Patients[0].ID)

	d.SelectFloor("floor-2")
	assert.Equal(t, "floor-2", d.FloorID)
	assert.Empty(t, d.BedID)
	assert.Empty(t, d.PatientID)

	floor, ok := d.Floor()
	require.True(t, ok)
	assert.Equal(t, model.FloorEmergency, floor.Type)
	for _, b := range d.View().Beds {
		assert.Equal(t, model.FloorEmergency, b.Floor)
	}

	d.SelectFloor("")
	assert.Len(t, d.View().Beds, len(d.Hospital.Beds))
}

func TestDashboard_SetBedStatus(t *testing.T) {
	d := newTestDashboard(4)
	bed := occupiedBed(t, d.Hospital)
	before := d.Hospital

	msg := d.SetBedStatus(bed.ID, model.BedCleaning)
	assert.Contains(t, msg, bed.ID)
	assert.Contains(t, msg, "Cleaning")

	got, _ := d.Hospital.FindBed(bed.ID)
	assert.Equal(t, model.BedCleaning, got.Status)
	orig, _ := before.FindBed(bed.ID)
	assert.Equal(t, model.BedOccupied, orig.Status, "previous hospital untouched")
	assert.True(t, d.CanUndo())

	assert.Empty(t, d.SetBedStatus(bed.ID, model.BedCleaning), "no change, no notification")
	assert.Empty(t, d.SetBedStatus("bed-unknown", model.BedAvailable))
}

func TestDashboard_SetPatientStatus(t *testing.T) {
	d := newTestDashboard(5)
	p := d.Hospital.Patients[0]
	target := model.PatientDischarged
	if p.Status == target {
		target = model.PatientStable
	}

	msg := d.SetPatientStatus(p.ID, target)
	assert.Contains(t, msg, p.Name)
	got, _ := d.Hospital.FindPatient(p.ID)
	assert.Equal(t, target, got.Status)
	assert.Empty(t, d.SetPatientStatus("patient-unknown", target))
}

func TestDashboard_UndoRedo(t *testing.T) {
	d := newTestDashboard(6)
	bed := occupiedBed(t, d.Hospital)
	d.SetBedStatus(bed.ID, model.BedAvailable)

	msg, ok := d.Undo()
	require.True(t, ok)
	assert.Contains(t, msg, bed.ID)
	got, _ := d.Hospital.FindBed(bed.ID)
	assert.Equal(t, model.BedOccupied, got.Status)

	msg, ok = d.Redo()
	require.True(t, ok)
	assert.Contains(t, msg, "Redid: Bed "+bed.ID)
	got, _ = d.Hospital.FindBed(bed.ID)
	assert.Equal(t, model.BedAvailable, got.Status)

	_, ok = d.Redo()
	assert.False(t, ok)
}

func TestDashboard_RefreshResets(t *testing.T) {
	d := newTestDashboard(7)
	d.SelectFloor("floor-1")
	bed := occupiedBed(t, d.Hospital)
	d.SelectBed(bed.ID)
	d.SetBedStatus(bed.ID, model.BedCleaning)

	msg := d.Refresh(rand.New(rand.NewSource(99)))
	assert.Contains(t, msg, "refreshed")
	assert.Empty(t, d.BedID)
	assert.Empty(t, d.PatientID)
	assert.Equal(t, "floor-1", d.FloorID, "floor filter survives a refresh")
	assert.False(t, d.CanUndo())
	assert.NoError(t, model.Validate(d.Hospital))
	assert.Equal(t, model.Generate(rand.New(rand.NewSource(99))), d.Hospital)
}

func TestDashboard_ApplyBedStatuses(t *testing.T) {
	d := newTestDashboard(8)
	free := freeBed(t, d.Hospital)
	target := model.BedCleaning
	if free.Status == model.BedCleaning {
		target = model.BedAvailable
	}

	msg, skipped := d.ApplyBedStatuses([]importer.StatusUpdate{
		{BedID: free.ID, Status: target},
		{BedID: "ghost-bed", Status: model.BedAvailable},
	})
	assert.Equal(t, "Imported 1 bed status changes", msg)
	assert.Equal(t, []string{"ghost-bed"}, skipped)
	b, _ := d.Hospital.FindBed(free.ID)
	assert.Equal(t, target, b.Status)

	// the whole import is one undo step
	_, ok := d.Undo()
	require.True(t, ok)
	b, _ = d.Hospital.FindBed(free.ID)
	assert.Equal(t, free.Status, b.Status)
	assert.False(t, d.CanUndo())
}

func TestDashboard_ApplyBedStatusesNoChange(t *testing.T) {
	d := newTestDashboard(8)
	b := d.Hospital.Beds[0]

	msg, skipped := d.ApplyBedStatuses([]importer.StatusUpdate{{BedID: b.ID, Status: b.Status}})
	assert.Empty(t, msg)
	assert.Empty(t, skipped)
	assert.False(t, d.CanUndo())
}

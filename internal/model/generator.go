package model

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Scene layout of generated beds, in scene units.
const (
	FloorHeight = 6.0 // vertical distance between levels
	RoomWidth   = 6.5 // room pitch along X
	BedPitchX   = 2.6 // bed pitch inside a room along X
	BedPitchZ   = 4.0 // bed pitch inside a room along Z
)

// GenOptions controls the shape of a generated hospital.
type GenOptions struct {
	BedsPerFloor int
	BedsPerRoom  int
	Doctors      int // per floor
	Nurses       int // per floor
	Technicians  int // per floor
}

// DefaultGenOptions returns the standard 4 x 20 bed layout.
func DefaultGenOptions() GenOptions {
	return GenOptions{
		BedsPerFloor: 20,
		BedsPerRoom:  4,
		Doctors:      2,
		Nurses:       4,
		Technicians:  1,
	}
}

// Weighted draws. Indices line up with BedStatuses / PatientStatuses.
var (
	bedStatusWeights     = []float64{0.3, 0.6, 0.1}
	patientStatusWeights = []float64{0.15, 0.7, 0.15}
)

var floorNames = map[FloorType]string{
	FloorICU:       "Intensive Care Unit",
	FloorEmergency: "Emergency Department",
	FloorSurgery:   "Surgical Ward",
	FloorGeneral:   "General Ward",
}

var (
	firstNames = []string{
		"Ava", "Liam", "Noah", "Emma", "Olivia", "Mason", "Sophia", "Lucas",
		"Mia", "Ethan", "Amelia", "James", "Harper", "Elijah", "Isla", "Mateo",
		"Chloe", "Leo", "Zoe", "Aria", "Henry", "Nora", "Omar", "Priya",
	}
	lastNames = []string{
		"Smith", "Garcia", "Chen", "Okafor", "Patel", "Müller", "Rossi", "Kim",
		"Nguyen", "Silva", "Novak", "Haddad", "Jensen", "Brown", "Ivanova",
		"Tanaka", "Dubois", "Walsh", "Costa", "Larsen",
	}
	patientNotes = []string{
		"Allergic to penicillin.",
		"Fall risk, bed alarm on.",
		"NPO after midnight.",
		"Family requests updates by phone.",
		"Awaiting imaging results.",
		"Diabetic, check glucose q4h.",
	}
)

// Generate builds a random hospital with the default layout.
func Generate(rng *rand.Rand) Hospital {
	return GenerateWithOptions(rng, DefaultGenOptions())
}

// GenerateWithOptions builds a random but internally consistent hospital:
// one floor per FloorType, beds grouped into rooms, a patient for every
// occupied bed and 1-2 staff from the bed's floor assigned to each patient.
// The same seed always produces the same hospital.
func GenerateWithOptions(rng *rand.Rand, opts GenOptions) Hospital {
	if opts.BedsPerFloor <= 0 {
		opts.BedsPerFloor = DefaultGenOptions().BedsPerFloor
	}
	if opts.BedsPerRoom <= 0 {
		opts.BedsPerRoom = DefaultGenOptions().BedsPerRoom
	}

	var h Hospital
	staffIdx := 0

	for fi, ft := range FloorTypes {
		level := fi + 1
		floor := Floor{
			ID:    fmt.Sprintf("floor-%d", level),
			Type:  ft,
			Name:  floorNames[ft],
			Level: level,
		}

		// Staff first so patients can draw from it.
		floorStaffStart := len(h.Staff)
		addStaff := func(n int, st StaffType) {
			for i := 0; i < n; i++ {
				h.Staff = append(h.Staff, Staff{
					ID:       fmt.Sprintf("staff-%d", staffIdx),
					Name:     staffName(rng, st),
					Type:     st,
					Floor:    ft,
					Patients: []string{},
				})
				staffIdx++
			}
		}
		addStaff(opts.Doctors, StaffDoctor)
		addStaff(opts.Nurses, StaffNurse)
		addStaff(opts.Technicians, StaffTechnician)
		floorStaff := len(h.Staff) - floorStaffStart

		for bi := 0; bi < opts.BedsPerFloor; bi++ {
			room := bi / opts.BedsPerRoom
			slot := bi % opts.BedsPerRoom
			bed := Bed{
				ID: fmt.Sprintf("bed-%d-%d", fi, bi),
				Position: Vec3{
					X: float64(room)*RoomWidth + float64(slot%2)*BedPitchX,
					Y: float64(level-1) * FloorHeight,
					Z: float64(slot/2) * BedPitchZ,
				},
				Status: BedStatuses[weightedIndex(rng, bedStatusWeights)],
				Floor:  ft,
				Room:   fmt.Sprintf("%d%02d", level, room+1),
			}

			if bed.Status == BedOccupied {
				p := Patient{
					ID:        newPatientID(rng),
					Name:      fullName(rng),
					Status:    PatientStatuses[weightedIndex(rng, patientStatusWeights)],
					Admission: AdmissionTypes[rng.Intn(len(AdmissionTypes))],
					BedID:     StringPtr(bed.ID),
				}
				if rng.Intn(3) == 0 {
					p.Notes = patientNotes[rng.Intn(len(patientNotes))]
				}
				if floorStaff > 0 {
					n := 1 + rng.Intn(2)
					if n > floorStaff {
						n = floorStaff
					}
					for _, k := range rng.Perm(floorStaff)[:n] {
						s := &h.Staff[floorStaffStart+k]
						p.Staff = append(p.Staff, s.ID)
						s.Patients = append(s.Patients, p.ID)
					}
				}
				bed.PatientID = StringPtr(p.ID)
				h.Patients = append(h.Patients, p)
			}

			floor.Beds = append(floor.Beds, bed.ID)
			h.Beds = append(h.Beds, bed)
		}

		h.Floors = append(h.Floors, floor)
	}
	return h
}

// UpdateBedStatus returns a copy of h with the status of bed id replaced.
// h is not modified. An unknown id returns an unchanged copy.
func UpdateBedStatus(h Hospital, id string, status BedStatus) Hospital {
	beds := make([]Bed, len(h.Beds))
	copy(beds, h.Beds)
	for i := range beds {
		if beds[i].ID == id {
			beds[i].Status = status
		}
	}
	h.Beds = beds
	return h
}

// UpdatePatientStatus returns a copy of h with the status of patient id
// replaced. h is not modified. An unknown id returns an unchanged copy.
func UpdatePatientStatus(h Hospital, id string, status PatientStatus) Hospital {
	patients := make([]Patient, len(h.Patients))
	copy(patients, h.Patients)
	for i := range patients {
		if patients[i].ID == id {
			patients[i].Status = status
		}
	}
	h.Patients = patients
	return h
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func newPatientID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		id = uuid.New()
	}
	return "patient-" + id.String()[:8]
}

func fullName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}

func staffName(rng *rand.Rand, st StaffType) string {
	last := lastNames[rng.Intn(len(lastNames))]
	switch st {
	case StaffDoctor:
		return "Dr. " + last
	case StaffNurse:
		return "Nurse " + firstNames[rng.Intn(len(firstNames))] + " " + last
	default:
		return firstNames[rng.Intn(len(firstNames))] + " " + last
	}
}

package model

import "fmt"

// FloorType is the ward category of a floor. Beds are placed by floor type.
type FloorType string

const (
	FloorICU       FloorType = "ICU"
	FloorEmergency FloorType = "Emergency"
	FloorSurgery   FloorType = "Surgery"
	FloorGeneral   FloorType = "General"
)

// FloorTypes lists every floor type in stacking order.
var FloorTypes = []FloorType{FloorICU, FloorEmergency, FloorSurgery, FloorGeneral}

func (f FloorType) Valid() bool {
	switch f {
	case FloorICU, FloorEmergency, FloorSurgery, FloorGeneral:
		return true
	}
	return false
}

func (f FloorType) String() string { return string(f) }

// BedStatus is the occupancy state of a bed.
type BedStatus string

const (
	BedAvailable BedStatus = "available"
	BedOccupied  BedStatus = "occupied"
	BedCleaning  BedStatus = "cleaning"
)

// BedStatuses lists every bed status in display order.
var BedStatuses = []BedStatus{BedAvailable, BedOccupied, BedCleaning}

func (s BedStatus) Valid() bool {
	switch s {
	case BedAvailable, BedOccupied, BedCleaning:
		return true
	}
	return false
}

// Label returns the status as shown in the UI ("Available").
func (s BedStatus) Label() string {
	switch s {
	case BedAvailable:
		return "Available"
	case BedOccupied:
		return "Occupied"
	case BedCleaning:
		return "Cleaning"
	default:
		return string(s)
	}
}

// ParseBedStatus accepts either the raw value or the display label.
func ParseBedStatus(s string) (BedStatus, error) {
	for _, st := range BedStatuses {
		if s == string(st) || s == st.Label() {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown bed status %q", s)
}

// PatientStatus is the clinical state of a patient.
type PatientStatus string

const (
	PatientCritical   PatientStatus = "critical"
	PatientStable     PatientStatus = "stable"
	PatientDischarged PatientStatus = "discharged"
)

// PatientStatuses lists every patient status in display order.
var PatientStatuses = []PatientStatus{PatientCritical, PatientStable, PatientDischarged}

func (s PatientStatus) Valid() bool {
	switch s {
	case PatientCritical, PatientStable, PatientDischarged:
		return true
	}
	return false
}

func (s PatientStatus) Label() string {
	switch s {
	case PatientCritical:
		return "Critical"
	case PatientStable:
		return "Stable"
	case PatientDischarged:
		return "Discharged"
	default:
		return string(s)
	}
}

// ParsePatientStatus accepts either the raw value or the display label.
func ParsePatientStatus(s string) (PatientStatus, error) {
	for _, st := range PatientStatuses {
		if s == string(st) || s == st.Label() {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown patient status %q", s)
}

// AdmissionType records how a patient was admitted.
type AdmissionType string

const (
	AdmissionEmergency AdmissionType = "emergency"
	AdmissionElective  AdmissionType = "elective"
	AdmissionTransfer  AdmissionType = "transfer"
)

var AdmissionTypes = []AdmissionType{AdmissionEmergency, AdmissionElective, AdmissionTransfer}

// StaffType is the role of a staff member.
type StaffType string

const (
	StaffDoctor     StaffType = "doctor"
	StaffNurse      StaffType = "nurse"
	StaffTechnician StaffType = "technician"
)

// Vec3 is a position in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Floor is one ward level of the hospital.
type Floor struct {
	ID    string    `json:"id"`
	Type  FloorType `json:"type"`
	Name  string    `json:"name"`
	Level int       `json:"level"` // vertical stacking order, 1 = lowest
	Beds  []string  `json:"beds"`
}

// Bed is a single bed. PatientID is set if and only if the bed is occupied.
type Bed struct {
	ID        string    `json:"id"`
	Position  Vec3      `json:"position"`
	Status    BedStatus `json:"status"`
	Floor     FloorType `json:"floor"`
	Room      string    `json:"room"`
	PatientID *string   `json:"patient_id,omitempty"`
}

// Patient is an admitted patient. BedID points back at the patient's bed.
type Patient struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Status    PatientStatus `json:"status"`
	Admission AdmissionType `json:"admission"`
	Staff     []string      `json:"staff"`
	BedID     *string       `json:"bed_id,omitempty"`
	Notes     string        `json:"notes,omitempty"`
}

// Staff is a doctor, nurse or technician assigned to one floor type.
type Staff struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     StaffType `json:"type"`
	Floor    FloorType `json:"floor"`
	Patients []string  `json:"patients"`
}

// Hospital is the aggregate root. Values are replaced wholesale on update;
// nothing holds a reference outside these four slices.
type Hospital struct {
	Floors   []Floor   `json:"floors"`
	Beds     []Bed     `json:"beds"`
	Patients []Patient `json:"patients"`
	Staff    []Staff   `json:"staff"`
}

// FindFloor returns the floor with the given id.
func (h Hospital) FindFloor(id string) (Floor, bool) {
	for _, f := range h.Floors {
		if f.ID == id {
			return f, true
		}
	}
	return Floor{}, false
}

// FindBed returns the bed with the given id.
func (h Hospital) FindBed(id string) (Bed, bool) {
	for _, b := range h.Beds {
		if b.ID == id {
			return b, true
		}
	}
	return Bed{}, false
}

// FindPatient returns the patient with the given id.
func (h Hospital) FindPatient(id string) (Patient, bool) {
	for _, p := range h.Patients {
		if p.ID == id {
			return p, true
		}
	}
	return Patient{}, false
}

// FindStaff returns the staff member with the given id.
func (h Hospital) FindStaff(id string) (Staff, bool) {
	for _, s := range h.Staff {
		if s.ID == id {
			return s, true
		}
	}
	return Staff{}, false
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

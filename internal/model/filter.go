package model

// View is the subset of a hospital visible for one floor selection.
type View struct {
	Floors   []Floor
	Beds     []Bed
	Patients []Patient
}

// Filter projects h onto the floor with the given id. An empty floorID
// selects everything; an unknown id selects nothing. Patients are visible
// when their bed is visible.
func Filter(h Hospital, floorID string) View {
	if floorID == "" {
		return View{
			Floors:   h.Floors,
			Beds:     h.Beds,
			Patients: h.Patients,
		}
	}

	floor, ok := h.FindFloor(floorID)
	if !ok {
		return View{}
	}

	v := View{Floors: []Floor{floor}}
	visible := make(map[string]bool)
	for _, b := range h.Beds {
		if b.Floor == floor.Type {
			v.Beds = append(v.Beds, b)
			visible[b.ID] = true
		}
	}
	for _, p := range h.Patients {
		if p.BedID != nil && visible[*p.BedID] {
			v.Patients = append(v.Patients, p)
		}
	}
	return v
}

// PatientInBed returns the visible patient occupying bed id, if any.
func (v View) PatientInBed(bedID string) (Patient, bool) {
	for _, p := range v.Patients {
		if p.BedID != nil && *p.BedID == bedID {
			return p, true
		}
	}
	return Patient{}, false
}

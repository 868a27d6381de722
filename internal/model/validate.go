package model

import (
	"errors"
	"fmt"
)

// Validate checks the reference invariants of a hospital: every bed that
// names a patient is named back by that patient and vice versa, floor bed
// lists partition the beds by floor type, and statuses are known values.
// All violations are returned joined.
func Validate(h Hospital) error {
	var errs []error

	beds := make(map[string]Bed, len(h.Beds))
	for _, b := range h.Beds {
		beds[b.ID] = b
		if !b.Status.Valid() {
			errs = append(errs, fmt.Errorf("bed %s: invalid status %q", b.ID, b.Status))
		}
	}
	patients := make(map[string]Patient, len(h.Patients))
	for _, p := range h.Patients {
		patients[p.ID] = p
		if !p.Status.Valid() {
			errs = append(errs, fmt.Errorf("patient %s: invalid status %q", p.ID, p.Status))
		}
	}

	for _, b := range h.Beds {
		if b.PatientID == nil {
			continue
		}
		p, ok := patients[*b.PatientID]
		if !ok {
			errs = append(errs, fmt.Errorf("bed %s: patient %s not found", b.ID, *b.PatientID))
			continue
		}
		if p.BedID == nil || *p.BedID != b.ID {
			errs = append(errs, fmt.Errorf("bed %s: patient %s does not point back", b.ID, p.ID))
		}
	}
	for _, p := range h.Patients {
		if p.BedID == nil {
			continue
		}
		b, ok := beds[*p.BedID]
		if !ok {
			errs = append(errs, fmt.Errorf("patient %s: bed %s not found", p.ID, *p.BedID))
			continue
		}
		if b.PatientID == nil || *b.PatientID != p.ID {
			errs = append(errs, fmt.Errorf("patient %s: bed %s does not point back", p.ID, b.ID))
		}
	}

	listed := make(map[string]int, len(h.Beds))
	for _, f := range h.Floors {
		for _, id := range f.Beds {
			listed[id]++
			b, ok := beds[id]
			if !ok {
				errs = append(errs, fmt.Errorf("floor %s: bed %s not found", f.ID, id))
				continue
			}
			if b.Floor != f.Type {
				errs = append(errs, fmt.Errorf("floor %s: bed %s has floor type %s", f.ID, id, b.Floor))
			}
		}
	}
	for _, b := range h.Beds {
		switch listed[b.ID] {
		case 0:
			errs = append(errs, fmt.Errorf("bed %s: not listed by any floor", b.ID))
		case 1:
		default:
			errs = append(errs, fmt.Errorf("bed %s: listed by %d floors", b.ID, listed[b.ID]))
		}
	}

	return errors.Join(errs...)
}

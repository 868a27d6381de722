package model

// FloorSummary aggregates bed and patient counts for one floor.
type FloorSummary struct {
	Floor     Floor
	Beds      map[BedStatus]int
	Patients  map[PatientStatus]int
	Total     int
	Occupancy float64 // percent, 0-100
}

// OccupancyRate returns the percentage of beds with status occupied.
func OccupancyRate(beds []Bed) float64 {
	if len(beds) == 0 {
		return 0
	}
	return float64(CountBeds(beds)[BedOccupied]) / float64(len(beds)) * 100.0
}

// CountBeds tallies beds by status.
func CountBeds(beds []Bed) map[BedStatus]int {
	counts := make(map[BedStatus]int, len(BedStatuses))
	for _, b := range beds {
		counts[b.Status]++
	}
	return counts
}

// CountPatients tallies patients by status.
func CountPatients(patients []Patient) map[PatientStatus]int {
	counts := make(map[PatientStatus]int, len(PatientStatuses))
	for _, p := range patients {
		counts[p.Status]++
	}
	return counts
}

// FloorSummaries returns one summary per floor, in floor order.
func FloorSummaries(h Hospital) []FloorSummary {
	summaries := make([]FloorSummary, 0, len(h.Floors))
	for _, f := range h.Floors {
		v := Filter(h, f.ID)
		summaries = append(summaries, FloorSummary{
			Floor:     f,
			Beds:      CountBeds(v.Beds),
			Patients:  CountPatients(v.Patients),
			Total:     len(v.Beds),
			Occupancy: OccupancyRate(v.Beds),
		})
	}
	return summaries
}

package scene

import (
	"github.com/piwi3910/WardView/internal/model"
)

// Population owns the nodes created for one view of the hospital and the
// table of interactive objects keyed by tag.
type Population struct {
	Objects map[Tag]*Node

	nodes []*Node
}

// NewPopulation returns an empty population.
func NewPopulation() *Population {
	return &Population{Objects: make(map[Tag]*Node)}
}

// Populate replaces the previous generation with the entities of view.
// Every previously created node is removed from the stage and disposed
// before the new ones are built, and the interactive table is rebuilt from
// scratch.
func (p *Population) Populate(s *Stage, view model.View, selectedPatient string, theme Theme) {
	p.Clear(s)

	for _, f := range view.Floors {
		p.add(s, BuildFloorSlab(f, view.Beds, theme))
	}

	for _, b := range view.Beds {
		bed := BuildBed(b.Position, b.ID, theme)
		bed.Add(BuildBedIndicator(b.Status, theme))
		p.add(s, bed)
		p.Objects[*bed.Tag] = bed

		if b.Status != model.BedOccupied {
			continue
		}
		// bedside monitor on occupied ICU beds, decoration only
		if b.Floor == model.FloorICU {
			pos := b.Position
			pos.X += 1.3
			pos.Z -= 1.0
			mon := BuildEquipment(EquipmentMonitor, b.ID, pos, theme)
			mon.Tag = nil
			p.add(s, mon)
		}
	}

	for _, pt := range view.Patients {
		if pt.BedID == nil {
			continue
		}
		bed, ok := findBed(view.Beds, *pt.BedID)
		if !ok || bed.Status != model.BedOccupied {
			continue
		}
		n := BuildPatient(bed.Position, pt.ID, pt.Status, pt.ID == selectedPatient, theme)
		p.add(s, n)
		p.Objects[*n.Tag] = n
	}
}

func (p *Population) add(s *Stage, n *Node) {
	s.Add(n)
	p.nodes = append(p.nodes, n)
}

// Clear removes and disposes every node of the current generation.
func (p *Population) Clear(s *Stage) {
	for _, n := range p.nodes {
		s.Remove(n)
	}
	p.nodes = p.nodes[:0]
	p.Objects = make(map[Tag]*Node)
}

// Lookup returns the live node registered under tag.
func (p *Population) Lookup(tag Tag) (*Node, bool) {
	n, ok := p.Objects[tag]
	return n, ok
}

// Len returns the number of top-level nodes in the current generation.
func (p *Population) Len() int { return len(p.nodes) }

func findBed(beds []model.Bed, id string) (model.Bed, bool) {
	for _, b := range beds {
		if b.ID == id {
			return b, true
		}
	}
	return model.Bed{}, false
}

package kitchen

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Inventory is a snapshot of a kitchen's equipment and staff. The scheduler
// only ever reads it.
type Inventory struct {
	Ovens      []Oven      `yaml:"ovens" json:"ovens"`
	Burners    []Burner    `yaml:"burners" json:"burners"`
	Microwaves []Microwave `yaml:"microwaves" json:"microwaves"`
	Chefs      []Chef      `yaml:"chefs" json:"chefs"`
}

// Clone returns a deep copy of inv.
func (inv Inventory) Clone() Inventory {
	return Inventory{
		Ovens:      slices.Clone(inv.Ovens),
		Burners:    slices.Clone(inv.Burners),
		Microwaves: slices.Clone(inv.Microwaves),
		Chefs:      slices.Clone(inv.Chefs),
	}
}

// Validate fills attribute defaults and checks every entity. Ids must be
// unique across all equipment and chefs, since schedules refer to lanes by
// id alone.
func (inv *Inventory) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	claim := func(id string) {
		if id == "" {
			return
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("duplicate id %q", id))
		}
		seen[id] = true
	}

	for i := range inv.Ovens {
		inv.Ovens[i].applyDefaults()
		if err := inv.Ovens[i].validate(); err != nil {
			errs = append(errs, err)
		}
		claim(inv.Ovens[i].ID)
	}
	for i := range inv.Burners {
		inv.Burners[i].applyDefaults()
		if err := inv.Burners[i].validate(); err != nil {
			errs = append(errs, err)
		}
		claim(inv.Burners[i].ID)
	}
	for i := range inv.Microwaves {
		inv.Microwaves[i].applyDefaults()
		if err := inv.Microwaves[i].validate(); err != nil {
			errs = append(errs, err)
		}
		claim(inv.Microwaves[i].ID)
	}
	for i := range inv.Chefs {
		inv.Chefs[i].applyDefaults()
		if err := inv.Chefs[i].validate(); err != nil {
			errs = append(errs, err)
		}
		claim(inv.Chefs[i].ID)
	}

	return errors.Join(errs...)
}

func (inv Inventory) Oven(id string) (Oven, bool) {
	i := slices.IndexFunc(inv.Ovens, func(o Oven) bool { return o.ID == id })
	if i < 0 {
		return Oven{}, false
	}
	return inv.Ovens[i], true
}

func (inv Inventory) Burner(id string) (Burner, bool) {
	i := slices.IndexFunc(inv.Burners, func(b Burner) bool { return b.ID == id })
	if i < 0 {
		return Burner{}, false
	}
	return inv.Burners[i], true
}

func (inv Inventory) Microwave(id string) (Microwave, bool) {
	i := slices.IndexFunc(inv.Microwaves, func(m Microwave) bool { return m.ID == id })
	if i < 0 {
		return Microwave{}, false
	}
	return inv.Microwaves[i], true
}

func (inv Inventory) Chef(id string) (Chef, bool) {
	i := slices.IndexFunc(inv.Chefs, func(c Chef) bool { return c.ID == id })
	if i < 0 {
		return Chef{}, false
	}
	return inv.Chefs[i], true
}

// Unit is one schedulable piece of equipment, independent of its kind.
type Unit struct {
	ID       string
	Kind     Kind
	Capacity int
}

// Units returns the equipment of kind k sorted by id.
func (inv Inventory) Units(k Kind) []Unit {
	var out []Unit
	switch k {
	case KindOven:
		for _, o := range inv.Ovens {
			out = append(out, Unit{ID: o.ID, Kind: k, Capacity: o.Capacity})
		}
	case KindBurner:
		for _, b := range inv.Burners {
			out = append(out, Unit{ID: b.ID, Kind: k, Capacity: 1})
		}
	case KindMicrowave:
		for _, m := range inv.Microwaves {
			out = append(out, Unit{ID: m.ID, Kind: k, Capacity: 1})
		}
	}
	slices.SortFunc(out, func(a, b Unit) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Count returns how many instances of kind k the kitchen has.
func (inv Inventory) Count(k Kind) int {
	switch k {
	case KindOven:
		return len(inv.Ovens)
	case KindBurner:
		return len(inv.Burners)
	case KindMicrowave:
		return len(inv.Microwaves)
	case KindChef:
		return len(inv.Chefs)
	}
	return 0
}

// Capacity returns how many tasks the equipment or chef with the given id
// can run at once, and whether the id is known at all.
func (inv Inventory) Capacity(id string) (int, bool) {
	if o, ok := inv.Oven(id); ok {
		return o.Capacity, true
	}
	if _, ok := inv.Burner(id); ok {
		return 1, true
	}
	if _, ok := inv.Microwave(id); ok {
		return 1, true
	}
	if _, ok := inv.Chef(id); ok {
		return 1, true
	}
	return 0, false
}

package kitchen

import (
	"fmt"

	yaml "github.com/goccy/go-yaml"
)

// OvenPatch updates the oven with the matching id. Nil fields are left alone.
type OvenPatch struct {
	ID       string `yaml:"id" json:"id"`
	Capacity *int   `yaml:"capacity" json:"capacity,omitempty"`
	MaxTemp  *int   `yaml:"max_temp" json:"max_temp,omitempty"`
}

type BurnerPatch struct {
	ID   string      `yaml:"id" json:"id"`
	Type *BurnerType `yaml:"type" json:"type,omitempty"`
}

type MicrowavePatch struct {
	ID      string `yaml:"id" json:"id"`
	Wattage *int   `yaml:"wattage" json:"wattage,omitempty"`
}

type ChefPatch struct {
	ID     string       `yaml:"id" json:"id"`
	Role   *ChefRole    `yaml:"role" json:"role,omitempty"`
	Skill  *SkillLevel  `yaml:"skill_level" json:"skill_level,omitempty"`
	Energy *EnergyLevel `yaml:"energy_level" json:"energy_level,omitempty"`
}

// Overrides is a user's change set against a kitchen inventory. Patches
// address existing entities by id; a patch naming an unknown id adds a new
// entity, which then needs every required field. The Add lists append
// complete entities.
type Overrides struct {
	Ovens      []OvenPatch      `yaml:"ovens" json:"ovens,omitempty"`
	Burners    []BurnerPatch    `yaml:"burners" json:"burners,omitempty"`
	Microwaves []MicrowavePatch `yaml:"microwaves" json:"microwaves,omitempty"`
	Chefs      []ChefPatch      `yaml:"chefs" json:"chefs,omitempty"`

	AddOvens      []Oven      `yaml:"add_oven" json:"add_oven,omitempty"`
	AddBurners    []Burner    `yaml:"add_burner" json:"add_burner,omitempty"`
	AddMicrowaves []Microwave `yaml:"add_microwave" json:"add_microwave,omitempty"`
	AddChefs      []Chef      `yaml:"add_chef" json:"add_chef,omitempty"`
}

// Empty reports whether ov changes nothing.
func (ov Overrides) Empty() bool {
	return len(ov.Ovens)+len(ov.Burners)+len(ov.Microwaves)+len(ov.Chefs)+
		len(ov.AddOvens)+len(ov.AddBurners)+len(ov.AddMicrowaves)+len(ov.AddChefs) == 0
}

// OverrideError reports an override that could not be applied.
type OverrideError struct {
	Entity string
	ID     string
	Reason string
}

func (e *OverrideError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("override %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("override %s %q: %s", e.Entity, e.ID, e.Reason)
}

// DecodeOverrides parses YAML (or JSON) overrides. Fields outside the typed
// patch set are rejected.
func DecodeOverrides(data []byte) (Overrides, error) {
	var ov Overrides
	if err := yaml.UnmarshalWithOptions(data, &ov, yaml.DisallowUnknownField()); err != nil {
		return Overrides{}, &OverrideError{Entity: "document", Reason: err.Error()}
	}
	return ov, nil
}

// Merge applies ov on top of inv and returns the result. inv is not
// modified.
func Merge(inv Inventory, ov Overrides) (Inventory, error) {
	out := inv.Clone()

	for _, p := range ov.Ovens {
		if err := mergeOven(&out, p); err != nil {
			return Inventory{}, err
		}
	}
	for _, p := range ov.Burners {
		if err := mergeBurner(&out, p); err != nil {
			return Inventory{}, err
		}
	}
	for _, p := range ov.Microwaves {
		if err := mergeMicrowave(&out, p); err != nil {
			return Inventory{}, err
		}
	}
	for _, p := range ov.Chefs {
		if err := mergeChef(&out, p); err != nil {
			return Inventory{}, err
		}
	}

	out.Ovens = append(out.Ovens, ov.AddOvens...)
	out.Burners = append(out.Burners, ov.AddBurners...)
	out.Microwaves = append(out.Microwaves, ov.AddMicrowaves...)
	out.Chefs = append(out.Chefs, ov.AddChefs...)

	if err := out.Validate(); err != nil {
		return Inventory{}, &OverrideError{Entity: "inventory", Reason: err.Error()}
	}
	return out, nil
}

func mergeOven(inv *Inventory, p OvenPatch) error {
	if p.ID == "" {
		return &OverrideError{Entity: "oven", Reason: "patch without id"}
	}
	for i := range inv.Ovens {
		if inv.Ovens[i].ID != p.ID {
			continue
		}
		if p.Capacity != nil {
			inv.Ovens[i].Capacity = *p.Capacity
		}
		if p.MaxTemp != nil {
			inv.Ovens[i].MaxTemp = *p.MaxTemp
		}
		return nil
	}

	if p.Capacity == nil {
		return &OverrideError{Entity: "oven", ID: p.ID, Reason: "new oven needs a capacity"}
	}
	o := Oven{ID: p.ID, Capacity: *p.Capacity}
	if p.MaxTemp != nil {
		o.MaxTemp = *p.MaxTemp
	}
	inv.Ovens = append(inv.Ovens, o)
	return nil
}

func mergeBurner(inv *Inventory, p BurnerPatch) error {
	if p.ID == "" {
		return &OverrideError{Entity: "burner", Reason: "patch without id"}
	}
	for i := range inv.Burners {
		if inv.Burners[i].ID != p.ID {
			continue
		}
		if p.Type != nil {
			inv.Burners[i].Type = *p.Type
		}
		return nil
	}

	b := Burner{ID: p.ID}
	if p.Type != nil {
		b.Type = *p.Type
	}
	inv.Burners = append(inv.Burners, b)
	return nil
}

func mergeMicrowave(inv *Inventory, p MicrowavePatch) error {
	if p.ID == "" {
		return &OverrideError{Entity: "microwave", Reason: "patch without id"}
	}
	for i := range inv.Microwaves {
		if inv.Microwaves[i].ID != p.ID {
			continue
		}
		if p.Wattage != nil {
			inv.Microwaves[i].Wattage = *p.Wattage
		}
		return nil
	}

	m := Microwave{ID: p.ID}
	if p.Wattage != nil {
		m.Wattage = *p.Wattage
	}
	inv.Microwaves = append(inv.Microwaves, m)
	return nil
}

func mergeChef(inv *Inventory, p ChefPatch) error {
	if p.ID == "" {
		return &OverrideError{Entity: "chef", Reason: "patch without id"}
	}
	for i := range inv.Chefs {
		if inv.Chefs[i].ID != p.ID {
			continue
		}
		if p.Role != nil {
			inv.Chefs[i].Role = *p.Role
		}
		if p.Skill != nil {
			inv.Chefs[i].Skill = *p.Skill
		}
		if p.Energy != nil {
			inv.Chefs[i].Energy = *p.Energy
		}
		return nil
	}

	if p.Role == nil {
		return &OverrideError{Entity: "chef", ID: p.ID, Reason: "new chef needs a role"}
	}
	c := Chef{ID: p.ID, Role: *p.Role}
	if p.Skill != nil {
		c.Skill = *p.Skill
	}
	if p.Energy != nil {
		c.Energy = *p.Energy
	}
	inv.Chefs = append(inv.Chefs, c)
	return nil
}

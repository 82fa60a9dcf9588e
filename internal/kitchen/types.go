package kitchen

import "fmt"

// Kind names a class of equipment a task can require.
type Kind string

const (
	KindNone      Kind = "none"
	KindOven      Kind = "oven"
	KindBurner    Kind = "burner"
	KindMicrowave Kind = "microwave"
	// KindChef labels chef lanes and staffing shortages.
	KindChef Kind = "chef"
)

// Valid reports whether k is a kind a task may declare as its requirement.
func (k Kind) Valid() bool {
	switch k {
	case KindNone, KindOven, KindBurner, KindMicrowave:
		return true
	}
	return false
}

// TaskType classifies the work a task performs. It drives the chef
// duration multiplier.
type TaskType string

const (
	TaskPrep    TaskType = "prep"
	TaskCook    TaskType = "cook"
	TaskPassive TaskType = "passive"
	TaskPlate   TaskType = "plate"
)

func (t TaskType) Valid() bool {
	switch t {
	case TaskPrep, TaskCook, TaskPassive, TaskPlate:
		return true
	}
	return false
}

type BurnerType string

const (
	BurnerGas       BurnerType = "gas"
	BurnerElectric  BurnerType = "electric"
	BurnerInduction BurnerType = "induction"
)

type ChefRole string

const (
	RolePrep    ChefRole = "prep"
	RoleCook    ChefRole = "cook"
	RoleGeneral ChefRole = "general"
	RoleServer  ChefRole = "server"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillExpert       SkillLevel = "expert"
)

type EnergyLevel string

const (
	EnergyFresh     EnergyLevel = "fresh"
	EnergyTired     EnergyLevel = "tired"
	EnergyExhausted EnergyLevel = "exhausted"
)

// Defaults and accepted ranges for equipment attributes.
const (
	DefaultMaxTemp = 500
	MinMaxTemp     = 200
	MaxMaxTemp     = 1000

	DefaultWattage = 1000
	MinWattage     = 500
	MaxWattage     = 2000
)

// Oven holds up to Capacity items at once.
type Oven struct {
	ID       string `yaml:"id" json:"id"`
	Capacity int    `yaml:"capacity" json:"capacity"`
	MaxTemp  int    `yaml:"max_temp" json:"max_temp"`
}

// Burner runs one task at a time.
type Burner struct {
	ID   string     `yaml:"id" json:"id"`
	Type BurnerType `yaml:"type" json:"type"`
}

// Microwave runs one task at a time.
type Microwave struct {
	ID      string `yaml:"id" json:"id"`
	Wattage int    `yaml:"wattage" json:"wattage"`
}

// Chef works one task at a time. How fast depends on skill and energy,
// see Multiplier.
type Chef struct {
	ID     string      `yaml:"id" json:"id"`
	Role   ChefRole    `yaml:"role" json:"role"`
	Skill  SkillLevel  `yaml:"skill_level" json:"skill_level"`
	Energy EnergyLevel `yaml:"energy_level" json:"energy_level"`
}

func (o *Oven) applyDefaults() {
	if o.MaxTemp == 0 {
		o.MaxTemp = DefaultMaxTemp
	}
}

func (o Oven) validate() error {
	switch {
	case o.ID == "":
		return fmt.Errorf("oven: empty id")
	case o.Capacity < 1:
		return fmt.Errorf("oven %q: capacity %d must be at least 1", o.ID, o.Capacity)
	case o.MaxTemp < MinMaxTemp || o.MaxTemp > MaxMaxTemp:
		return fmt.Errorf("oven %q: max_temp %d outside [%d, %d]", o.ID, o.MaxTemp, MinMaxTemp, MaxMaxTemp)
	}
	return nil
}

func (b *Burner) applyDefaults() {
	if b.Type == "" {
		b.Type = BurnerGas
	}
}

func (b Burner) validate() error {
	if b.ID == "" {
		return fmt.Errorf("burner: empty id")
	}
	switch b.Type {
	case BurnerGas, BurnerElectric, BurnerInduction:
		return nil
	}
	return fmt.Errorf("burner %q: unknown type %q", b.ID, b.Type)
}

func (m *Microwave) applyDefaults() {
	if m.Wattage == 0 {
		m.Wattage = DefaultWattage
	}
}

func (m Microwave) validate() error {
	switch {
	case m.ID == "":
		return fmt.Errorf("microwave: empty id")
	case m.Wattage < MinWattage || m.Wattage > MaxWattage:
		return fmt.Errorf("microwave %q: wattage %d outside [%d, %d]", m.ID, m.Wattage, MinWattage, MaxWattage)
	}
	return nil
}

func (c *Chef) applyDefaults() {
	if c.Skill == "" {
		c.Skill = SkillIntermediate
	}
	if c.Energy == "" {
		c.Energy = EnergyFresh
	}
}

func (c Chef) validate() error {
	if c.ID == "" {
		return fmt.Errorf("chef: empty id")
	}
	switch c.Role {
	case RolePrep, RoleCook, RoleGeneral, RoleServer:
	default:
		return fmt.Errorf("chef %q: unknown role %q", c.ID, c.Role)
	}
	switch c.Skill {
	case SkillBeginner, SkillIntermediate, SkillExpert:
	default:
		return fmt.Errorf("chef %q: unknown skill_level %q", c.ID, c.Skill)
	}
	switch c.Energy {
	case EnergyFresh, EnergyTired, EnergyExhausted:
	default:
		return fmt.Errorf("chef %q: unknown energy_level %q", c.ID, c.Energy)
	}
	return nil
}

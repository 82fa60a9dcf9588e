package kitchen

// Multiplier returns the factor applied to a task's base duration when c
// performs it. Skill and energy factors compose multiplicatively.
//
//	task     tired  exhausted  beginner  expert
//	prep     1.3    1.6        -         -
//	cook     1.15   1.3        1.2       0.9
//	passive  -      1.1        -         -
//	plate    1.2    1.4        1.15      -
func (c Chef) Multiplier(t TaskType) float64 {
	m := 1.0

	switch t {
	case TaskPrep:
		switch c.Energy {
		case EnergyTired:
			m *= 1.3
		case EnergyExhausted:
			m *= 1.6
		}
	case TaskCook:
		switch c.Skill {
		case SkillBeginner:
			m *= 1.2
		case SkillExpert:
			m *= 0.9
		}
		switch c.Energy {
		case EnergyTired:
			m *= 1.15
		case EnergyExhausted:
			m *= 1.3
		}
	case TaskPassive:
		if c.Energy == EnergyExhausted {
			m *= 1.1
		}
	case TaskPlate:
		if c.Skill == SkillBeginner {
			m *= 1.15
		}
		switch c.Energy {
		case EnergyTired:
			m *= 1.2
		case EnergyExhausted:
			m *= 1.4
		}
	}

	return m
}

// RoleFor is the chef role that matches t exactly.
func RoleFor(t TaskType) ChefRole {
	switch t {
	case TaskPrep:
		return RolePrep
	case TaskPlate:
		return RoleServer
	default:
		// cooking and passive tending both sit with the line cook
		return RoleCook
	}
}

// RoleRank orders chefs for t: 0 for an exact role match, 1 for a general
// chef, 2 for anyone else.
func (c Chef) RoleRank(t TaskType) int {
	switch c.Role {
	case RoleFor(t):
		return 0
	case RoleGeneral:
		return 1
	default:
		return 2
	}
}

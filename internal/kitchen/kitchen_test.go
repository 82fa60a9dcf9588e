package kitchen

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset_Counts(t *testing.T) {
	tests := []struct {
		name                             string
		ovens, burners, microwaves, chef int
	}{
		{"home", 1, 4, 1, 1},
		{"small_restaurant", 2, 6, 2, 2},
		{"commercial", 4, 8, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Preset(tt.name)
			require.NoError(t, err)
			assert.Len(t, inv.Ovens, tt.ovens)
			assert.Len(t, inv.Burners, tt.burners)
			assert.Len(t, inv.Microwaves, tt.microwaves)
			assert.Len(t, inv.Chefs, tt.chef)
		})
	}
}

func TestPreset_DefaultAndUnknown(t *testing.T) {
	inv, err := Preset("")
	require.NoError(t, err)
	assert.Len(t, inv.Ovens, 2, "default preset is small_restaurant")

	_, err = Preset("food_truck")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "food_truck")
}

func TestPreset_ReturnsCopy(t *testing.T) {
	a, err := Preset("home")
	require.NoError(t, err)
	a.Ovens[0].Capacity = 99

	b, err := Preset("home")
	require.NoError(t, err)
	assert.NotEqual(t, 99, b.Ovens[0].Capacity)
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name string
		chef Chef
		task TaskType
		want float64
	}{
		{"fresh prep", Chef{Skill: SkillIntermediate, Energy: EnergyFresh}, TaskPrep, 1.0},
		{"tired prep", Chef{Skill: SkillIntermediate, Energy: EnergyTired}, TaskPrep, 1.3},
		{"exhausted prep", Chef{Skill: SkillIntermediate, Energy: EnergyExhausted}, TaskPrep, 1.6},
		{"beginner prep ignores skill", Chef{Skill: SkillBeginner, Energy: EnergyFresh}, TaskPrep, 1.0},
		{"expert cook", Chef{Skill: SkillExpert, Energy: EnergyFresh}, TaskCook, 0.9},
		{"beginner tired cook", Chef{Skill: SkillBeginner, Energy: EnergyTired}, TaskCook, 1.2 * 1.15},
		{"expert exhausted cook", Chef{Skill: SkillExpert, Energy: EnergyExhausted}, TaskCook, 0.9 * 1.3},
		{"tired passive", Chef{Skill: SkillBeginner, Energy: EnergyTired}, TaskPassive, 1.0},
		{"exhausted passive", Chef{Skill: SkillIntermediate, Energy: EnergyExhausted}, TaskPassive, 1.1},
		{"beginner tired plate", Chef{Skill: SkillBeginner, Energy: EnergyTired}, TaskPlate, 1.15 * 1.2},
		{"expert exhausted plate", Chef{Skill: SkillExpert, Energy: EnergyExhausted}, TaskPlate, 1.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.chef.Multiplier(tt.task), 1e-9)
		})
	}
}

func TestMultiplier_PrepMonotonicInEnergy(t *testing.T) {
	for _, skill := range []SkillLevel{SkillBeginner, SkillIntermediate, SkillExpert} {
		fresh := Chef{Skill: skill, Energy: EnergyFresh}.Multiplier(TaskPrep)
		tired := Chef{Skill: skill, Energy: EnergyTired}.Multiplier(TaskPrep)
		exhausted := Chef{Skill: skill, Energy: EnergyExhausted}.Multiplier(TaskPrep)
		assert.Less(t, fresh, tired, string(skill))
		assert.Less(t, tired, exhausted, string(skill))
	}
}

func TestRoleRank(t *testing.T) {
	prep := Chef{Role: RolePrep}
	general := Chef{Role: RoleGeneral}
	server := Chef{Role: RoleServer}

	assert.Equal(t, 0, prep.RoleRank(TaskPrep))
	assert.Equal(t, 1, general.RoleRank(TaskPrep))
	assert.Equal(t, 2, server.RoleRank(TaskPrep))
	assert.Equal(t, 0, server.RoleRank(TaskPlate))
}

func TestInventory_ValidateDefaultsAndErrors(t *testing.T) {
	inv := Inventory{
		Ovens:      []Oven{{ID: "o1", Capacity: 2}},
		Burners:    []Burner{{ID: "b1"}},
		Microwaves: []Microwave{{ID: "m1"}},
		Chefs:      []Chef{{ID: "c1", Role: RoleCook}},
	}
	require.NoError(t, inv.Validate())
	assert.Equal(t, DefaultMaxTemp, inv.Ovens[0].MaxTemp)
	assert.Equal(t, BurnerGas, inv.Burners[0].Type)
	assert.Equal(t, DefaultWattage, inv.Microwaves[0].Wattage)
	assert.Equal(t, SkillIntermediate, inv.Chefs[0].Skill)
	assert.Equal(t, EnergyFresh, inv.Chefs[0].Energy)

	bad := Inventory{
		Ovens:   []Oven{{ID: "o1", Capacity: 0}},
		Burners: []Burner{{ID: "o1"}},
	}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")
	assert.Contains(t, err.Error(), `duplicate id "o1"`)
}

func TestInventory_UnitsSortedAndCapacity(t *testing.T) {
	inv := Inventory{
		Ovens:   []Oven{{ID: "oven_b", Capacity: 2}, {ID: "oven_a", Capacity: 1}},
		Burners: []Burner{{ID: "burner_1"}},
		Chefs:   []Chef{{ID: "chef_1", Role: RoleCook}},
	}
	units := inv.Units(KindOven)
	require.Len(t, units, 2)
	assert.Equal(t, "oven_a", units[0].ID)
	assert.Equal(t, 2, units[1].Capacity)
	assert.Empty(t, inv.Units(KindMicrowave))

	c, ok := inv.Capacity("oven_b")
	assert.True(t, ok)
	assert.Equal(t, 2, c)
	c, ok = inv.Capacity("chef_1")
	assert.True(t, ok)
	assert.Equal(t, 1, c)
	_, ok = inv.Capacity("nope")
	assert.False(t, ok)

	assert.Equal(t, 1, inv.Count(KindChef))
}

func TestMerge_UpdateAndAdd(t *testing.T) {
	base, err := Preset("home")
	require.NoError(t, err)

	four := 4
	tired := EnergyTired
	merged, err := Merge(base, Overrides{
		Ovens:    []OvenPatch{{ID: "oven_1", Capacity: &four}},
		Chefs:    []ChefPatch{{ID: "chef_1", Energy: &tired}},
		AddOvens: []Oven{{ID: "oven_2", Capacity: 3, MaxTemp: 550}},
	})
	require.NoError(t, err)

	o, ok := merged.Oven("oven_1")
	require.True(t, ok)
	assert.Equal(t, 4, o.Capacity)
	o2, ok := merged.Oven("oven_2")
	require.True(t, ok)
	assert.Equal(t, 550, o2.MaxTemp)
	c, _ := merged.Chef("chef_1")
	assert.Equal(t, EnergyTired, c.Energy)

	// the input snapshot is untouched
	o, _ = base.Oven("oven_1")
	assert.NotEqual(t, 4, o.Capacity)
	assert.Len(t, base.Ovens, 1)
}

func TestMerge_PatchUnknownIDAddsEntity(t *testing.T) {
	base, err := Preset("home")
	require.NoError(t, err)

	cook := RoleCook
	merged, err := Merge(base, Overrides{Chefs: []ChefPatch{{ID: "chef_9", Role: &cook}}})
	require.NoError(t, err)
	c, ok := merged.Chef("chef_9")
	require.True(t, ok)
	assert.Equal(t, SkillIntermediate, c.Skill)

	_, err = Merge(base, Overrides{Chefs: []ChefPatch{{ID: "chef_10"}}})
	var oe *OverrideError
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "chef_10", oe.ID)
}

func TestMerge_InvalidValueRejected(t *testing.T) {
	base, err := Preset("home")
	require.NoError(t, err)

	zero := 0
	_, err = Merge(base, Overrides{Ovens: []OvenPatch{{ID: "oven_1", Capacity: &zero}}})
	var oe *OverrideError
	require.True(t, errors.As(err, &oe))
	assert.Contains(t, err.Error(), "capacity")
}

func TestDecodeOverrides(t *testing.T) {
	ov, err := DecodeOverrides([]byte(`
ovens:
  - id: oven_1
    capacity: 4
add_chef:
  - id: chef_2
    role: prep
    energy_level: tired
`))
	require.NoError(t, err)
	require.Len(t, ov.Ovens, 1)
	require.NotNil(t, ov.Ovens[0].Capacity)
	assert.Equal(t, 4, *ov.Ovens[0].Capacity)
	require.Len(t, ov.AddChefs, 1)
	assert.Equal(t, EnergyTired, ov.AddChefs[0].Energy)
	assert.False(t, ov.Empty())
}

func TestDecodeOverrides_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeOverrides([]byte(`
ovens:
  - id: oven_1
    colour: red
`))
	var oe *OverrideError
	require.True(t, errors.As(err, &oe))

	_, err = DecodeOverrides([]byte(`fridges: [{id: f1}]`))
	require.Error(t, err)
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	r, err := NewRegistry("home")
	require.NoError(t, err)
	assert.Equal(t, "home", r.Preset())

	snap := r.Snapshot()
	three := 3
	_, err = r.Update(Overrides{Ovens: []OvenPatch{{ID: "oven_1", Capacity: &three}}})
	require.NoError(t, err)

	o, _ := snap.Oven("oven_1")
	assert.NotEqual(t, 3, o.Capacity, "earlier snapshot must not change")
	o, _ = r.Snapshot().Oven("oven_1")
	assert.Equal(t, 3, o.Capacity)

	inv, err := r.Reset("")
	require.NoError(t, err)
	o, _ = inv.Oven("oven_1")
	assert.NotEqual(t, 3, o.Capacity)

	_, err = r.Reset("commercial")
	require.NoError(t, err)
	assert.Equal(t, "commercial", r.Preset())
	assert.Len(t, r.Snapshot().Chefs, 5)
}

func TestRegistry_FailedUpdateKeepsState(t *testing.T) {
	r, err := NewRegistry("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPreset(), r.Preset())

	before := r.Snapshot()
	_, err = r.Update(Overrides{AddBurners: []Burner{{ID: "burner_1"}}})
	require.Error(t, err, "duplicate burner id")
	assert.Equal(t, before, r.Snapshot())
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	r, err := NewRegistry("commercial")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := r.Snapshot()
			snap.Chefs[0].Energy = EnergyExhausted
		}()
	}
	wg.Wait()

	c, _ := r.Snapshot().Chef("chef_1")
	assert.Equal(t, EnergyFresh, c.Energy)
}

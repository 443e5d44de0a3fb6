package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupingValidation(t *testing.T) {
	type Stray struct{ Q int }
	strayKind := FactoryNewComponent[Stray]()
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		kinds []Kind
	}{
		{"No kinds", nil},
		{"Single kind", []Kind{posKind}},
		{"Duplicate kind", []Kind{posKind, posKind}},
		{"Undeclared kind", []Kind{posKind, strayKind}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := reg.CreateGrouping(tt.kinds...)
			assert.Error(t, err)
			assert.Nil(t, g)
		})
	}
}

func TestGroupingSnapshotsExisting(t *testing.T) {
	reg := newTestRegistry(t)
	_, err := reg.CreateMany(4, posKind.With(Position{}), velKind.With(Velocity{}))
	require.NoError(t, err)
	_, err = reg.CreateMany(6, posKind.With(Position{}))
	require.NoError(t, err)

	g, err := reg.CreateGrouping(posKind, velKind)
	require.NoError(t, err)
	assert.True(t, g.Valid())
	assert.Equal(t, 4, g.Size())
	checkConsistency(t, reg)
}

func TestGroupingIncrementalMaintenance(t *testing.T) {
	reg := newTestRegistry(t)
	g, err := reg.CreateGrouping(posKind, velKind, frozenTag)
	require.NoError(t, err)

	e := mustCreate(t, reg, posKind.With(Position{}))
	assert.Equal(t, 0, g.Size())

	// Membership appears only when the last required bit lands.
	_, _, err = AddComponent(&e, velKind, Velocity{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
	_, err = reg.SetTag(&e, frozenTag, true)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Size())
	checkConsistency(t, reg)

	// An unrelated bit only refreshes the snapshot.
	_, _, err = AddComponent(&e, healthKind, Health{Max: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, g.Size())
	checkConsistency(t, reg)

	// Losing any required bit evicts.
	_, err = reg.SetTag(&e, frozenTag, false)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Size())
	checkConsistency(t, reg)

	// And regaining it re-admits.
	_, err = reg.SetTag(&e, frozenTag, true)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Size())

	require.NoError(t, reg.Destroy(&e))
	assert.Equal(t, 0, g.Size())
	checkConsistency(t, reg)
}

// TestGroupingChurn interleaves creation, mutation and destruction across
// many entities and re-verifies the grouping invariant after each phase.
func TestGroupingChurn(t *testing.T) {
	reg := newTestRegistry(t)
	g, err := reg.CreateGrouping(posKind, velKind)
	require.NoError(t, err)

	entities := make([]Entity, 0, 60)
	for i := 0; i < 60; i++ {
		var e Entity
		switch i % 3 {
		case 0:
			e = mustCreate(t, reg, posKind.With(Position{X: float64(i)}))
		case 1:
			e = mustCreate(t, reg, posKind.With(Position{}), velKind.With(Velocity{}))
		case 2:
			e = mustCreate(t, reg, velKind.With(Velocity{}), frozenTag)
		}
		entities = append(entities, e)
	}
	assert.Equal(t, 20, g.Size())
	checkConsistency(t, reg)

	for i := range entities {
		e := &entities[i]
		switch i % 4 {
		case 0:
			_, _, err := AddComponent(e, velKind, Velocity{X: 1})
			require.NoError(t, err)
		case 1:
			_, err := RemoveComponent(e, posKind)
			require.NoError(t, err)
		case 2:
			_, err := reg.SetTag(e, activeTag, true)
			require.NoError(t, err)
		case 3:
			require.NoError(t, reg.Destroy(e))
		}
	}
	checkConsistency(t, reg)
}

func TestGroupingDestroy(t *testing.T) {
	reg := newTestRegistry(t)
	mustCreate(t, reg, posKind.With(Position{}), velKind.With(Velocity{}))

	g, err := reg.CreateGrouping(posKind, velKind)
	require.NoError(t, err)
	require.True(t, g.Valid())

	assert.True(t, g.Destroy())
	assert.False(t, g.Valid())
	assert.Equal(t, 0, g.Size())

	// A second destroy is a safe no-op.
	assert.False(t, g.Destroy())

	// Destroying a grouping never touches the underlying data.
	entities, err := reg.GetEntities(posKind, velKind)
	require.NoError(t, err)
	assert.Len(t, entities, 1)
	checkConsistency(t, reg)
}

package registry

import (
	"errors"
	"testing"
)

func TestQueryCompleteness(t *testing.T) {
	type entitySetup struct {
		attachments []Attachment
		count       int
	}

	setups := []entitySetup{
		{[]Attachment{posKind.With(Position{}), velKind.With(Velocity{})}, 5},
		{[]Attachment{posKind.With(Position{})}, 10},
		{[]Attachment{velKind.With(Velocity{})}, 15},
		{[]Attachment{posKind.With(Position{}), velKind.With(Velocity{}), frozenTag}, 3},
		{[]Attachment{healthKind.With(Health{Max: 10})}, 7},
	}

	tests := []struct {
		name        string
		kinds       []Kind
		wantMatches int
	}{
		{"Two components", []Kind{posKind, velKind}, 8},
		{"Single component", []Kind{posKind}, 18},
		{"Single tag", []Kind{frozenTag}, 3},
		{"Component and tag", []Kind{velKind, frozenTag}, 3},
		{"Empty query matches everything", nil, 40},
		{"No matches", []Kind{healthKind, frozenTag}, 0},
	}

	// The same queries must agree regardless of which candidate set serves
	// them, so run every case with and without an explicit grouping.
	for _, withGrouping := range []bool{false, true} {
		name := "from stores"
		if withGrouping {
			name = "from grouping"
		}
		t.Run(name, func(t *testing.T) {
			reg := newTestRegistry(t)
			if withGrouping {
				if _, err := reg.CreateGrouping(posKind, velKind); err != nil {
					t.Fatalf("CreateGrouping() error = %v", err)
				}
			}
			for _, setup := range setups {
				if _, err := reg.CreateMany(setup.count, setup.attachments...); err != nil {
					t.Fatalf("CreateMany() error = %v", err)
				}
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					entities, err := reg.GetEntities(tt.kinds...)
					if err != nil {
						t.Fatalf("GetEntities() error = %v", err)
					}
					if len(entities) != tt.wantMatches {
						t.Errorf("GetEntities() returned %d entities, want %d", len(entities), tt.wantMatches)
					}
					for i, e := range entities {
						for _, k := range tt.kinds {
							if !e.Has(k) {
								t.Errorf("entity %d missing queried kind %s", e.ID(), k.Name())
							}
						}
						if i > 0 && entities[i-1].Compare(e) >= 0 {
							t.Errorf("results out of identity order at %d", i)
						}
					}
				})
			}
			checkConsistency(t, reg)
		})
	}
}

func TestQueryValidation(t *testing.T) {
	type Stray struct{ Q int }
	strayKind := FactoryNewComponent[Stray]()
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		kinds []Kind
	}{
		{"Undeclared kind", []Kind{strayKind}},
		{"Duplicate kind", []Kind{posKind, posKind}},
		{"Nil kind", []Kind{nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.GetEntities(tt.kinds...)
			var invalid InvalidComponentError
			if !errors.As(err, &invalid) {
				t.Errorf("GetEntities() error = %v, want InvalidComponentError", err)
			}
		})
	}
}

func TestQueryReflectsMutation(t *testing.T) {
	reg := newTestRegistry(t)
	e := mustCreate(t, reg, posKind.With(Position{}))

	entities, err := reg.GetEntities(posKind, velKind)
	if err != nil {
		t.Fatalf("GetEntities() error = %v", err)
	}
	if len(entities) != 0 {
		t.Fatalf("GetEntities() = %d entities, want 0", len(entities))
	}

	if _, _, err := AddComponent(&e, velKind, Velocity{X: 1}); err != nil {
		t.Fatalf("AddComponent() error = %v", err)
	}
	entities, err = reg.GetEntities(posKind, velKind)
	if err != nil {
		t.Fatalf("GetEntities() error = %v", err)
	}
	if len(entities) != 1 || entities[0].ID() != e.ID() {
		t.Fatalf("GetEntities() after add = %v, want just entity %d", entities, e.ID())
	}

	if _, err := RemoveComponent(&e, velKind); err != nil {
		t.Fatalf("RemoveComponent() error = %v", err)
	}
	entities, err = reg.GetEntities(posKind, velKind)
	if err != nil {
		t.Fatalf("GetEntities() error = %v", err)
	}
	if len(entities) != 0 {
		t.Errorf("GetEntities() after remove = %d entities, want 0", len(entities))
	}
}

func TestAllSequence(t *testing.T) {
	reg := newTestRegistry(t)
	created, err := reg.CreateMany(10, posKind.With(Position{}))
	if err != nil {
		t.Fatalf("CreateMany() error = %v", err)
	}

	seq, err := reg.All(posKind)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	i := 0
	for e := range seq {
		if e.ID() != created[i].ID() {
			t.Errorf("All() yielded %d at %d, want %d", e.ID(), i, created[i].ID())
		}
		i++
		if i == 3 {
			break // early stop must be clean
		}
	}
	if i != 3 {
		t.Errorf("All() yielded %d entities before break, want 3", i)
	}
}

package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func without(template []Seat, drop ...Seat) []Seat {
	out := make([]Seat, 0, len(template))
	for _, s := range template {
		if !Contains(drop, s) {
			out = append(out, s)
		}
	}
	return out
}

func TestDefaultTemplate(t *testing.T) {
	tpl := DefaultTemplate()
	require.Len(t, tpl, 100)
	assert.Equal(t, Seat{Row: "A", Number: 1}, tpl[0])
	assert.Equal(t, Seat{Row: "A", Number: 10}, tpl[9])
	assert.Equal(t, Seat{Row: "B", Number: 1}, tpl[10])
	assert.Equal(t, Seat{Row: "J", Number: 10}, tpl[99])
	assert.Equal(t, "J10", tpl[99].ID())

	tpl[0].Row = "Z"
	assert.Equal(t, "A", DefaultTemplate()[0].Row, "callers get a copy")
}

func TestBuildGridPartitionsTemplate(t *testing.T) {
	tpl := DefaultTemplate()
	cases := []struct {
		name     string
		reserved []Seat
	}{
		{"nothing reserved", nil},
		{"two reserved", []Seat{{"A", 1}, {"A", 2}}},
		{"whole row reserved", tpl[20:30]},
		{"everything reserved", tpl},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			available := without(tpl, tc.reserved...)
			g := BuildGrid(tpl, available, nil)

			reservedCount := 0
			for _, c := range g.Cells {
				if c.Reserved {
					reservedCount++
					assert.True(t, Contains(tc.reserved, c.Seat), c.Label)
				} else {
					assert.False(t, Contains(tc.reserved, c.Seat), c.Label)
				}
			}
			assert.Equal(t, len(tc.reserved), reservedCount)
			assert.Equal(t, len(tpl), g.Available()+reservedCount)
		})
	}
}

func TestBuildGridDimensionsAndIndexing(t *testing.T) {
	tpl := DefaultTemplate()
	g := BuildGrid(tpl, tpl, []Seat{{"C", 4}})

	assert.Equal(t, 10, g.Rows)
	assert.Equal(t, 10, g.Columns)

	cell, ok := g.At(2, 3)
	require.True(t, ok)
	assert.Equal(t, "C4", cell.Label)
	assert.True(t, cell.Chosen)

	_, ok = g.At(10, 0)
	assert.False(t, ok)
	_, ok = g.At(0, -1)
	assert.False(t, ok)
}

func TestBuildGridIrregularTemplateDoesNotPanic(t *testing.T) {
	tpl := []Seat{{"A", 1}, {"A", 2}, {"A", 3}, {"B", 1}}
	g := BuildGrid(tpl, tpl, nil)
	assert.Equal(t, 2, g.Rows)
	assert.Equal(t, 3, g.Columns)
	_, ok := g.At(1, 2)
	assert.False(t, ok)
}

func TestToggleTwiceRestoresSelection(t *testing.T) {
	start := []Seat{{"A", 3}, {"D", 7}}
	for _, s := range []Seat{{"B", 5}, {"A", 3}} {
		once := Toggle(start, s)
		twice := Toggle(once, s)
		assert.ElementsMatch(t, start, twice)
	}
	assert.Equal(t, []Seat{{"A", 3}, {"D", 7}}, start, "input is not modified")
}

func TestReservedScenario(t *testing.T) {
	tpl := DefaultTemplate()
	reserved := []Seat{{"A", 1}, {"A", 2}}
	available := without(tpl, reserved...)

	var chosen []Seat
	chosen = Toggle(chosen, Seat{"B", 5})
	chosen = Toggle(chosen, Seat{"B", 5})

	g := BuildGrid(tpl, available, chosen)
	assert.Empty(t, chosen)
	for _, c := range g.Cells {
		assert.Equal(t, Contains(reserved, c.Seat), c.Reserved, c.Label)
		assert.False(t, c.Chosen)
	}
	assert.Equal(t, reserved, ReservedSet(tpl, available))
}

func TestSelectAllAvailable(t *testing.T) {
	tpl := DefaultTemplate()
	reserved := []Seat{{"A", 1}, {"J", 10}}
	all := SelectAllAvailable(tpl, reserved)
	assert.Len(t, all, 98)
	assert.Equal(t, Seat{"A", 2}, all[0])
	assert.Equal(t, Seat{"J", 9}, all[len(all)-1])
	for _, r := range reserved {
		assert.False(t, Contains(all, r))
	}
}

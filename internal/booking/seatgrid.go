// Package booking holds the checkout workflow of the storefront: seat map
// construction, showtime selection, the concession cart and composition
// of the order payload.  Nothing in this package performs I/O; the
// handler layer fetches data and feeds it in.
package booking

import (
	"strconv"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// Seat identifies a seat by row letter and number.
type Seat struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
}

// ID returns the display identity of the seat, e.g. "B5".
func (s Seat) ID() string { return s.Row + strconv.Itoa(s.Number) }

// FromModel converts a backend seat to a booking seat.
func FromModel(m model.Seat) Seat { return Seat{Row: m.RowName, Number: m.SeatNumber} }

// FromModels converts a slice of backend seats.
func FromModels(ms []model.Seat) []Seat {
	out := make([]Seat, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

const (
	templateRows    = 10
	templateColumns = 10
)

// defaultTemplate is the layout of every room: rows A-J, seats 1-10.
var defaultTemplate = buildTemplate(templateRows, templateColumns)

func buildTemplate(rows, cols int) []Seat {
	seats := make([]Seat, 0, rows*cols)
	for r := 0; r < rows; r++ {
		row := string(rune('A' + r))
		for c := 1; c <= cols; c++ {
			seats = append(seats, Seat{Row: row, Number: c})
		}
	}
	return seats
}

// DefaultTemplate returns a copy of the 10x10 room template in row-major
// order.
func DefaultTemplate() []Seat {
	out := make([]Seat, len(defaultTemplate))
	copy(out, defaultTemplate)
	return out
}

// Cell is one position of the seat map.
type Cell struct {
	Seat
	Label    string `json:"id"`
	Reserved bool   `json:"reserved"`
	Chosen   bool   `json:"chosen"`
}

// Grid is a row-major seat map.  Cells[i] sits at row i/Columns, column
// i%Columns.
type Grid struct {
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Cells   []Cell `json:"cells"`
}

// At returns the cell at (row, col).  The second result is false when the
// position falls outside the cells, which happens for non-rectangular
// templates.
func (g Grid) At(row, col int) (Cell, bool) {
	if row < 0 || col < 0 || col >= g.Columns || row >= g.Rows {
		return Cell{}, false
	}
	i := row*g.Columns + col
	if i >= len(g.Cells) {
		return Cell{}, false
	}
	return g.Cells[i], true
}

// Available counts the cells that are not reserved.
func (g Grid) Available() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Reserved {
			n++
		}
	}
	return n
}

func seatSet(seats []Seat) map[Seat]struct{} {
	m := make(map[Seat]struct{}, len(seats))
	for _, s := range seats {
		m[s] = struct{}{}
	}
	return m
}

// BuildGrid derives the seat map from the room template, the seats the
// backend reported as available for the showtime and the user's current
// choice.  A template seat missing from available is reserved.
func BuildGrid(template, available, chosen []Seat) Grid {
	free := seatSet(available)
	picked := seatSet(chosen)

	rows := make(map[string]struct{})
	columns := 0
	cells := make([]Cell, 0, len(template))
	for _, s := range template {
		rows[s.Row] = struct{}{}
		if s.Number > columns {
			columns = s.Number
		}
		_, isFree := free[s]
		_, isChosen := picked[s]
		cells = append(cells, Cell{Seat: s, Label: s.ID(), Reserved: !isFree, Chosen: isChosen})
	}
	return Grid{Rows: len(rows), Columns: columns, Cells: cells}
}

// ReservedSet returns the template seats absent from available, in
// template order.
func ReservedSet(template, available []Seat) []Seat {
	free := seatSet(available)
	out := make([]Seat, 0)
	for _, s := range template {
		if _, ok := free[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// Toggle flips s in chosen and returns the new selection.  The input slice
// is not modified.  Reservation is not checked here; see
// Checkout.ToggleSeat.
func Toggle(chosen []Seat, s Seat) []Seat {
	out := make([]Seat, 0, len(chosen)+1)
	found := false
	for _, c := range chosen {
		if c == s {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, s)
	}
	return out
}

// SelectAllAvailable returns every template seat not in reserved, in
// template order.
func SelectAllAvailable(template, reserved []Seat) []Seat {
	taken := seatSet(reserved)
	out := make([]Seat, 0, len(template))
	for _, s := range template {
		if _, ok := taken[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// Contains reports whether s is in seats.
func Contains(seats []Seat, s Seat) bool {
	for _, c := range seats {
		if c == s {
			return true
		}
	}
	return false
}

// Package move holds the optional move type returned by the solver.
package move

import (
	"fmt"
	"strconv"
)

// Move is a cell on the board, or no move at all. The zero value is None,
// so a Move that was never set can't be mistaken for cell 0.
type Move struct {
	cell  int8
	valid bool
}

// None is returned for terminal positions, where nothing can be played.
var None = Move{}

// New makes a move at cell (0-8).
func New(cell int) Move {
	return Move{cell: int8(cell), valid: true}
}

// FromUserCell takes the 1-based cell number a person types.
func FromUserCell(s string) (Move, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return None, fmt.Errorf("not a number: %q", s)
	}
	if n < 1 || n > 9 {
		return None, fmt.Errorf("cell must be between 1 and 9, got %d", n)
	}
	return New(n - 1), nil
}

// Cell returns the 0-based cell, or -1 for None.
func (m Move) Cell() int {
	if !m.valid {
		return -1
	}
	return int(m.cell)
}

func (m Move) IsNone() bool {
	return !m.valid
}

// String shows the 1-based cell number, or "-" for None.
func (m Move) String() string {
	if !m.valid {
		return "-"
	}
	return strconv.Itoa(int(m.cell) + 1)
}

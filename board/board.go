// Package board holds the tic-tac-toe position: nine cells plus the mark
// that is due to move.
package board

import (
	"errors"
	"fmt"
)

// NumCells is the number of squares on the board.
const NumCells = 9

// Dim is the side length of the board.
const Dim = 3

// Mark is the content of a cell, or the side to move.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

var ErrInvalidState = errors.New("invalid board state")

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	case Empty:
		return " "
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// NextTurn swaps X and O. Anything else comes back unchanged.
func NextTurn(m Mark) Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	}
	return m
}

// Board is a 3x3 grid plus the side to move. Cells are indexed 0-8,
// row-major. The board is mutated in place during search; every PlayMove
// must be matched by an UnplayMove of the same cell.
type Board struct {
	cells [NumCells]Mark
	turn  Mark
}

// NewBoard returns an empty board with `first` to move.
func NewBoard(first Mark) *Board {
	if first != O {
		first = X
	}
	return &Board{turn: first}
}

// FromCells builds a board from raw cell contents. Only well-formedness is
// checked here (cell values and the turn field); see Validate for the
// reachability invariant.
func FromCells(cells [NumCells]Mark, turn Mark) (*Board, error) {
	b := &Board{cells: cells, turn: turn}
	if err := b.checkWellFormed(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) checkWellFormed() error {
	if b.turn != X && b.turn != O {
		return fmt.Errorf("%w: turn must be X or O, got %v", ErrInvalidState, b.turn)
	}
	for i, c := range b.cells {
		if c > O {
			return fmt.Errorf("%w: cell %d holds %v", ErrInvalidState, i+1, c)
		}
	}
	return nil
}

// CheckWellFormed verifies cell values and the turn field.
func (b *Board) CheckWellFormed() error {
	return b.checkWellFormed()
}

// Validate checks that the board could have come from alternating play:
// the mark counts differ by at most one and the side with fewer marks (if
// any) is the one to move.
func (b *Board) Validate() error {
	if err := b.checkWellFormed(); err != nil {
		return err
	}
	nx, no := b.Count(X), b.Count(O)
	switch {
	case nx-no > 1 || no-nx > 1:
		return fmt.Errorf("%w: %d X and %d O", ErrInvalidState, nx, no)
	case nx > no && b.turn != O:
		return fmt.Errorf("%w: X has moved more, O must be on turn", ErrInvalidState)
	case no > nx && b.turn != X:
		return fmt.Errorf("%w: O has moved more, X must be on turn", ErrInvalidState)
	}
	return nil
}

// Turn returns the mark that moves next.
func (b *Board) Turn() Mark {
	return b.turn
}

// SetTurn overrides the side to move.
func (b *Board) SetTurn(m Mark) {
	b.turn = m
}

// At returns the content of the cell at idx (0-8).
func (b *Board) At(idx int) Mark {
	return b.cells[idx]
}

func (b *Board) Cells() [NumCells]Mark {
	return b.cells
}

// PlayMove places the mover's mark at cell and passes the turn.
// No legality check is made; the search calls this in its inner loop.
func (b *Board) PlayMove(cell int) {
	b.cells[cell] = b.turn
	b.turn = NextTurn(b.turn)
}

// UnplayMove takes back a move made with PlayMove.
func (b *Board) UnplayMove(cell int) {
	b.cells[cell] = Empty
	b.turn = NextTurn(b.turn)
}

// Count returns how many cells hold m.
func (b *Board) Count(m Mark) int {
	n := 0
	for _, c := range b.cells {
		if c == m {
			n++
		}
	}
	return n
}

// EmptyMask has bit i set when cell i is empty.
func (b *Board) EmptyMask() uint16 {
	var m uint16
	for i, c := range b.cells {
		if c == Empty {
			m |= 1 << i
		}
	}
	return m
}

func (b *Board) IsFull() bool {
	return b.Count(Empty) == 0
}

// Empties is the number of open cells.
func (b *Board) Empties() int {
	return b.Count(Empty)
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Equals compares cells and turn.
func (b *Board) Equals(b2 *Board) bool {
	return b.cells == b2.cells && b.turn == b2.turn
}

// Key is an injective encoding of a board: the cells packed in base 3
// (least significant digit is cell 0), plus 3^9 when O is to move.
type Key uint16

// NumKeys bounds every Key: all keys are in [0, NumKeys).
const NumKeys = 2 * 19683

func (b *Board) Key() Key {
	k := 0
	for i := NumCells - 1; i >= 0; i-- {
		k = k*3 + int(b.cells[i])
	}
	if b.turn == O {
		k += 19683
	}
	return Key(k)
}

// FromKey reverses Key.
func FromKey(k Key) *Board {
	b := &Board{turn: X}
	v := int(k)
	if v >= 19683 {
		b.turn = O
		v -= 19683
	}
	for i := 0; i < NumCells; i++ {
		b.cells[i] = Mark(v % 3)
		v /= 3
	}
	return b
}

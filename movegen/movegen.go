// Package movegen lists the legal moves in a position.
package movegen

import (
	"math/bits"
	"strings"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/move"
)

// MoveList is a fixed-capacity list of cells. It lives on the stack in the
// search loop; nothing is allocated per node.
type MoveList struct {
	cells [board.NumCells]int8
	size  uint8
}

// GenAll returns every empty cell of b in ascending order. A full board
// yields an empty list.
func GenAll(b *board.Board) *MoveList {
	ml := &MoveList{}
	ml.Gen(b)
	return ml
}

// Gen refills ml with the empty cells of b, ascending.
func (ml *MoveList) Gen(b *board.Board) {
	ml.size = 0
	free := b.EmptyMask()
	for free != 0 {
		ml.cells[ml.size] = int8(bits.TrailingZeros16(free))
		ml.size++
		free &= free - 1
	}
}

func (ml *MoveList) Len() int {
	return int(ml.size)
}

// At returns the i-th cell in the list.
func (ml *MoveList) At(i int) int {
	return int(ml.cells[i])
}

func (ml *MoveList) Move(i int) move.Move {
	return move.New(int(ml.cells[i]))
}

// Cells copies the list out as a slice.
func (ml *MoveList) Cells() []int {
	out := make([]int, ml.size)
	for i := range out {
		out[i] = int(ml.cells[i])
	}
	return out
}

func (ml *MoveList) Contains(cell int) bool {
	for i := uint8(0); i < ml.size; i++ {
		if int(ml.cells[i]) == cell {
			return true
		}
	}
	return false
}

func (ml *MoveList) String() string {
	var sb strings.Builder
	for i := 0; i < ml.Len(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ml.Move(i).String())
	}
	return sb.String()
}

package board

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadNotation = errors.New("bad board notation")

// Parse reads a position written as three `/`-separated rows followed by
// the side to move, e.g. "XO./.X./..O x". Cells are X, O, or `.` for
// empty; case is ignored. The result is well-formed but not necessarily
// reachable; call Validate for that.
func Parse(s string) (*Board, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: want <rows> <turn>, got %q", ErrBadNotation, s)
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != Dim {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrBadNotation, Dim, len(rows))
	}
	var cells [NumCells]Mark
	for r, row := range rows {
		if len(row) != Dim {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrBadNotation, r+1, len(row))
		}
		for c, ch := range strings.ToUpper(row) {
			m, err := markFromRune(ch)
			if err != nil {
				return nil, err
			}
			cells[r*Dim+c] = m
		}
	}
	turn, err := markFromRune([]rune(strings.ToUpper(fields[1]))[0])
	if err != nil || turn == Empty || len(fields[1]) != 1 {
		return nil, fmt.Errorf("%w: turn must be x or o, got %q", ErrBadNotation, fields[1])
	}
	return FromCells(cells, turn)
}

func markFromRune(ch rune) (Mark, error) {
	switch ch {
	case 'X':
		return X, nil
	case 'O':
		return O, nil
	case '.':
		return Empty, nil
	}
	return Empty, fmt.Errorf("%w: unexpected character %q", ErrBadNotation, ch)
}

// String writes the board in the notation Parse reads.
func (b *Board) String() string {
	var sb strings.Builder
	for i, c := range b.cells {
		if i > 0 && i%Dim == 0 {
			sb.WriteByte('/')
		}
		if c == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(c.String())
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(strings.ToLower(b.turn.String()))
	return sb.String()
}

// ToDisplayText renders the grid for a terminal. Empty cells show their
// 1-based number so a player can see which choices are open.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for r := 0; r < Dim; r++ {
		if r > 0 {
			sb.WriteString("---|---|---\n")
		}
		for c := 0; c < Dim; c++ {
			idx := r*Dim + c
			if c > 0 {
				sb.WriteByte('|')
			}
			if b.cells[idx] == Empty {
				fmt.Fprintf(&sb, " %d ", idx+1)
			} else {
				fmt.Fprintf(&sb, " %v ", b.cells[idx])
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%v to move\n", b.turn)
	return sb.String()
}

package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestOutcomeAllLines(t *testing.T) {
	is := is.New(t)
	for _, m := range []Mark{X, O} {
		for _, l := range Lines {
			var cells [NumCells]Mark
			for _, idx := range l {
				cells[idx] = m
			}
			b, err := FromCells(cells, NextTurn(m))
			is.NoErr(err)
			is.Equal(b.Outcome().Winner(), m)
		}
	}
}

func TestOutcome(t *testing.T) {
	is := is.New(t)
	type tc struct {
		pos     string
		outcome Outcome
	}
	cases := []tc{
		{".../.../... x", InProgress},
		{"XOX/XOO/OXX o", Tie},
		{"XXX/OO./... o", XWins},
		{"OX./OX./O.X x", OWins},
		{"X.O/.XO/..X o", XWins},
		// Final cell completes a line on an otherwise full board.
		{"XOX/OXO/OXX o", XWins},
		{"XOX/XO./.O. x", OWins},
	}
	for _, c := range cases {
		b, err := Parse(c.pos)
		is.NoErr(err)
		is.Equal(b.Outcome(), c.outcome)
	}
}

func TestOutcomeTerminal(t *testing.T) {
	is := is.New(t)
	is.True(!InProgress.Terminal())
	is.True(Tie.Terminal())
	is.Equal(Tie.Winner(), Empty)
}

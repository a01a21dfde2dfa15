package minimax

import (
	"fmt"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/move"
)

// PVLine is a line of best play from a root position.
type PVLine struct {
	Moves []move.Move
	root  *board.Board
	score Score
}

func (pvLine PVLine) Score() Score {
	return pvLine.score
}

// Final plays the line out on a copy of the root.
func (pvLine PVLine) Final() *board.Board {
	b := pvLine.root.Copy()
	for _, m := range pvLine.Moves {
		b.PlayMove(m.Cell())
	}
	return b
}

func (pvLine PVLine) String() string {
	s := fmt.Sprintf("PV; val %v\n", pvLine.score)
	b := pvLine.root.Copy()
	for i, m := range pvLine.Moves {
		s += fmt.Sprintf("%d: %v (%v)\n", i+1, m, b.Turn())
		b.PlayMove(m.Cell())
	}
	return s
}

// NLBString is String with no line breaks.
func (pvLine PVLine) NLBString() string {
	s := fmt.Sprintf("PV; val %v; ", pvLine.score)
	b := pvLine.root.Copy()
	for _, m := range pvLine.Moves {
		s += fmt.Sprintf("%v%v ", b.Turn(), m)
		b.PlayMove(m.Cell())
	}
	return s
}

// PrincipalVariation follows best moves from the last solved root until
// the game ends or the search depth runs out. Best moves come from the
// transposition table when it has them; otherwise the position is searched
// again with the depth that remains.
func (s *Solver) PrincipalVariation() PVLine {
	if s.root == nil {
		return PVLine{}
	}
	pv := PVLine{root: s.root.Copy(), score: s.rootResult.Score}
	b := s.root.Copy()
	m := s.rootResult.Move
	for ply := 0; !m.IsNone() && ply < s.requestedPlies; ply++ {
		pv.Moves = append(pv.Moves, m)
		b.PlayMove(m.Cell())
		if b.Outcome().Terminal() {
			break
		}
		if r, ok := s.cachedResult(b); ok {
			m = r.Move
			continue
		}
		r, _ := s.minimax(b, s.requestedPlies-ply-1)
		m = r.Move
	}
	return pv
}

func (s *Solver) cachedResult(b *board.Board) (Result, bool) {
	if !s.transpositionTableOptim || s.ttable == nil {
		return Result{}, false
	}
	return s.ttable.peek(b.Key())
}

package minimax

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/move"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newSolver() *Solver {
	s := &Solver{}
	s.Init(nil)
	return s
}

func mustParse(t *testing.T, pos string) *board.Board {
	b, err := board.Parse(pos)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSolve(t *testing.T) {
	is := is.New(t)
	type tc struct {
		pos   string
		cell  int
		score Score
	}
	cases := []tc{
		// Perfect play from an empty board is a draw whoever starts.
		{".../.../... x", 0, Tie},
		{".../.../... o", 0, Tie},
		// Complete the row.
		{"XX./.../... x", 2, XWin},
		{"OO./.../... o", 2, OWin},
		// Forced block that holds the draw.
		{"OO./.X./... x", 2, Tie},
		// O is a tempo ahead; blocking at 3 still loses to the fork.
		{"OO./.../... x", 2, OWin},
		// Last empty cell.
		{"XOX/OOX/X.O x", 7, Tie},
	}
	for _, c := range cases {
		s := newSolver()
		b := mustParse(t, c.pos)
		res, err := s.Solve(b, MaxPlies)
		is.NoErr(err)
		is.Equal(res.Move, move.New(c.cell))
		is.Equal(res.Score, c.score)
	}
}

func TestSolveTerminal(t *testing.T) {
	is := is.New(t)
	type tc struct {
		pos   string
		score Score
	}
	cases := []tc{
		{"XXX/OO./... o", XWin},
		{"OOO/XX./X.. x", OWin},
		{"XOX/XOO/OXX o", Tie},
	}
	for _, c := range cases {
		s := newSolver()
		res, err := s.Solve(mustParse(t, c.pos), MaxPlies)
		is.NoErr(err)
		is.True(res.Move.IsNone())
		is.Equal(res.Score, c.score)
		is.Equal(s.TranspositionTable().Created(), uint64(0))
		is.Equal(s.TranspositionTable().Lookups(), uint64(0))
		is.Equal(s.Nodes(), uint64(0))
	}
}

func TestSolveErrors(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	_, err := s.Solve(board.NewBoard(board.X), -1)
	is.True(errors.Is(err, ErrInvalidDepth))
	_, err = s.Solve(&board.Board{}, MaxPlies)
	is.True(errors.Is(err, board.ErrInvalidState))
}

func TestSolveLeavesBoardUnchanged(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	b := mustParse(t, "X../.O./... x")
	orig := b.Copy()
	r1, err := s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.True(b.Equals(orig))
	r2, err := s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.Equal(r1, r2)
	is.True(b.Equals(orig))
}

func TestSolveUsesCache(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	tt := s.TranspositionTable()
	b := board.NewBoard(board.X)
	_, err := s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.True(s.Nodes() > 0)
	is.True(tt.Hits() > 0)
	created := tt.Created()
	is.True(created > 0)
	// No more than the non-terminal positions reachable with X first.
	is.True(created <= 4520)

	lookups, hits := tt.Lookups(), tt.Hits()
	_, err = s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.Equal(s.Nodes(), uint64(0))
	is.Equal(tt.Lookups(), lookups+1)
	is.Equal(tt.Hits(), hits+1)
	is.Equal(tt.Created(), created)
}

func TestSharedTableAcrossSolvers(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable()
	s1 := &Solver{}
	s1.Init(tt)
	_, err := s1.Solve(board.NewBoard(board.X), MaxPlies)
	is.NoErr(err)

	s2 := &Solver{}
	s2.Init(tt)
	res, err := s2.Solve(mustParse(t, "X../.../... o"), MaxPlies)
	is.NoErr(err)
	is.Equal(res.Score, Tie)
	is.Equal(s2.Nodes(), uint64(0))
}

func TestDepthZeroFallback(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	res, err := s.Solve(board.NewBoard(board.X), 0)
	is.NoErr(err)
	is.Equal(res, Result{Move: move.New(0), Score: Tie})
	is.Equal(s.Nodes(), uint64(0))

	res, err = s.Solve(mustParse(t, "XX./.../... x"), 0)
	is.NoErr(err)
	is.Equal(res, Result{Move: move.New(2), Score: Tie})
}

func TestFirstWinOptim(t *testing.T) {
	is := is.New(t)
	b := mustParse(t, "XX./.../... x")
	s := newSolver()
	s.SetTranspositionTableOptim(false)
	r1, err := s.Solve(b, MaxPlies)
	is.NoErr(err)
	pruned := s.Nodes()
	is.Equal(pruned, uint64(1))

	s.SetFirstWinOptim(false)
	r2, err := s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.Equal(r1, r2)
	is.True(s.Nodes() > pruned)
}

// X has three threats at cells 3, 8 and 9. One ply isn't enough to see it.
const shallowTrap = "XX./OX./... o"

func TestTruncatedResultsNotCached(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	b := mustParse(t, shallowTrap)
	res, err := s.Solve(b, 1)
	is.NoErr(err)
	is.Equal(res, Result{Move: move.New(2), Score: Tie})
	is.Equal(s.TranspositionTable().Created(), uint64(0))

	res, err = s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.Equal(res, Result{Move: move.New(2), Score: XWin})
}

func TestTruncatedResultsCachedInCompatMode(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	s.SetCacheTruncated(true)
	b := mustParse(t, shallowTrap)
	res, err := s.Solve(b, 1)
	is.NoErr(err)
	is.Equal(res, Result{Move: move.New(2), Score: Tie})
	is.Equal(s.TranspositionTable().Created(), uint64(1))

	// The shallow answer sticks.
	res, err = s.Solve(b, MaxPlies)
	is.NoErr(err)
	is.Equal(res, Result{Move: move.New(2), Score: Tie})
	is.Equal(s.Nodes(), uint64(0))
}

func TestTableAgreesWithPlainMinimax(t *testing.T) {
	is := is.New(t)
	cached := newSolver()
	plain := newSolver()
	plain.SetTranspositionTableOptim(false)

	var walk func(b *board.Board, plies int)
	walk = func(b *board.Board, plies int) {
		r1, err := cached.Solve(b, MaxPlies)
		is.NoErr(err)
		r2, err := plain.Solve(b, MaxPlies)
		is.NoErr(err)
		is.Equal(r1, r2)
		if plies == 0 || b.Outcome().Terminal() {
			return
		}
		for i := 0; i < board.NumCells; i++ {
			if b.At(i) == board.Empty {
				b.PlayMove(i)
				walk(b, plies-1)
				b.UnplayMove(i)
			}
		}
	}
	walk(board.NewBoard(board.X), 2)
	walk(board.NewBoard(board.O), 2)
	is.Equal(plain.TranspositionTable().Lookups(), uint64(0))
}

func TestPrincipalVariation(t *testing.T) {
	is := is.New(t)
	for _, withTable := range []bool{true, false} {
		s := newSolver()
		s.SetTranspositionTableOptim(withTable)
		res, err := s.Solve(board.NewBoard(board.X), MaxPlies)
		is.NoErr(err)
		pv := s.PrincipalVariation()
		is.Equal(pv.Score(), res.Score)
		is.Equal(pv.Moves[0], res.Move)
		// A drawn game fills the board.
		is.Equal(len(pv.Moves), board.NumCells)
		is.Equal(pv.Final().Outcome(), board.Tie)
	}
}

func TestPrincipalVariationWin(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	_, err := s.Solve(mustParse(t, shallowTrap), MaxPlies)
	is.NoErr(err)
	pv := s.PrincipalVariation()
	// X takes the first winning continuation it finds, not the fastest.
	is.Equal(len(pv.Moves), 4)
	is.Equal(pv.Final().Outcome(), board.XWins)
	is.Equal(pv.NLBString(), "PV; val X wins; O3 X6 O7 X8 ")
}

func TestLogStream(t *testing.T) {
	is := is.New(t)
	s := newSolver()
	var buf bytes.Buffer
	s.SetLogStream(&buf)
	_, err := s.Solve(mustParse(t, "XOX/OOX/X.. x"), MaxPlies)
	is.NoErr(err)

	var tree map[string]any
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &tree))
	plays, ok := tree["plays"].([]any)
	is.True(ok)
	is.Equal(len(plays), 2)
}

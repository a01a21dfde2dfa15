// Package minimax solves tic-tac-toe positions by exhaustive minimax with
// a transposition table.
package minimax

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/move"
	"github.com/domino14/tictactoe/movegen"
)

// MaxPlies is enough plies to reach the end of any game.
const MaxPlies = board.NumCells

var ErrInvalidDepth = errors.New("search depth must not be negative")

// Score is always from X's point of view.
type Score int8

const (
	OWin Score = -1
	Tie  Score = 0
	XWin Score = 1
)

func (s Score) String() string {
	switch s {
	case XWin:
		return "X wins"
	case OWin:
		return "O wins"
	case Tie:
		return "tie"
	}
	return fmt.Sprintf("Score(%d)", int8(s))
}

// Result is a best move and the value of the position. Move is None for
// finished games.
type Result struct {
	Move  move.Move
	Score Score
}

func (r Result) String() string {
	return fmt.Sprintf("move %v, %v", r.Move, r.Score)
}

func scoreOf(o board.Outcome) Score {
	switch o {
	case board.XWins:
		return XWin
	case board.OWins:
		return OWin
	}
	return Tie
}

// bestFor is the best score the mover could possibly get.
func bestFor(mover board.Mark) Score {
	if mover == board.X {
		return XWin
	}
	return OWin
}

// improves reports whether a is strictly better than b for mover.
func improves(mover board.Mark, a, b Score) bool {
	if mover == board.X {
		return a > b
	}
	return a < b
}

type Solver struct {
	// firstWinOptim: stop searching a node once the mover has found its
	// best possible score.
	firstWinOptim           bool
	transpositionTableOptim bool
	// cacheTruncated stores results whose subtree ran out of depth. Those
	// results can be wrong, and a later deeper search would pick them up
	// because depth is not part of the key.
	cacheTruncated bool

	ttable *TranspositionTable

	root           *board.Board
	rootResult     Result
	requestedPlies int
	nodes          atomic.Uint64

	logStream io.Writer
}

// Init initializes the solver. A nil table gets a fresh one; passing a
// shared table lets many solves reuse what earlier ones learned.
func (s *Solver) Init(tt *TranspositionTable) {
	s.firstWinOptim = true
	s.transpositionTableOptim = true
	s.cacheTruncated = false
	if tt == nil {
		tt = NewTranspositionTable()
	}
	s.ttable = tt
}

func (s *Solver) minimax(b *board.Board, depth int) (Result, bool) {
	outcome := b.Outcome()
	if outcome.Terminal() {
		return Result{Move: move.None, Score: scoreOf(outcome)}, false
	}

	var key board.Key
	if s.transpositionTableOptim {
		key = b.Key()
		if e := s.ttable.lookup(key); e.valid() {
			return e.result(), false
		}
	}

	var children movegen.MoveList
	children.Gen(b)
	if depth == 0 {
		return Result{Move: children.Move(0), Score: Tie}, true
	}

	mover := b.Turn()
	target := bestFor(mover)
	indent := strings.Repeat(" ", 2*(s.requestedPlies-depth))
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "  %vplays:\n", indent)
	}
	var best Result
	truncated := false
	for i := 0; i < children.Len(); i++ {
		cell := children.At(i)
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v- play: %v\n", indent, cell+1)
		}
		b.PlayMove(cell)
		s.nodes.Add(1)
		child, childTruncated := s.minimax(b, depth-1)
		b.UnplayMove(cell)
		truncated = truncated || childTruncated
		if s.logStream != nil {
			fmt.Fprintf(s.logStream, "  %v  value: %d\n", indent, child.Score)
		}
		if i == 0 || improves(mover, child.Score, best.Score) {
			best = Result{Move: move.New(cell), Score: child.Score}
		}
		if s.firstWinOptim && best.Score == target {
			break
		}
	}
	if s.transpositionTableOptim && (!truncated || s.cacheTruncated) {
		s.ttable.store(key, best)
	}
	return best, truncated
}

// Solve finds the value of b and a move that attains it, searching at most
// plies moves ahead. b is played on and taken back during the search and is
// unchanged on return.
func (s *Solver) Solve(b *board.Board, plies int) (Result, error) {
	if plies < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, plies)
	}
	if err := b.CheckWellFormed(); err != nil {
		return Result{}, err
	}
	if s.ttable == nil {
		s.Init(nil)
	}
	log.Debug().Int("plies", plies).Str("position", b.String()).Msg("minimax-solve-config")
	s.requestedPlies = plies
	s.nodes.Store(0)
	tstart := time.Now()

	res, truncated := s.minimax(b, plies)

	s.root = b.Copy()
	s.rootResult = res
	log.Debug().
		Uint64("nodes", s.nodes.Load()).
		Bool("truncated", truncated).
		Uint64("ttable-created", s.ttable.created.Load()).
		Uint64("ttable-lookups", s.ttable.lookups.Load()).
		Uint64("ttable-hits", s.ttable.hits.Load()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Str("result", res.String()).
		Msg("solve-returning")
	return res, nil
}

// Nodes is the number of positions visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

func (s *Solver) SetTranspositionTableOptim(tt bool) {
	s.transpositionTableOptim = tt
}

func (s *Solver) SetTranspositionTable(tt *TranspositionTable) {
	s.ttable = tt
}

func (s *Solver) SetFirstWinOptim(w bool) {
	s.firstWinOptim = w
}

func (s *Solver) SetCacheTruncated(c bool) {
	s.cacheTruncated = c
}

// SetLogStream makes the solver write its search tree, in YAML, to w.
// Pass nil to turn it off.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

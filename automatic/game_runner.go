// Package automatic plays the solver against a player that picks uniformly
// among the legal moves, and keeps score.
package automatic

import (
	"encoding/binary"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/minimax"
	"github.com/domino14/tictactoe/movegen"
)

// Role says who a finished game went to.
type Role uint8

const (
	EngineWin Role = iota
	Draw
	RandomWin
)

func (r Role) String() string {
	switch r {
	case EngineWin:
		return "engine"
	case Draw:
		return "tie"
	case RandomWin:
		return "random"
	}
	return "unknown"
}

var errNoEngineMove = errors.New("solver returned no move for a live position")

// GameRunner plays games between the solver and the random player. The
// solver, and so its transposition table, lives across games.
type GameRunner struct {
	solver    *minimax.Solver
	rng       *frand.RNG
	plies     int
	logStream io.Writer
}

// GameResult is one finished game.
type GameResult struct {
	Game       int
	EngineMark board.Mark
	Cells      []int
	Outcome    board.Outcome
}

// Role is the result from the engine's point of view.
func (g GameResult) Role() Role {
	switch g.Outcome.Winner() {
	case g.EngineMark:
		return EngineWin
	case board.Empty:
		return Draw
	}
	return RandomWin
}

// Line is the move sequence in 1-based cell numbers, e.g. "5 1 9".
func (g GameResult) Line() string {
	return strings.Join(lo.Map(g.Cells, func(c int, _ int) string {
		return strconv.Itoa(c + 1)
	}), " ")
}

func NewGameRunner(solver *minimax.Solver, plies int) *GameRunner {
	return &GameRunner{solver: solver, plies: plies, rng: frand.New()}
}

// SetSeed makes the random player repeatable. 0 goes back to a random seed.
func (r *GameRunner) SetSeed(seed uint64) {
	if seed == 0 {
		r.rng = frand.New()
		return
	}
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint64(buf, seed)
	r.rng = frand.NewCustom(buf, 1024, 12)
}

// SetLogStream makes the runner write every game, in YAML, to w.
func (r *GameRunner) SetLogStream(w io.Writer) {
	r.logStream = w
}

// PlayGame plays game number n. X always moves first; the engine plays X
// in odd-numbered games and O in even-numbered ones.
func (r *GameRunner) PlayGame(n int) (GameResult, error) {
	engine := board.O
	if n%2 == 1 {
		engine = board.X
	}
	b := board.NewBoard(board.X)
	res := GameResult{Game: n, EngineMark: engine}
	var ml movegen.MoveList

	for !b.Outcome().Terminal() {
		var cell int
		if b.Turn() == engine {
			sr, err := r.solver.Solve(b, r.plies)
			if err != nil {
				return res, err
			}
			if sr.Move.IsNone() {
				return res, errNoEngineMove
			}
			cell = sr.Move.Cell()
		} else {
			ml.Gen(b)
			cell = ml.At(r.rng.Intn(ml.Len()))
		}
		b.PlayMove(cell)
		res.Cells = append(res.Cells, cell)
	}
	res.Outcome = b.Outcome()
	if r.logStream != nil {
		if err := r.writeLog(res); err != nil {
			return res, err
		}
	}
	return res, nil
}

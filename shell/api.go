package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/tictactoe/automatic"
	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/config"
	"github.com/domino14/tictactoe/minimax"
	"github.com/domino14/tictactoe/move"
	"github.com/domino14/tictactoe/movegen"
)

var (
	errNoGame        = errors.New("no game in progress; use `new` or `position`")
	errGameOver      = errors.New("game is over")
	errInvalidChoice = errors.New("invalid choice")
	errNotYourTurn   = errors.New("it is the engine's turn")
)

type CmdOptions map[string]string

func (c CmdOptions) String(key string) string {
	return c[key]
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v, ok := c[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (sc *ShellController) gameText() string {
	var sb strings.Builder
	sb.WriteString(sc.game.ToDisplayText())
	if o := sc.game.Outcome(); o.Terminal() {
		sb.WriteString("Game over: " + o.String() + "\n")
	}
	return sb.String()
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	human := board.X
	if len(cmd.args) > 0 {
		switch strings.ToLower(cmd.args[0]) {
		case "x":
		case "o":
			human = board.O
		default:
			return nil, errors.New("usage: new [x|o]")
		}
	}
	sc.game = board.NewBoard(board.X)
	sc.engine = board.NextTurn(human)
	sc.history = nil
	return msg(fmt.Sprintf("You are %v. X goes first.\n%s", human, sc.gameText())), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.IsPlaying() {
		return nil, errGameOver
	}
	if sc.IsEngineOnTurn() {
		return nil, errNotYourTurn
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <1-9>")
	}
	m, err := move.FromUserCell(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if !lo.Contains(movegen.GenAll(sc.game).Cells(), m.Cell()) {
		return nil, fmt.Errorf("%w: cell %v is taken", errInvalidChoice, m)
	}
	return sc.commit(m), nil
}

func (sc *ShellController) commit(m move.Move) *Response {
	sc.game.PlayMove(m.Cell())
	sc.history = append(sc.history, m.Cell())
	return msg(sc.gameText())
}

func (sc *ShellController) bestMove() (minimax.Result, error) {
	return sc.solver.Solve(sc.game, sc.plies())
}

func (sc *ShellController) engineMove() (*Response, error) {
	res, err := sc.bestMove()
	if err != nil {
		return nil, err
	}
	if res.Move.IsNone() {
		return nil, errGameOver
	}
	mover := sc.game.Turn()
	r := sc.commit(res.Move)
	return msg(fmt.Sprintf("Engine (%v) plays %v\n%s", mover, res.Move, r.message)), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.IsPlaying() {
		return nil, errGameOver
	}
	return sc.engineMove()
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	txt := sc.gameText()
	if len(sc.history) > 0 {
		txt += "Moves: " + strings.Join(lo.Map(sc.history, func(c int, _ int) string {
			return move.New(c).String()
		}), " ") + "\n"
	}
	return msg(txt + "Position: " + sc.game.String()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	opts := CmdOptions(cmd.options)
	plies, err := opts.IntDefault("plies", sc.plies())
	if err != nil {
		return nil, err
	}
	if logfile := opts.String("log"); logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sc.solver.SetLogStream(f)
		defer sc.solver.SetLogStream(nil)
	}
	res, err := sc.solver.Solve(sc.game, plies)
	if err != nil {
		return nil, err
	}
	tt := sc.solver.TranspositionTable()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Best: %v\n", res)
	fmt.Fprintf(&sb, "Nodes: %d\n", sc.solver.Nodes())
	fmt.Fprintf(&sb, "Table: %d positions, %d lookups, %.1f%% hits\n",
		tt.Created(), tt.Lookups(), 100*tt.HitRate())
	if !res.Move.IsNone() {
		sb.WriteString(sc.solver.PrincipalVariation().String())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) position(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: position <rows> <turn>, e.g. position XO./.X./..O x")
	}
	b, err := board.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	sc.game = b
	sc.engine = board.Empty
	sc.history = nil
	return msg(sc.gameText()), nil
}

func (sc *ShellController) sim(cmd *shellcmd) (*Response, error) {
	rounds := sc.config.GetInt(config.ConfigSimRounds)
	if len(cmd.args) > 0 {
		n, err := strconv.Atoi(cmd.args[0])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("not a valid number of rounds: %q", cmd.args[0])
		}
		rounds = n
	}
	opts := CmdOptions(cmd.options)
	seed := sc.config.GetUint64(config.ConfigSimSeed)
	if s := opts.String("seed"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, err
		}
		seed = n
	}
	runner := automatic.NewGameRunner(sc.solver, sc.plies())
	runner.SetSeed(seed)

	logfile := opts.String("log")
	if logfile == "" {
		logfile = sc.config.GetString(config.ConfigSimLogFile)
	}
	if logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		runner.SetLogStream(f)
	}
	sum, err := runner.Simulate(context.Background(), rounds)
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(sum.String(), "\n")), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	if !lo.Contains(sc.config.AllKeys(), key) {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	sc.config.Set(key, value)
	sc.applyConfig()
	return msg(fmt.Sprintf("set %v to %v", key, value)), nil
}

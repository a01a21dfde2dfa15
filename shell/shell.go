// Package shell is the interactive front end: play against the solver,
// analyze positions, and run simulations.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/config"
	"github.com/domino14/tictactoe/minimax"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type Response struct {
	message string
}

func (r *Response) Msg() string {
	return r.message
}

func msg(message string) *Response {
	return &Response{message: message}
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	// One solver, and so one transposition table, for the life of the
	// process.
	solver *minimax.Solver

	game *board.Board
	// engine is the mark the solver plays on its own. Empty means nobody
	// moves automatically, which is the case after `position`.
	engine  board.Mark
	history []int
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := newController(cfg, os.Stderr)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mtictactoe>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// newController builds everything but the readline instance.
func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{out: out, config: cfg, solver: &minimax.Solver{}}
	sc.solver.Init(nil)
	sc.applyConfig()
	return sc
}

func (sc *ShellController) applyConfig() {
	sc.solver.SetTranspositionTableOptim(sc.config.GetBool(config.ConfigTranspositionTable))
	sc.solver.SetCacheTruncated(sc.config.GetBool(config.ConfigCacheTruncatedResults))
}

func (sc *ShellController) plies() int {
	return sc.config.GetInt(config.ConfigSearchPlies)
}

func (sc *ShellController) IsPlaying() bool {
	return sc.game != nil && !sc.game.Outcome().Terminal()
}

func (sc *ShellController) IsEngineOnTurn() bool {
	return sc.IsPlaying() && sc.engine != board.Empty && sc.game.Turn() == sc.engine
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[idx][1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) handle(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new", "n":
		return sc.newGame(cmd)
	case "play", "pl", "p":
		return sc.play(cmd)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return sc.play(&shellcmd{cmd: "play", args: []string{cmd.cmd}})
	case "aiplay", "ai", "a":
		return sc.aiplay(cmd)
	case "show", "s", "b":
		return sc.show(cmd)
	case "solve":
		return sc.solve(cmd)
	case "position", "pos":
		return sc.position(cmd)
	case "sim":
		return sc.sim(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "script":
		return sc.script(cmd)
	case "help", "h":
		return sc.help(cmd)
	default:
		msg := fmt.Sprintf("command %q not found", cmd.cmd)
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// execute runs one command line. If the engine is then on turn it answers
// straight away, and its moves are part of the returned text.
func (sc *ShellController) execute(line string) (string, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return "", err
	}
	resp, err := sc.handle(cmd)
	if err != nil {
		return "", err
	}
	var out []string
	if resp != nil && resp.message != "" {
		out = append(out, resp.message)
	}
	for sc.IsEngineOnTurn() {
		r, err := sc.engineMove()
		if err != nil {
			return strings.Join(out, "\n"), err
		}
		out = append(out, r.message)
	}
	return strings.Join(out, "\n"), nil
}

// Execute runs a single command, for non-interactive use.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	out, err := sc.execute(line)
	if out != "" {
		sc.showMessage(out)
	}
	if err != nil {
		sc.showError(err)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	sc.showMessage(helpBanner)
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if line == "exit" || line == "quit" || line == "q" {
			sig <- syscall.SIGINT
			break
		}
		if line == "" {
			continue
		}
		out, err := sc.execute(line)
		if out != "" {
			sc.showMessage(out)
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup closes the readline instance if there is one.
func (sc *ShellController) Cleanup() {
	if sc.l != nil {
		sc.l.Close()
	}
}

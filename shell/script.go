package shell

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/move"
)

const shellGlobal = "ttt_shell"

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal(shellGlobal)
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// luaCommand makes a Lua function that runs `name <first argument>` as a
// shell command and returns its output.
func luaCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := name
		if L.GetTop() > 0 {
			line += " " + L.ToString(1)
		}
		sc := getShell(L)
		out, err := sc.execute(line)
		if err != nil {
			log.Err(err).Str("command", line).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(out))
		// return number of results pushed to stack.
		return 1
	}
}

// GameState is the game as scripts see it.
type GameState struct {
	Position string   `json:"position"`
	Turn     string   `json:"turn"`
	Outcome  string   `json:"outcome"`
	Engine   string   `json:"engine"`
	Moves    []string `json:"moves"`
}

func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LString("{}"))
		return 1
	}
	st := GameState{
		Position: sc.game.String(),
		Turn:     sc.game.Turn().String(),
		Outcome:  sc.game.Outcome().String(),
		Engine:   "none",
		Moves:    []string{},
	}
	if sc.engine != board.Empty {
		st.Engine = sc.engine.String()
	}
	for _, c := range sc.history {
		st.Moves = append(st.Moves, move.New(c).String())
	}
	bts, err := json.Marshal(st)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LString(bts))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal(shellGlobal, lsc)
	L.SetGlobal("ttt_new", L.NewFunction(luaCommand("new")))
	L.SetGlobal("ttt_play", L.NewFunction(luaCommand("play")))
	L.SetGlobal("ttt_aiplay", L.NewFunction(luaCommand("aiplay")))
	L.SetGlobal("ttt_position", L.NewFunction(luaCommand("position")))
	L.SetGlobal("ttt_solve", L.NewFunction(luaCommand("solve")))
	L.SetGlobal("ttt_sim", L.NewFunction(luaCommand("sim")))
	L.SetGlobal("ttt_state", L.NewFunction(State))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg("script " + filepath + " finished"), nil
}

package automatic

import (
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/tictactoe/board"
)

// LogGame is one game in the simulation log.
type LogGame struct {
	Game   int      `yaml:"game"`
	Engine string   `yaml:"engine"`
	Moves  []string `yaml:"moves"`
	Result string   `yaml:"result"`
	Winner string   `yaml:"winner"`
}

func (r *GameRunner) writeLog(g GameResult) error {
	mark := board.X
	moves := lo.Map(g.Cells, func(c int, _ int) string {
		s := fmt.Sprintf("%v%d", mark, c+1)
		mark = board.NextTurn(mark)
		return s
	})
	out, err := yaml.Marshal([]LogGame{{
		Game:   g.Game,
		Engine: g.EngineMark.String(),
		Moves:  moves,
		Result: g.Outcome.String(),
		Winner: g.Role().String(),
	}})
	if err != nil {
		return err
	}
	_, err = r.logStream.Write(out)
	return err
}

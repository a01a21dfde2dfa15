package automatic

import (
	"fmt"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"

	"github.com/domino14/tictactoe/stats"
)

const confidence = 95

// Summary is the tally of a simulation.
type Summary struct {
	Rounds        int
	Played        int
	EngineWins    int
	Ties          int
	RandomWins    int
	DistinctLines int
	Elapsed       time.Duration

	lengths       stats.Statistic
	lengthSamples []float64
}

func newSummary(rounds int) *Summary {
	return &Summary{Rounds: rounds}
}

func (s *Summary) add(g GameResult) {
	s.Played++
	switch g.Role() {
	case EngineWin:
		s.EngineWins++
	case Draw:
		s.Ties++
	case RandomWin:
		s.RandomWins++
	}
	s.lengths.Push(float64(len(g.Cells)))
	s.lengthSamples = append(s.lengthSamples, float64(len(g.Cells)))
}

// Lengths are the running stats of game length in moves.
func (s *Summary) Lengths() *stats.Statistic {
	return &s.lengths
}

// NonLoss is the share of games the engine did not lose.
func (s *Summary) NonLoss() stats.Proportion {
	return stats.Proportion{Successes: s.EngineWins + s.Ties, Trials: s.Played}
}

func pctOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Minimax Wins: %d (%.3f%%) | Ties: %d (%.3f%%) | Random Wins: %d (%.3f%%)\n",
		s.EngineWins, pctOf(s.EngineWins, s.Played),
		s.Ties, pctOf(s.Ties, s.Played),
		s.RandomWins, pctOf(s.RandomWins, s.Played))
	perGame := 0.0
	if s.Played > 0 {
		perGame = float64(s.Elapsed.Microseconds()) / float64(s.Played)
	}
	fmt.Fprintf(&sb, "Total Time: %.3f (%.3fus per game)\n", s.Elapsed.Seconds(), perGame)
	if s.Played == 0 {
		return sb.String()
	}
	lo, hi := s.NonLoss().WilsonInterval(confidence)
	fmt.Fprintf(&sb, "Engine non-loss rate: %.3f%% (%d%% CI %.3f%% - %.3f%%)\n",
		100*s.NonLoss().Rate(), confidence, 100*lo, 100*hi)
	fmt.Fprintf(&sb, "Distinct games: %d\n", s.DistinctLines)
	fmt.Fprintf(&sb, "Game length: mean %.2f, stdev %.2f, min %.0f, max %.0f\n",
		s.lengths.Mean(), s.lengths.Stdev(), s.lengths.Min(), s.lengths.Max())
	if s.lengths.Max() == s.lengths.Min() {
		return sb.String()
	}
	hist := histogram.Hist(int(s.lengths.Max()-s.lengths.Min())+1, s.lengthSamples)
	if err := histogram.Fprint(&sb, hist, histogram.Linear(40)); err != nil {
		fmt.Fprintf(&sb, "(histogram: %v)\n", err)
	}
	return sb.String()
}

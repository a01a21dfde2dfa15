package automatic

import (
	"context"
	"time"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

// Simulate plays rounds games and tallies them. Progress is logged every
// tenth of the way.
func (r *GameRunner) Simulate(ctx context.Context, rounds int) (*Summary, error) {
	sum := newSummary(rounds)
	lines := map[uint64]struct{}{}
	pct := 10
	next := float64(rounds) / 10
	start := time.Now()
	log.Info().Int("rounds", rounds).Int("plies", r.plies).Msg("simulation-start")

	for game := 1; game <= rounds; game++ {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(start)
			return sum, err
		}
		res, err := r.PlayGame(game)
		if err != nil {
			return sum, err
		}
		sum.add(res)
		lines[lineHash(res.Cells)] = struct{}{}

		if float64(game) >= next {
			log.Info().
				Int("game", game).
				Int("pct-done", pct).
				Float64("elapsed-sec", time.Since(start).Seconds()).
				Msg("simulation-progress")
			pct += 10
			next += float64(rounds) / 10
		}
	}
	sum.Elapsed = time.Since(start)
	sum.DistinctLines = len(lines)
	log.Info().
		Int("engine-wins", sum.EngineWins).
		Int("ties", sum.Ties).
		Int("random-wins", sum.RandomWins).
		Uint64("ttable-created", r.solver.TranspositionTable().Created()).
		Float64("ttable-hit-rate", r.solver.TranspositionTable().HitRate()).
		Msg("simulation-done")
	return sum, nil
}

func lineHash(cells []int) uint64 {
	buf := make([]byte, len(cells))
	for i, c := range cells {
		buf[i] = byte(c)
	}
	return xxhash.Sum64(buf)
}

package minimax

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tictactoe/board"
	"github.com/domino14/tictactoe/move"
)

const entrySize = 3

const flagValid = 0x01

// 3 bytes (entrySize)
type TableEntry struct {
	flag  uint8
	cell  int8
	score int8
}

func (t TableEntry) valid() bool {
	return t.flag&flagValid != 0
}

func (t TableEntry) result() Result {
	return Result{Move: move.New(int(t.cell)), Score: Score(t.score)}
}

// TranspositionTable maps every board key to the solved result for that
// position. The key is injective and its range is small, so the table is a
// dense array with one slot per key and there are no collisions to detect.
// Entries are never evicted.
type TranspositionTable struct {
	table   []TableEntry
	created atomic.Uint64
	lookups atomic.Uint64
	hits    atomic.Uint64
}

// NewTranspositionTable allocates an empty table.
func NewTranspositionTable() *TranspositionTable {
	t := &TranspositionTable{}
	t.Reset()
	return t
}

func (t *TranspositionTable) lookup(key board.Key) TableEntry {
	t.lookups.Add(1)
	e := t.table[key]
	if e.valid() {
		t.hits.Add(1)
	}
	return e
}

// peek reads an entry without touching the counters.
func (t *TranspositionTable) peek(key board.Key) (Result, bool) {
	e := t.table[key]
	if !e.valid() {
		return Result{}, false
	}
	return e.result(), true
}

func (t *TranspositionTable) store(key board.Key, r Result) {
	if !t.table[key].valid() {
		t.created.Add(1)
	}
	t.table[key] = TableEntry{
		flag:  flagValid,
		cell:  int8(r.Move.Cell()),
		score: int8(r.Score),
	}
}

// Reset empties the table and zeroes its counters.
func (t *TranspositionTable) Reset() {
	reset := false
	if t.table != nil && len(t.table) == board.NumKeys {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, board.NumKeys)
	}
	log.Debug().Int("num-elems", board.NumKeys).
		Int("estimated-total-memory-bytes", board.NumKeys*entrySize).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
}

// Created is the number of distinct positions stored.
func (t *TranspositionTable) Created() uint64 {
	return t.created.Load()
}

func (t *TranspositionTable) Lookups() uint64 {
	return t.lookups.Load()
}

func (t *TranspositionTable) Hits() uint64 {
	return t.hits.Load()
}

// HitRate is hits over lookups, or 0 before the first lookup.
func (t *TranspositionTable) HitRate() float64 {
	l := t.lookups.Load()
	if l == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(l)
}

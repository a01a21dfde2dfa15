package board

// Outcome classifies a position.
type Outcome uint8

const (
	InProgress Outcome = iota
	XWins
	OWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Tie:
		return "tie"
	}
	return "unknown"
}

// Terminal is true for everything but InProgress.
func (o Outcome) Terminal() bool {
	return o != InProgress
}

// Winner returns the winning mark, or Empty for ties and unfinished games.
func (o Outcome) Winner() Mark {
	switch o {
	case XWins:
		return X
	case OWins:
		return O
	}
	return Empty
}

// Lines are the eight winning triples: rows, columns, diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (b *Board) hasLine(m Mark) bool {
	for _, l := range Lines {
		if b.cells[l[0]] == m && b.cells[l[1]] == m && b.cells[l[2]] == m {
			return true
		}
	}
	return false
}

// Outcome evaluates the position. Wins are checked before fullness so a
// win on the last empty cell is reported as a win. If both sides somehow
// have a line, X is reported.
func (b *Board) Outcome() Outcome {
	if b.hasLine(X) {
		return XWins
	}
	if b.hasLine(O) {
		return OWins
	}
	if b.IsFull() {
		return Tie
	}
	return InProgress
}

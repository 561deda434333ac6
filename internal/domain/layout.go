package domain

// Layout holds the friction penalties added on top of the rectilinear
// distance between two slots. The values are tuning knobs.
type Layout struct {
	// RowSwitchPenalty is added when a move on one line switches rows
	// inside the same block (walk to the block end and back).
	RowSwitchPenalty int
	// BlockRowSwitchPenalty is added when a move on one line switches rows
	// across blocks; the inter-block aisle makes the crossing cheap.
	BlockRowSwitchPenalty int
	// LinePenalty is added per line crossed, except for shared-aisle pairs.
	LinePenalty int
}

// DefaultLayout returns the penalties used when nothing is configured.
func DefaultLayout() Layout {
	return Layout{
		RowSwitchPenalty:      6,
		BlockRowSwitchPenalty: 2,
		LinePenalty:           6,
	}
}

// Distance is the walking cost between a and b. It is symmetric and
// Distance(p, p) == 0. Entry and exit only ever pay the rectilinear term.
func (l Layout) Distance(a, b Position) int {
	d := abs(a.X-b.X) + abs(a.Y-b.Y)
	if a.IsSentinel() || b.IsSentinel() {
		return d
	}

	if a.Line == b.Line {
		switch {
		case a.Row == b.Row:
			return d
		case a.Block == b.Block:
			return d + l.RowSwitchPenalty
		default:
			return d + l.BlockRowSwitchPenalty
		}
	}

	if SharesAisle(a, b) {
		return d
	}
	return d + l.LinePenalty*abs(a.Line-b.Line)
}

// SharesAisle reports whether a and b face the same physical aisle: adjacent
// lines, same block, the lower line's far row against the higher line's
// near row.
func SharesAisle(a, b Position) bool {
	if a.IsSentinel() || b.IsSentinel() || a.Block != b.Block {
		return false
	}
	lo, hi := a, b
	if lo.Line > hi.Line {
		lo, hi = hi, lo
	}
	return hi.Line-lo.Line == 1 && lo.Row == 1 && hi.Row == 0
}

// Distance uses DefaultLayout.
func Distance(a, b Position) int {
	return DefaultLayout().Distance(a, b)
}

// PathDistance sums Distance over consecutive positions of path.
func (l Layout) PathDistance(path []Position) int {
	total := 0
	for i := 1; i < len(path); i++ {
		total += l.Distance(path[i-1], path[i])
	}
	return total
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package store

// ZOrder issues stacking values. Every call to Next returns a value strictly greater
// than anything it has issued or been seeded with.
type ZOrder struct {
	last int
}

func (z *ZOrder) Next() int {
	z.last++
	return z.last
}

// SeedAbove raises the floor so the next value exceeds max. It never lowers it.
func (z *ZOrder) SeedAbove(max int) {
	if max > z.last {
		z.last = max
	}
}

// Peek reports the last value issued (or seeded).
func (z *ZOrder) Peek() int { return z.last }

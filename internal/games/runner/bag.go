package runner

import "math/rand"

// ShuffleBag draws ids from a fixed pool without replacement. When the bag
// is empty it is refilled with the whole pool and reshuffled, so no id
// repeats before every other id has been drawn.
type ShuffleBag struct {
	pool      []int
	remaining []int
	rng       *rand.Rand
}

// NewShuffleBag creates a full, shuffled bag over pool.
func NewShuffleBag(pool []int, rng *rand.Rand) *ShuffleBag {
	b := &ShuffleBag{
		pool:      append([]int(nil), pool...),
		remaining: make([]int, 0, len(pool)),
		rng:       rng,
	}
	b.Refill()
	return b
}

// Refill puts every id back in the bag and shuffles it.
func (b *ShuffleBag) Refill() {
	b.remaining = append(b.remaining[:0], b.pool...)

	// Fisher-Yates, deterministic with seed
	for i := len(b.remaining) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.remaining[i], b.remaining[j] = b.remaining[j], b.remaining[i]
	}
}

// Draw removes and returns the next id. It reports false only for an empty pool.
func (b *ShuffleBag) Draw() (int, bool) {
	if len(b.pool) == 0 {
		return 0, false
	}
	if len(b.remaining) == 0 {
		b.Refill()
	}
	last := len(b.remaining) - 1
	id := b.remaining[last]
	b.remaining = b.remaining[:last]
	return id, true
}

// Remaining returns how many ids are left before the next refill.
func (b *ShuffleBag) Remaining() int {
	return len(b.remaining)
}

// Size returns the pool size.
func (b *ShuffleBag) Size() int {
	return len(b.pool)
}

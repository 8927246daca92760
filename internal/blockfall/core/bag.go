package core

import (
	"math/rand"
	"time"
)

// PeekLimit is the maximum preview depth: two full bags.
const PeekLimit = 2 * KindCount

// Bag is the 7-bag piece sequencer. Each bag is a shuffled permutation
// of all seven kinds, so any seven consecutive draws starting at a bag
// boundary contain every kind exactly once and the repeat distance of a
// kind is bounded. Two bag buffers are kept (current plus lookahead) so
// previews can reach across a bag boundary without consuming draws.
//
// The same seed always yields the same infinite draw sequence; this is
// what replay determinism rests on.
type Bag struct {
	rng       *rand.Rand
	seed      int64
	current   []Kind
	lookahead []Kind
}

// NewBag creates a sequencer from the given seed. A zero seed picks a
// random one from the clock; the chosen seed is exposed via Seed so the
// session stays replayable after the fact.
func NewBag(seed int64) *Bag {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := &Bag{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
	b.current = b.refill()
	b.lookahead = b.refill()
	return b
}

// Seed returns the seed this sequencer was built from.
func (b *Bag) Seed() int64 {
	return b.seed
}

// refill produces a fresh shuffled bag of all seven kinds.
func (b *Bag) refill() []Kind {
	bag := make([]Kind, 0, KindCount)
	for _, i := range b.rng.Perm(KindCount) {
		bag = append(bag, Kind(i))
	}
	return bag
}

// Next draws the next piece kind. When the current bag empties, the
// lookahead bag is promoted and a new lookahead is generated.
func (b *Bag) Next() Kind {
	k := b.current[0]
	b.current = b.current[1:]
	if len(b.current) == 0 {
		b.current = b.lookahead
		b.lookahead = b.refill()
	}
	return k
}

// Peek returns the next count draws without consuming them. The count
// is clamped to PeekLimit.
func (b *Bag) Peek(count int) []Kind {
	if count < 0 {
		count = 0
	}
	if count > PeekLimit {
		count = PeekLimit
	}
	out := make([]Kind, 0, count)
	out = append(out, b.current...)
	out = append(out, b.lookahead...)
	if len(out) > count {
		out = out[:count]
	}
	return out
}

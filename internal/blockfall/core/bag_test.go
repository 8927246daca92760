package core

import "testing"

func TestBagBoundaryPermutation(t *testing.T) {
	b := NewBag(7)

	// Draws from a bag boundary form a permutation of all 7 kinds,
	// repeatedly.
	for bag := 0; bag < 5; bag++ {
		seen := map[Kind]bool{}
		for i := 0; i < KindCount; i++ {
			k := b.Next()
			if seen[k] {
				t.Fatalf("bag %d repeats kind %s", bag, k)
			}
			seen[k] = true
		}
		if len(seen) != KindCount {
			t.Fatalf("bag %d drew %d distinct kinds", bag, len(seen))
		}
	}
}

func TestBagThirteenWindowCoversAllKinds(t *testing.T) {
	b := NewBag(99)

	var draws []Kind
	for i := 0; i < 200; i++ {
		draws = append(draws, b.Next())
	}

	// Any 13 consecutive draws, aligned or not, contain every kind.
	for start := 0; start+13 <= len(draws); start++ {
		seen := map[Kind]bool{}
		for _, k := range draws[start : start+13] {
			seen[k] = true
		}
		if len(seen) != KindCount {
			t.Fatalf("window at %d misses kinds: %v", start, draws[start:start+13])
		}
	}
}

func TestBagSeedDeterminism(t *testing.T) {
	a := NewBag(12345)
	b := NewBag(12345)

	for i := 0; i < 100; i++ {
		if ka, kb := a.Next(), b.Next(); ka != kb {
			t.Fatalf("draw %d diverged: %s vs %s", i, ka, kb)
		}
	}
}

func TestBagZeroSeedPicksOne(t *testing.T) {
	b := NewBag(0)
	if b.Seed() == 0 {
		t.Error("unseeded bag must expose the seed it chose")
	}
}

func TestBagPeekDoesNotConsume(t *testing.T) {
	b := NewBag(5)

	preview := b.Peek(10)
	if len(preview) != 10 {
		t.Fatalf("Peek(10) returned %d kinds", len(preview))
	}

	for i, want := range preview {
		if got := b.Next(); got != want {
			t.Fatalf("draw %d = %s, preview said %s", i, got, want)
		}
	}
}

func TestBagPeekCap(t *testing.T) {
	b := NewBag(5)

	if got := len(b.Peek(100)); got > PeekLimit {
		t.Errorf("Peek must cap at %d, returned %d", PeekLimit, got)
	}
	if got := len(b.Peek(-3)); got != 0 {
		t.Errorf("Peek of negative count returned %d entries", got)
	}
}

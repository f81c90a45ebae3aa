package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/clayrun/internal/config"
)

func TestShuffleBagNoRepeatWithinPass(t *testing.T) {
	pool := config.DefaultObstaclePool()
	bag := NewShuffleBag(pool, rand.New(rand.NewSource(7)))

	for pass := 0; pass < 5; pass++ {
		seen := make(map[int]bool, len(pool))
		for i := 0; i < len(pool); i++ {
			id, ok := bag.Draw()
			if !ok {
				t.Fatal("Draw reported empty pool")
			}
			if seen[id] {
				t.Fatalf("pass %d: id %d repeated before the bag was exhausted", pass, id)
			}
			seen[id] = true
		}
		if len(seen) != len(pool) {
			t.Fatalf("pass %d: saw %d ids, want %d", pass, len(seen), len(pool))
		}
	}
}

func TestShuffleBagUniform(t *testing.T) {
	pool := []int{1, 2, 3, 4, 5, 6, 7}
	bag := NewShuffleBag(pool, rand.New(rand.NewSource(99)))

	const passes = 200
	counts := make(map[int]int)
	for i := 0; i < passes*len(pool); i++ {
		id, _ := bag.Draw()
		counts[id]++
	}

	for _, id := range pool {
		if counts[id] != passes {
			t.Errorf("id %d drawn %d times, want %d", id, counts[id], passes)
		}
	}
}

func TestShuffleBagRefill(t *testing.T) {
	bag := NewShuffleBag([]int{10, 11, 12}, rand.New(rand.NewSource(1)))

	bag.Draw()
	bag.Draw()
	if bag.Remaining() != 1 {
		t.Fatalf("Remaining = %d, want 1", bag.Remaining())
	}

	bag.Refill()
	if bag.Remaining() != 3 || bag.Size() != 3 {
		t.Errorf("after Refill: remaining=%d size=%d", bag.Remaining(), bag.Size())
	}
}

func TestShuffleBagEmptyPool(t *testing.T) {
	bag := NewShuffleBag(nil, rand.New(rand.NewSource(1)))
	if _, ok := bag.Draw(); ok {
		t.Error("Draw on an empty pool should report false")
	}
}

func TestShuffleBagDeterministic(t *testing.T) {
	pool := config.DefaultObstaclePool()
	a := NewShuffleBag(pool, rand.New(rand.NewSource(42)))
	b := NewShuffleBag(pool, rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		x, _ := a.Draw()
		y, _ := b.Draw()
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

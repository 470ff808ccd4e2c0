package fountain

import (
	"math/rand"
	"testing"
)

func TestSourceIndicesDeterministic(t *testing.T) {
	a := SourceIndices(0, 10)
	b := SourceIndices(0, 10)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("SourceIndices(0, 10) not deterministic: %v vs %v", a, b)
		}
	}
}

func TestSourceIndicesBounds(t *testing.T) {
	for n := uint32(2); n <= 64; n++ {
		for r := uint32(0); r < 50; r++ {
			idx := SourceIndices(r, n)
			maxDeg := uint32(5)
			if n < maxDeg {
				maxDeg = n
			}
			if uint32(len(idx)) < 2 || uint32(len(idx)) > maxDeg {
				t.Fatalf("SourceIndices(%d, %d) has degree %d, want in [2, %d]", r, n, len(idx), maxDeg)
			}
			seen := make(map[uint32]bool)
			for _, i := range idx {
				if i >= n {
					t.Fatalf("SourceIndices(%d, %d) returned out-of-range index %d", r, n, i)
				}
				if seen[i] {
					t.Fatalf("SourceIndices(%d, %d) returned duplicate index %d", r, n, i)
				}
				seen[i] = true
			}
		}
	}
}

func TestSourceIndicesSingleSource(t *testing.T) {
	idx := SourceIndices(0, 1)
	if len(idx) != 1 || idx[0] != 0 {
		t.Fatalf("SourceIndices(0, 1) = %v, want [0]", idx)
	}
}

func makeSources(n, size int, seed int64) [][]byte {
	r := rand.New(rand.NewSource(seed))
	sources := make([][]byte, n)
	for i := range sources {
		sources[i] = make([]byte, size)
		r.Read(sources[i])
	}
	return sources
}

func allPresent(sources [][]byte) []Slot {
	slots := make([]Slot, len(sources))
	for i, s := range sources {
		slots[i] = Slot{Data: s, Present: true}
	}
	return slots
}

func TestRecoverIdentityWhenAllPresent(t *testing.T) {
	sources := makeSources(8, 64, 1)
	repairs := GenerateRepairs(sources)
	slots := allPresent(sources)
	Recover(slots, repairs)
	for i, s := range slots {
		if !s.Present {
			t.Fatalf("slot %d became absent", i)
		}
		for j := range s.Data {
			if s.Data[j] != sources[i][j] {
				t.Fatalf("slot %d mutated: got %v, want %v", i, s.Data, sources[i])
			}
		}
	}
}

func TestRecoverSingleDrop(t *testing.T) {
	for _, n := range []int{4, 16, 64} {
		sources := makeSources(n, 32, int64(n))
		repairs := GenerateRepairs(sources)
		for drop := 0; drop < n; drop++ {
			slots := allPresent(sources)
			slots[drop] = Slot{}
			Recover(slots, repairs)
			if !slots[drop].Present {
				t.Fatalf("n=%d: dropping source %d was not recovered", n, drop)
			}
			for j := range slots[drop].Data {
				if slots[drop].Data[j] != sources[drop][j] {
					t.Fatalf("n=%d: recovered source %d mismatches original", n, drop)
				}
			}
		}
	}
}

func TestRecoverHighLossSuccessRate(t *testing.T) {
	const n = 64
	sources := makeSources(n, 16, 99)
	repairs := GenerateRepairs(sources)
	total := n + len(repairs)
	dropCount := total / 10 // 10%

	trials := 200
	successes := 0
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < trials; trial++ {
		perm := r.Perm(total)
		dropped := make(map[int]bool, dropCount)
		for _, p := range perm[:dropCount] {
			dropped[p] = true
		}

		slots := allPresent(sources)
		var available []Repair
		for i, rep := range repairs {
			if dropped[n+i] {
				continue
			}
			available = append(available, rep)
		}
		for i := 0; i < n; i++ {
			if dropped[i] {
				slots[i] = Slot{}
			}
		}

		Recover(slots, available)
		ok := true
		for i := range slots {
			if !slots[i].Present {
				ok = false
				break
			}
		}
		if ok {
			successes++
		}
	}

	if float64(successes)/float64(trials) < 0.90 {
		t.Errorf("success rate = %.2f, want >= 0.90", float64(successes)/float64(trials))
	}
}

func TestRepairCount(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{3, 1},
		{4, 2},
		{10, 3},
		{64, 20},
	}
	for _, tt := range tests {
		if got := RepairCount(tt.n); got != tt.want {
			t.Errorf("RepairCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

// Package fountain implements a deterministic LT-style erasure code: a
// repair packet's source-index set is a pure function of its repair index
// and the source count, so the encoder never has to transmit it, and the
// decoder must rederive it bit-for-bit identically.
//
// The peeling decoder (Recover) is the classic LT/fountain-code approach:
// repeatedly resolve any repair that has exactly one still-missing source,
// until a full pass makes no progress. It has no Gaussian-elimination
// fallback, so recovery succeeds only when the erasure graph happens to be
// peelable — an accepted trade-off for simplicity over a higher-loss
// regime.
package fountain

import (
	"math"
	"runtime"
	"sort"
	"sync"
)

// maxDegree bounds how many distinct sources a single repair packet may
// cover.
const maxDegree = 5

// Ratio is the fixed fraction of repair packets generated relative to the
// source count.
const Ratio = 0.3

// Repair is one repair packet: the XOR of the source chunks at Indices.
type Repair struct {
	Index   uint32
	Indices []uint32
	Data    []byte
}

// Slot is one source-chunk position in the decoder's working set: either
// filled with its recovered bytes, or still absent.
type Slot struct {
	Data    []byte
	Present bool
}

// SourceIndices returns the deterministic, sorted set of source indices
// that repair packet r covers, out of n total sources. It is the single
// source of truth for this derivation — GenerateRepairs and any caller
// reconstructing a received repair's coverage call this same function so
// that encoder and decoder never disagree. Recover does not call it; it uses
// the Indices already set on each Repair.
//
// The degree-in-[2,min(5,n)] invariant only applies for n >= 2; a
// single-source file has no partner to XOR against, so its one repair
// packet degenerates to a plain copy of source 0.
func SourceIndices(r, n uint32) []uint32 {
	if n == 0 {
		panic("fountain: SourceIndices requires at least 1 source")
	}
	if n == 1 {
		return []uint32{0}
	}
	g := newRNG(r)

	span := uint32(4)
	if n-1 < span {
		span = n - 1
	}
	degree := 2 + g.intn(span)

	seen := make(map[uint32]struct{}, degree)
	for uint32(len(seen)) < degree {
		seen[g.intn(n)] = struct{}{}
	}

	indices := make([]uint32, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}

// RepairCount returns the number of repair packets GenerateRepairs emits
// for n sources: at least 1, otherwise ceil(n*Ratio).
func RepairCount(n int) int {
	c := int(math.Ceil(float64(n) * Ratio))
	if c < 1 {
		c = 1
	}
	return c
}

// GenerateRepairs builds RepairCount(len(sources)) repair packets from
// sources, which must all share the same length. Repairs are computed
// concurrently — each repair index is an independent XOR reduction with no
// shared mutable state, the same property the codec's design notes call
// out as the reason repair generation is safe to parallelise.
func GenerateRepairs(sources [][]byte) []Repair {
	n := uint32(len(sources))
	repairCount := RepairCount(len(sources))
	repairs := make([]Repair, repairCount)

	workers := runtime.GOMAXPROCS(0)
	if workers > repairCount {
		workers = repairCount
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range jobs {
				indices := SourceIndices(uint32(r), n)
				data := make([]byte, len(sources[0]))
				for _, idx := range indices {
					xorInto(data, sources[idx])
				}
				repairs[r] = Repair{Index: uint32(r), Indices: indices, Data: data}
			}
		}()
	}
	for r := 0; r < repairCount; r++ {
		jobs <- r
	}
	close(jobs)
	wg.Wait()

	return repairs
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// Recover runs iterative peeling decode over sources (indexed 0..n-1,
// mutated in place) using repairs, whose Indices must already be populated
// (either rederived via SourceIndices, for a received repair, or carried
// from generation). It repeats passes over repairs until a full pass
// recovers nothing new, then returns. Sources still absent after Recover
// returns are unrecoverable from this repair set.
func Recover(sources []Slot, repairs []Repair) {
	for {
		progressed := false
		for _, rep := range repairs {
			missing := -1
			missingCount := 0
			for _, idx := range rep.Indices {
				if !sources[idx].Present {
					missingCount++
					missing = int(idx)
				}
			}
			if missingCount != 1 {
				continue
			}

			data := make([]byte, len(rep.Data))
			copy(data, rep.Data)
			for _, idx := range rep.Indices {
				if int(idx) == missing {
					continue
				}
				xorInto(data, sources[idx].Data)
			}
			sources[missing] = Slot{Data: data, Present: true}
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

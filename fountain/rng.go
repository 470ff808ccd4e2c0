package fountain

// rng is a xorshift32 pseudo-random generator. Its exact transition and
// seeding must match byte-for-byte between encoder and decoder, since the
// decoder rederives each repair packet's source-index set independently
// rather than receiving it over the wire.
type rng struct {
	state uint32
}

// newRNG seeds a generator for repair index r. The "| 1" guarantees a
// nonzero state: xorshift32 never recovers from an all-zero state, so a
// zero seed would produce an all-zero stream forever.
func newRNG(r uint32) *rng {
	return &rng{state: (r*2654435761 + 1) | 1}
}

// next advances the generator and returns the new state.
func (g *rng) next() uint32 {
	x := g.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	g.state = x
	return x
}

// intn returns next() mod n. n must be nonzero.
func (g *rng) intn(n uint32) uint32 {
	return g.next() % n
}

// Package generators derives the two deterministic, infinite vector
// generator sequences {G_i}, {H_i} the range proof and inner-product
// argument commit against. Each sequence is seeded once from a SHAKE256 XOF
// and squeezed lazily; results are cached so repeated requests for the same
// prefix never re-derive a point. This is the Ristretto255 replacement for
// the reference implementation's per-index MapToGroup(SEEDH+"g"+i) loop
// (see github.com/ing-bank/zkrp bulletproofs.Setup): same role, but driven
// by a single running XOF instead of one hash-to-group call per index.
package generators

import (
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/shieldedpay/confproof/ristretto"
)

const chainLabel = "GeneratorsChain"

// chain is a lazily-squeezed, cached generator sequence. It is the
// "initialize-once-then-immutable storage" the design notes call for: the
// underlying XOF reader is created once and only ever read forward.
type chain struct {
	mu     sync.Mutex
	reader sha3.ShakeHash
	cache  []ristretto.Point
}

func newChain(label string) *chain {
	h := sha3.NewShake256()
	h.Write([]byte(chainLabel))
	h.Write([]byte(label))
	return &chain{reader: h}
}

func (c *chain) at(i int) ristretto.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.cache) <= i {
		var buf [64]byte
		c.reader.Read(buf[:])
		c.cache = append(c.cache, ristretto.FromUniformBytes64(buf))
	}
	return c.cache[i]
}

func (c *chain) vector(n int) []ristretto.Point {
	out := make([]ristretto.Point, n)
	for i := 0; i < n; i++ {
		out[i] = c.at(i)
	}
	return out
}

var (
	gChain = sync.OnceValue(func() *chain { return newChain("G") })
	hChain = sync.OnceValue(func() *chain { return newChain("H") })
)

// G returns the first n elements of the "G" generator sequence.
func G(n int) []ristretto.Point { return gChain().vector(n) }

// H returns the first n elements of the "H" generator sequence.
func H(n int) []ristretto.Point { return hChain().vector(n) }

// Package ristretto provides the scalar field and point group arithmetic
// the rest of the engine is built on. Unlike the multi-curve Element/Group
// interfaces this is descended from, there is exactly one group in play
// here, so Scalar and Point are concrete value types with inherent methods
// rather than dynamic-dispatch wrappers.
package ristretto

import (
	"crypto/rand"
	"math/big"

	"github.com/ing-bank/zkrp/util/bn"

	"github.com/shieldedpay/confproof/errs"
)

// Order is ℓ, the prime order of the Ristretto255 group (and the scalar
// field every Scalar is reduced into).
var Order, _ = new(big.Int).SetString(
	"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)

// Scalar is an integer in [0, Order), stored as a reduced big.Int.
type Scalar struct {
	v *big.Int
}

func reduce(v *big.Int) *big.Int {
	return bn.Mod(v, Order)
}

// NewScalarFromBigInt builds a Scalar by reducing v modulo Order.
func NewScalarFromBigInt(v *big.Int) Scalar {
	return Scalar{v: reduce(new(big.Int).Set(v))}
}

// ScalarFromUint64 builds a Scalar from a small unsigned integer.
func ScalarFromUint64(x uint64) Scalar {
	return Scalar{v: new(big.Int).SetUint64(x)}
}

// ZeroScalar is the additive identity.
func ZeroScalar() Scalar { return Scalar{v: big.NewInt(0)} }

// OneScalar is the multiplicative identity.
func OneScalar() Scalar { return Scalar{v: big.NewInt(1)} }

// RandomScalar draws a uniform Scalar using crypto/rand.
func RandomScalar() (Scalar, error) {
	v, err := rand.Int(rand.Reader, Order)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{v: v}, nil
}

// ScalarFromBytesLE decodes 32 little-endian bytes into a Scalar, reducing
// modulo Order. Reduction (rather than rejecting non-canonical input) keeps
// decoding total, matching the corresponding failure-mode split in §4.A:
// only point decoding rejects non-canonical encodings.
func ScalarFromBytesLE(b [32]byte) Scalar {
	be := reverse(b[:])
	return Scalar{v: reduce(new(big.Int).SetBytes(be))}
}

// ScalarFromWideBytesModOrder reduces 64 little-endian bytes modulo Order.
// This is the wide-reduction entry point challenge derivation relies on.
func ScalarFromWideBytesModOrder(b [64]byte) Scalar {
	be := reverse(b[:])
	return Scalar{v: reduce(new(big.Int).SetBytes(be))}
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// Bytes encodes the scalar as 32 little-endian bytes.
func (s Scalar) Bytes() [32]byte {
	be := reduce(s.v).Bytes()
	var out [32]byte
	copy(out[32-len(be):], be)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (s Scalar) Add(o Scalar) Scalar { return Scalar{v: reduce(bn.Add(s.v, o.v))} }
func (s Scalar) Sub(o Scalar) Scalar { return Scalar{v: reduce(bn.Sub(s.v, o.v))} }
func (s Scalar) Mul(o Scalar) Scalar { return Scalar{v: reduce(bn.Multiply(s.v, o.v))} }

func (s Scalar) Neg() Scalar {
	return Scalar{v: reduce(bn.Sub(Order, reduce(s.v)))}
}

// Invert returns the multiplicative inverse mod Order. Inversion of zero is
// undefined by the field; callers never invert zero, and Invert returns
// zero itself rather than panicking in that case.
func (s Scalar) Invert() Scalar {
	if s.IsZero() {
		return ZeroScalar()
	}
	return Scalar{v: bn.ModInverse(s.v, Order)}
}

func (s Scalar) IsZero() bool {
	return reduce(s.v).Sign() == 0
}

// Equal reports whether two scalars are the same element mod Order. The
// comparison is a big.Int Cmp over the reduced values, so its timing is that
// of big.Int comparison.
func (s Scalar) Equal(o Scalar) bool {
	return reduce(s.v).Cmp(reduce(o.v)) == 0
}

func (s Scalar) BigInt() *big.Int {
	return new(big.Int).Set(reduce(s.v))
}

// DecodeScalar is the fallible counterpart of ScalarFromBytesLE for wire
// data of unchecked length: it rejects a buffer that is not exactly 32 bytes
// long. A 32-byte value that is not below Order is reduced modulo Order, not
// rejected.
func DecodeScalar(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return Scalar{}, errs.InvalidEncoding
	}
	var arr [32]byte
	copy(arr[:], b)
	return ScalarFromBytesLE(arr), nil
}

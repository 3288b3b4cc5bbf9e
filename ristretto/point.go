package ristretto

import (
	"github.com/cloudflare/circl/group"

	"github.com/shieldedpay/confproof/errs"
)

// Point is an element of the Ristretto255 prime-order group.
type Point struct {
	val group.Element
}

// Basepoint returns the standard Ristretto255 generator G.
func Basepoint() Point {
	return Point{val: group.Ristretto255.Generator()}
}

// Identity returns the group identity element.
func Identity() Point {
	return Point{val: group.Ristretto255.Identity()}
}

func circlScalar(s Scalar) group.Scalar {
	sc := group.Ristretto255.NewScalar()
	sc.SetBigInt(s.BigInt())
	return sc
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{val: group.Ristretto255.NewElement().Add(p.val, q.val)}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{val: group.Ristretto255.NewElement().Neg(p.val)}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Neg())
}

// ScalarMul returns s*p.
func (p Point) ScalarMul(s Scalar) Point {
	return Point{val: group.Ristretto255.NewElement().Mul(p.val, circlScalar(s))}
}

// BaseScalarMul returns s*G, computed via the dedicated fixed-base path.
func BaseScalarMul(s Scalar) Point {
	return Point{val: group.Ristretto255.NewElement().MulGen(circlScalar(s))}
}

// Equal reports whether p and q are the same group element. circl's
// IsEqual compares canonical encodings in constant time.
func (p Point) Equal(q Point) bool {
	return p.val.IsEqual(q.val)
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool {
	return p.val.IsIdentity()
}

// Compress returns the 32-byte canonical compressed encoding of p.
func (p Point) Compress() [32]byte {
	b, _ := p.val.MarshalBinary()
	var out [32]byte
	copy(out[:], b)
	return out
}

// DecompressPoint decodes a canonical 32-byte Ristretto255 encoding. Non-
// canonical or malformed encodings are rejected.
func DecompressPoint(b [32]byte) (Point, error) {
	e := group.Ristretto255.NewElement()
	if err := e.UnmarshalBinary(b[:]); err != nil {
		return Point{}, errs.InvalidEncoding
	}
	return Point{val: e}, nil
}

// FromUniformBytes64 maps 64 uniformly random bytes to a Point. Per the
// reference implementation's choice (preserved verbatim for wire
// compatibility — this is not a true hash-to-curve, just a documented
// compatibility shim): interpret the bytes as a little-endian integer,
// reduce modulo Order, and multiply into the basepoint.
func FromUniformBytes64(b [64]byte) Point {
	s := ScalarFromWideBytesModOrder(b)
	return BaseScalarMul(s)
}

// MSM computes the multi-scalar multiplication Σ scalars[i]*points[i]. This
// is the naive sum-of-scalar-muls the spec explicitly allows; callers that
// need the verifier's single large check build one combined scalars/points
// pair and call MSM once, rather than accumulating with repeated Add/ScalarMul.
func MSM(scalars []Scalar, points []Point) Point {
	acc := Identity()
	for i := range scalars {
		acc = acc.Add(points[i].ScalarMul(scalars[i]))
	}
	return acc
}

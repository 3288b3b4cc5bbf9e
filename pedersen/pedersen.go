// Package pedersen implements Pedersen value commitments over Ristretto255:
// commit(v, r) = v*G + r*H, with H a fixed independent generator derived
// once, process-wide, from a domain-separated hash. This mirrors the
// reference implementation's own SEEDH-derived H (see
// github.com/ing-bank/zkrp bulletproofs.SEEDH / CommitG1SP), adapted from
// the P256 group onto Ristretto255.
package pedersen

import (
	"crypto/sha256"
	"math/big"
	"sync"

	"github.com/shieldedpay/confproof/ristretto"
)

const hLabel = "pedersen_h_generator"

var hGenerator = sync.OnceValue(func() ristretto.Point {
	sum := sha256.Sum256([]byte(hLabel))
	s := ristretto.NewScalarFromBigInt(new(big.Int).SetBytes(sum[:]))
	return ristretto.BaseScalarMul(s)
})

// H returns the process-wide independent generator. It is computed once and
// never mutated.
func H() ristretto.Point {
	return hGenerator()
}

// Commit computes v*G + r*H.
func Commit(v, r ristretto.Scalar) ristretto.Point {
	return ristretto.BaseScalarMul(v).Add(H().ScalarMul(r))
}

// Add returns the commitment to the sum of the two underlying (value,
// blinding) pairs, exploiting the homomorphic property of Commit.
func Add(a, b ristretto.Point) ristretto.Point {
	return a.Add(b)
}

// Sub returns the commitment to the difference of the two underlying pairs.
func Sub(a, b ristretto.Point) ristretto.Point {
	return a.Sub(b)
}

// Verify recomputes commit(v, r) and compares it against C.
func Verify(c ristretto.Point, v, r ristretto.Scalar) bool {
	return Commit(v, r).Equal(c)
}

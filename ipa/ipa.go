// Package ipa implements the recursive inner-product argument: a proof
// that <a,b> = c for committed scalar vectors a, b of equal power-of-two
// length, folding the problem in half each round until a single pair of
// scalars remains. This is the Ristretto255/transcript-based generalization
// of the reference implementation's bip.go (computeBipRecursiveSP /
// VerifySP), reworked to share a Merlin-style transcript with its caller
// and to expose the per-index optional scaling factors as first-class
// vectors rather than folding them silently into the generators.
package ipa

import (
	"math/bits"

	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
)

// Proof is the folded inner-product argument transcript: the per-round
// L, R commitments and the two final scalars.
type Proof struct {
	L []ristretto.Point
	R []ristretto.Point
	A ristretto.Scalar
	B ristretto.Scalar
}

func onesVector(n int) []ristretto.Scalar {
	out := make([]ristretto.Scalar, n)
	for i := range out {
		out[i] = ristretto.OneScalar()
	}
	return out
}

func innerProduct(a, b []ristretto.Scalar) ristretto.Scalar {
	sum := ristretto.ZeroScalar()
	for i := range a {
		sum = sum.Add(a[i].Mul(b[i]))
	}
	return sum
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Prove runs the inner-product argument with default (all-ones) per-index
// factors. See ProveWithFactors for the general entry point.
func Prove(tr *transcript.Transcript, G, H []ristretto.Point, Q ristretto.Point, a, b []ristretto.Scalar) (Proof, error) {
	n := len(a)
	return ProveWithFactors(tr, G, H, Q, a, b, onesVector(n), onesVector(n))
}

// ProveWithFactors runs the inner-product argument with explicit per-index
// scaling factors applied to G and H respectively during the first round.
func ProveWithFactors(tr *transcript.Transcript, G, H []ristretto.Point, Q ristretto.Point,
	a, b, gFactors, hFactors []ristretto.Scalar) (Proof, error) {
	n := len(a)
	if n == 0 || !isPowerOfTwo(n) {
		return Proof{}, errs.LengthMismatch
	}
	if len(b) != n || len(G) != n || len(H) != n || len(gFactors) != n || len(hFactors) != n {
		return Proof{}, errs.LengthMismatch
	}

	tr.IPPDomSep(n)

	aa := append([]ristretto.Scalar(nil), a...)
	bb := append([]ristretto.Scalar(nil), b...)
	g := append([]ristretto.Point(nil), G...)
	h := append([]ristretto.Point(nil), H...)
	gf := append([]ristretto.Scalar(nil), gFactors...)
	hf := append([]ristretto.Scalar(nil), hFactors...)

	var Ls, Rs []ristretto.Point

	for n > 1 {
		n /= 2

		aL, aR := aa[:n], aa[n:]
		bL, bR := bb[:n], bb[n:]
		gL, gR := g[:n], g[n:]
		hL, hR := h[:n], h[n:]
		gfL, gfR := gf[:n], gf[n:]
		hfL, hfR := hf[:n], hf[n:]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		L := Q.ScalarMul(cL)
		for i := 0; i < n; i++ {
			L = L.Add(gR[i].ScalarMul(aL[i].Mul(gfR[i])))
			L = L.Add(hL[i].ScalarMul(bR[i].Mul(hfL[i])))
		}

		R := Q.ScalarMul(cR)
		for i := 0; i < n; i++ {
			R = R.Add(gL[i].ScalarMul(aR[i].Mul(gfL[i])))
			R = R.Add(hR[i].ScalarMul(bL[i].Mul(hfR[i])))
		}

		tr.AppendPoint("L", L)
		tr.AppendPoint("R", R)
		u := tr.ChallengeScalar("u")
		uInv := u.Invert()

		newA := make([]ristretto.Scalar, n)
		newB := make([]ristretto.Scalar, n)
		newG := make([]ristretto.Point, n)
		newH := make([]ristretto.Point, n)
		for i := 0; i < n; i++ {
			newA[i] = u.Mul(aL[i]).Add(uInv.Mul(aR[i]))
			newB[i] = uInv.Mul(bL[i]).Add(u.Mul(bR[i]))
			newG[i] = gL[i].ScalarMul(uInv.Mul(gfL[i])).Add(gR[i].ScalarMul(u.Mul(gfR[i])))
			newH[i] = hL[i].ScalarMul(u.Mul(hfL[i])).Add(hR[i].ScalarMul(uInv.Mul(hfR[i])))
		}

		aa, bb, g, h = newA, newB, newG, newH
		gf, hf = onesVector(n), onesVector(n)

		Ls = append(Ls, L)
		Rs = append(Rs, R)
	}

	return Proof{L: Ls, R: Rs, A: aa[0], B: bb[0]}, nil
}

// ReplayChallenges replays the L/R append + challenge sequence a verifier
// (or a caller folding this argument into a larger combined check, such as
// the range-proof verifier) needs in order to recover every round's u_j and
// its inverse, without assuming anything about how those challenges are
// subsequently used.
func ReplayChallenges(tr *transcript.Transcript, n int, proof Proof) (us, uInvs []ristretto.Scalar, err error) {
	if n == 0 || !isPowerOfTwo(n) {
		return nil, nil, errs.LengthMismatch
	}
	k := bits.Len(uint(n)) - 1
	if len(proof.L) != k || len(proof.R) != k {
		return nil, nil, errs.LengthMismatch
	}

	tr.IPPDomSep(n)

	us = make([]ristretto.Scalar, k)
	uInvs = make([]ristretto.Scalar, k)
	for j := 0; j < k; j++ {
		tr.AppendPoint("L", proof.L[j])
		tr.AppendPoint("R", proof.R[j])
		u := tr.ChallengeScalar("u")
		us[j] = u
		uInvs[j] = u.Invert()
	}
	return us, uInvs, nil
}

// SVector computes the inductive s[i] scalars used to reconstruct the
// folded generator basis from the per-round challenges:
//
//	s[0] = Π_j u_j^-1
//	s[i] = s[i-k] * u_j^2   where k = 2^floor(log2 i), j = log2(n)-1-floor(log2 i)
func SVector(us, uInvs []ristretto.Scalar) []ristretto.Scalar {
	k := len(us)
	n := 1 << k
	s := make([]ristretto.Scalar, n)

	prod := ristretto.OneScalar()
	for j := 0; j < k; j++ {
		prod = prod.Mul(uInvs[j])
	}
	s[0] = prod

	for i := 1; i < n; i++ {
		lg := bits.Len(uint(i)) - 1
		kIdx := 1 << lg
		j := k - 1 - lg
		s[i] = s[i-kIdx].Mul(us[j].Mul(us[j]))
	}
	return s
}

// Verify checks a standalone inner-product argument against commitment P,
// using default (all-ones) per-index factors.
func Verify(tr *transcript.Transcript, G, H []ristretto.Point, Q, P ristretto.Point, proof Proof) (bool, error) {
	n := len(G)
	return VerifyWithFactors(tr, G, H, Q, P, onesVector(n), onesVector(n), proof)
}

// VerifyWithFactors checks a standalone inner-product argument with
// explicit per-index scaling factors.
func VerifyWithFactors(tr *transcript.Transcript, G, H []ristretto.Point, Q, P ristretto.Point,
	gFactors, hFactors []ristretto.Scalar, proof Proof) (bool, error) {
	n := len(G)
	if n == 0 || !isPowerOfTwo(n) {
		return false, errs.LengthMismatch
	}
	if len(H) != n || len(gFactors) != n || len(hFactors) != n {
		return false, errs.LengthMismatch
	}

	us, uInvs, err := ReplayChallenges(tr, n, proof)
	if err != nil {
		return false, err
	}
	s := SVector(us, uInvs)

	a, b := proof.A, proof.B
	scalars := make([]ristretto.Scalar, 0, 1+2*n+2*len(us))
	points := make([]ristretto.Point, 0, 1+2*n+2*len(us))

	scalars = append(scalars, a.Mul(b))
	points = append(points, Q)

	for i := 0; i < n; i++ {
		scalars = append(scalars, a.Mul(s[i]).Mul(gFactors[i]))
		points = append(points, G[i])
	}
	for i := 0; i < n; i++ {
		scalars = append(scalars, b.Mul(s[n-1-i]).Mul(hFactors[i]))
		points = append(points, H[i])
	}
	for j := range us {
		scalars = append(scalars, us[j].Mul(us[j]).Neg())
		points = append(points, proof.L[j])
		scalars = append(scalars, uInvs[j].Mul(uInvs[j]).Neg())
		points = append(points, proof.R[j])
	}

	expected := ristretto.MSM(scalars, points)
	return expected.Equal(P), nil
}

package ipa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
)

func randomVector(t *testing.T, n int) []ristretto.Scalar {
	t.Helper()
	out := make([]ristretto.Scalar, n)
	for i := range out {
		s, err := ristretto.RandomScalar()
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

func randomGenerators(n int) []ristretto.Point {
	out := make([]ristretto.Point, n)
	for i := range out {
		s, _ := ristretto.RandomScalar()
		out[i] = ristretto.BaseScalarMul(s)
	}
	return out
}

func commitment(G, H []ristretto.Point, Q ristretto.Point, a, b []ristretto.Scalar) ristretto.Point {
	p := Q.ScalarMul(innerProduct(a, b))
	for i := range a {
		p = p.Add(G[i].ScalarMul(a[i]))
		p = p.Add(H[i].ScalarMul(b[i]))
	}
	return p
}

func TestProveVerifyRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16} {
		G := randomGenerators(n)
		H := randomGenerators(n)
		s, _ := ristretto.RandomScalar()
		Q := ristretto.BaseScalarMul(s)

		a := randomVector(t, n)
		b := randomVector(t, n)
		P := commitment(G, H, Q, a, b)

		proveTr := transcript.New()
		proof, err := Prove(proveTr, G, H, Q, a, b)
		require.NoError(t, err)

		verifyTr := transcript.New()
		ok, err := Verify(verifyTr, G, H, Q, P, proof)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	n := 8
	G := randomGenerators(n)
	H := randomGenerators(n)
	s, _ := ristretto.RandomScalar()
	Q := ristretto.BaseScalarMul(s)

	a := randomVector(t, n)
	b := randomVector(t, n)
	P := commitment(G, H, Q, a, b)

	proveTr := transcript.New()
	proof, err := Prove(proveTr, G, H, Q, a, b)
	require.NoError(t, err)

	bad := proof
	bad.A = bad.A.Add(ristretto.OneScalar())

	verifyTr := transcript.New()
	ok, err := Verify(verifyTr, G, H, Q, P, bad)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRejectsNonPowerOfTwo(t *testing.T) {
	n := 3
	G := randomGenerators(n)
	H := randomGenerators(n)
	a := randomVector(t, n)
	b := randomVector(t, n)

	tr := transcript.New()
	_, err := Prove(tr, G, H, ristretto.Identity(), a, b)
	require.Error(t, err)
}

func TestFactorsAreHonoured(t *testing.T) {
	n := 4
	G := randomGenerators(n)
	H := randomGenerators(n)
	s, _ := ristretto.RandomScalar()
	Q := ristretto.BaseScalarMul(s)

	a := randomVector(t, n)
	b := randomVector(t, n)
	hFactors := randomVector(t, n)
	gFactors := onesVector(n)

	P := Q.ScalarMul(innerProduct(a, b))
	for i := range a {
		P = P.Add(G[i].ScalarMul(a[i].Mul(gFactors[i])))
		P = P.Add(H[i].ScalarMul(b[i].Mul(hFactors[i])))
	}

	proveTr := transcript.New()
	proof, err := ProveWithFactors(proveTr, G, H, Q, a, b, gFactors, hFactors)
	require.NoError(t, err)

	verifyTr := transcript.New()
	ok, err := VerifyWithFactors(verifyTr, G, H, Q, P, gFactors, hFactors, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

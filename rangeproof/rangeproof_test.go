package rangeproof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
)

func proveAndVerify(t *testing.T, v uint64, gamma ristretto.Scalar, n int) bool {
	t.Helper()
	proveTr := transcript.New()
	proof, err := Prove(proveTr, v, gamma, n)
	require.NoError(t, err)

	verifyTr := transcript.New()
	ok, err := Verify(verifyTr, proof)
	require.NoError(t, err)
	return ok
}

func TestEveryBitWidthAndBoundary(t *testing.T) {
	widths := []int{2, 4, 8, 16, 32, 64}
	for _, n := range widths {
		gamma, err := ristretto.RandomScalar()
		require.NoError(t, err)
		require.True(t, proveAndVerify(t, 0, gamma, n))
		if n < 64 {
			require.True(t, proveAndVerify(t, uint64(1)<<uint(n)-1, gamma, n))
		}
	}
}

func TestOutOfRangeRejected(t *testing.T) {
	gamma, err := ristretto.RandomScalar()
	require.NoError(t, err)

	tr := transcript.New()
	_, err = Prove(tr, 256, gamma, 8)
	require.ErrorIs(t, err, errs.OutOfRange)
}

func TestScenarioNFourVThree(t *testing.T) {
	gamma := ristretto.ScalarFromUint64(12345)
	require.True(t, proveAndVerify(t, 3, gamma, 4))
}

func TestScenarioNThirtyTwoMillion(t *testing.T) {
	gamma := ristretto.ScalarFromUint64(9876543)
	proveTr := transcript.New()
	proof, err := Prove(proveTr, 1_000_000, gamma, 32)
	require.NoError(t, err)

	verifyTr := transcript.New()
	ok, err := Verify(verifyTr, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInvalidBitWidthRejected(t *testing.T) {
	gamma, _ := ristretto.RandomScalar()
	tr := transcript.New()
	_, err := Prove(tr, 1, gamma, 10)
	require.ErrorIs(t, err, errs.LengthMismatch)
}

func TestSoundnessTamperedComponent(t *testing.T) {
	gamma, err := ristretto.RandomScalar()
	require.NoError(t, err)

	proveTr := transcript.New()
	proof, err := Prove(proveTr, 7, gamma, 8)
	require.NoError(t, err)

	fresh, err := ristretto.RandomScalar()
	require.NoError(t, err)
	tampered := proof
	tampered.T = fresh

	verifyTr := transcript.New()
	ok, err := Verify(verifyTr, tampered)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDifferentCommitmentRejected(t *testing.T) {
	gamma, err := ristretto.RandomScalar()
	require.NoError(t, err)

	proveTr := transcript.New()
	proof, err := Prove(proveTr, 3, gamma, 4)
	require.NoError(t, err)

	otherGamma, err := ristretto.RandomScalar()
	require.NoError(t, err)
	proof.V = proof.V.Add(ristretto.BaseScalarMul(otherGamma))

	verifyTr := transcript.New()
	ok, err := Verify(verifyTr, proof)
	require.NoError(t, err)
	require.False(t, ok)
}

package submission

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transfer"
)

func scalar(x uint64) ristretto.Scalar { return ristretto.ScalarFromUint64(x) }

func sampleProof(t *testing.T) transfer.Proof {
	t.Helper()
	req := transfer.Request{
		SenderBefore: 100, Amount: 30, SenderAfter: 70,
		RBefore: scalar(1), RAmount: scalar(2), RAfter: scalar(3),
		BitWidth: 16,
	}
	proof, err := transfer.Prove(req)
	require.NoError(t, err)
	return proof
}

func TestBuildUnderSizeCeiling(t *testing.T) {
	env, err := Build(sampleProof(t))
	require.NoError(t, err)

	b, err := env.Bytes()
	require.NoError(t, err)
	require.LessOrEqual(t, len(b), MaxEnvelopeSize)
}

func TestBuildParseRoundTrip(t *testing.T) {
	env, err := Build(sampleProof(t))
	require.NoError(t, err)

	b, err := env.Bytes()
	require.NoError(t, err)

	parsed, err := Parse(b)
	require.NoError(t, err)
	require.Equal(t, env.ID, parsed.ID)
	require.Equal(t, env.CBefore, parsed.CBefore)
	require.Equal(t, env.Proof, parsed.Proof)
}

func TestCommitmentsDecompress(t *testing.T) {
	env, err := Build(sampleProof(t))
	require.NoError(t, err)

	before, amount, after, err := env.Commitments()
	require.NoError(t, err)
	require.False(t, before.IsIdentity())
	require.False(t, amount.IsIdentity())
	require.False(t, after.IsIdentity())
}

func TestParseRejectsWrongLength(t *testing.T) {
	_, err := Parse(make([]byte, 10))
	require.Error(t, err)
}

func TestEachEnvelopeGetsUniqueID(t *testing.T) {
	a, err := Build(sampleProof(t))
	require.NoError(t, err)
	b, err := Build(sampleProof(t))
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}

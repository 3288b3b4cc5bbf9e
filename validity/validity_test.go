package validity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shieldedpay/confproof/pedersen"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
)

func TestSenderOnlyRoundTrip(t *testing.T) {
	before := ristretto.ScalarFromUint64(100)
	amount := ristretto.ScalarFromUint64(10)
	after := ristretto.ScalarFromUint64(90)
	rBefore := ristretto.ScalarFromUint64(1)
	rAmount := ristretto.ScalarFromUint64(2)
	rAfter := ristretto.ScalarFromUint64(3)

	cBefore := pedersen.Commit(before, rBefore)
	cAmount := pedersen.Commit(amount, rAmount)
	cAfter := pedersen.Commit(after, rAfter)

	proveTr := transcript.New()
	proof, err := Prove(proveTr, cBefore, cAmount, cAfter, before, amount, after, rBefore, rAmount, rAfter, nil)
	require.NoError(t, err)
	require.False(t, proof.HasRecipient)

	verifyTr := transcript.New()
	require.True(t, Verify(verifyTr, cBefore, cAmount, cAfter, proof, nil, nil))
}

func TestRecipientUpdateRoundTrip(t *testing.T) {
	before := ristretto.ScalarFromUint64(100)
	amount := ristretto.ScalarFromUint64(10)
	after := ristretto.ScalarFromUint64(90)
	rBefore := ristretto.ScalarFromUint64(1)
	rAmount := ristretto.ScalarFromUint64(2)
	rAfter := ristretto.ScalarFromUint64(3)

	cBefore := pedersen.Commit(before, rBefore)
	cAmount := pedersen.Commit(amount, rAmount)
	cAfter := pedersen.Commit(after, rAfter)

	recOld := ristretto.ScalarFromUint64(50)
	recNew := ristretto.ScalarFromUint64(60)
	rRecOld := ristretto.ScalarFromUint64(4)
	rRecNew := ristretto.ScalarFromUint64(5)
	cRecOld := pedersen.Commit(recOld, rRecOld)
	cRecNew := pedersen.Commit(recNew, rRecNew)

	recipient := &RecipientUpdate{
		COld: cRecOld,
		CNew: cRecNew,
		ROld: rRecOld,
		New:  recNew,
		RNew: rRecNew,
	}

	proveTr := transcript.New()
	proof, err := Prove(proveTr, cBefore, cAmount, cAfter, before, amount, after, rBefore, rAmount, rAfter, recipient)
	require.NoError(t, err)
	require.True(t, proof.HasRecipient)

	verifyTr := transcript.New()
	require.True(t, Verify(verifyTr, cBefore, cAmount, cAfter, proof, &cRecOld, &cRecNew))
}

func TestVerifyRejectsImbalance(t *testing.T) {
	before := ristretto.ScalarFromUint64(100)
	amount := ristretto.ScalarFromUint64(10)
	after := ristretto.ScalarFromUint64(90)
	rBefore := ristretto.ScalarFromUint64(1)
	rAmount := ristretto.ScalarFromUint64(2)
	rAfter := ristretto.ScalarFromUint64(3)

	cBefore := pedersen.Commit(before, rBefore)
	cAmount := pedersen.Commit(amount, rAmount)
	cAfter := pedersen.Commit(after, rAfter)

	proveTr := transcript.New()
	proof, err := Prove(proveTr, cBefore, cAmount, cAfter, before, amount, after, rBefore, rAmount, rAfter, nil)
	require.NoError(t, err)

	wrongAfter := pedersen.Commit(ristretto.ScalarFromUint64(89), rAfter)
	verifyTr := transcript.New()
	require.False(t, Verify(verifyTr, cBefore, cAmount, wrongAfter, proof, nil, nil))
}

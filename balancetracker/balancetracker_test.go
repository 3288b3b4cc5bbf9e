package balancetracker

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shieldedpay/confproof/pedersen"
	"github.com/shieldedpay/confproof/ristretto"
)

// openTestTracker connects to the Postgres instance named by
// CONFPROOF_TEST_DATABASE_URL, skipping the test when it is unset. These
// tests exercise a real connection pool and table, not a mock.
func openTestTracker(t *testing.T) *Tracker {
	t.Helper()
	dsn := os.Getenv("CONFPROOF_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CONFPROOF_TEST_DATABASE_URL not set, skipping Postgres-backed test")
	}
	tr, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(tr.Close)
	return tr
}

func TestCommitAndVerify(t *testing.T) {
	tr := openTestTracker(t)
	ctx := context.Background()

	v := ristretto.ScalarFromUint64(100)
	r := ristretto.ScalarFromUint64(7)

	accountID := "acct-commit-and-verify"
	commitment := pedersen.Commit(v, r)
	require.NoError(t, tr.Commit(ctx, accountID, commitment))

	ok, err := tr.Verify(ctx, accountID, v, r)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAddAndSub(t *testing.T) {
	tr := openTestTracker(t)
	ctx := context.Background()

	v := ristretto.ScalarFromUint64(50)
	r := ristretto.ScalarFromUint64(3)
	accountID := "acct-add-and-sub"
	require.NoError(t, tr.Commit(ctx, accountID, pedersen.Commit(v, r)))

	deltaV := ristretto.ScalarFromUint64(20)
	deltaR := ristretto.ScalarFromUint64(1)
	require.NoError(t, tr.Add(ctx, accountID, pedersen.Commit(deltaV, deltaR)))

	ok, err := tr.Verify(ctx, accountID, v.Add(deltaV), r.Add(deltaR))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, tr.Sub(ctx, accountID, pedersen.Commit(deltaV, deltaR)))
	ok, err = tr.Verify(ctx, accountID, v, r)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsWrongOpening(t *testing.T) {
	tr := openTestTracker(t)
	ctx := context.Background()

	v := ristretto.ScalarFromUint64(9)
	r := ristretto.ScalarFromUint64(2)
	accountID := "acct-wrong-opening"
	require.NoError(t, tr.Commit(ctx, accountID, pedersen.Commit(v, r)))

	ok, err := tr.Verify(ctx, accountID, ristretto.ScalarFromUint64(10), r)
	require.NoError(t, err)
	require.False(t, ok)
}

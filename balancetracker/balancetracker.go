// Package balancetracker persists the homomorphic running commitment to an
// account's confidential balance, backed by Postgres via
// github.com/jackc/pgx/v5. Every update is a Pedersen addition/subtraction
// on the stored commitment (spec.md §4.B, §6.3) — the store never learns
// the underlying balance, only its commitment.
package balancetracker

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/pedersen"
	"github.com/shieldedpay/confproof/ristretto"
)

// Tracker is a Postgres-backed store of per-account commitments.
type Tracker struct {
	pool *pgxpool.Pool
}

// Open connects to Postgres at dsn and ensures the backing table exists.
func Open(ctx context.Context, dsn string) (*Tracker, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	t := &Tracker{pool: pool}
	if err := t.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return t, nil
}

// Close releases the underlying connection pool.
func (t *Tracker) Close() { t.pool.Close() }

func (t *Tracker) migrate(ctx context.Context) error {
	_, err := t.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS account_commitments (
			account_id TEXT PRIMARY KEY,
			commitment BYTEA NOT NULL
		)
	`)
	return err
}

// Commit stores the initial commitment for accountID, which must not
// already have one.
func (t *Tracker) Commit(ctx context.Context, accountID string, c ristretto.Point) error {
	compressed := c.Compress()
	_, err := t.pool.Exec(ctx,
		`INSERT INTO account_commitments (account_id, commitment) VALUES ($1, $2)`,
		accountID, compressed[:])
	return err
}

func (t *Tracker) load(ctx context.Context, accountID string) (ristretto.Point, error) {
	var raw []byte
	err := t.pool.QueryRow(ctx,
		`SELECT commitment FROM account_commitments WHERE account_id = $1`, accountID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ristretto.Point{}, errs.InvalidEncoding
	}
	if err != nil {
		return ristretto.Point{}, err
	}
	if len(raw) != 32 {
		return ristretto.Point{}, errs.InvalidEncoding
	}
	var buf [32]byte
	copy(buf[:], raw)
	return ristretto.DecompressPoint(buf)
}

func (t *Tracker) store(ctx context.Context, accountID string, c ristretto.Point) error {
	compressed := c.Compress()
	_, err := t.pool.Exec(ctx,
		`UPDATE account_commitments SET commitment = $2 WHERE account_id = $1`,
		accountID, compressed[:])
	return err
}

// Add homomorphically adds delta onto accountID's stored commitment.
func (t *Tracker) Add(ctx context.Context, accountID string, delta ristretto.Point) error {
	current, err := t.load(ctx, accountID)
	if err != nil {
		return err
	}
	return t.store(ctx, accountID, pedersen.Add(current, delta))
}

// Sub homomorphically subtracts delta from accountID's stored commitment.
func (t *Tracker) Sub(ctx context.Context, accountID string, delta ristretto.Point) error {
	current, err := t.load(ctx, accountID)
	if err != nil {
		return err
	}
	return t.store(ctx, accountID, pedersen.Sub(current, delta))
}

// Verify reports whether accountID's stored commitment opens to (v, r).
func (t *Tracker) Verify(ctx context.Context, accountID string, v, r ristretto.Scalar) (bool, error) {
	current, err := t.load(ctx, accountID)
	if err != nil {
		return false, err
	}
	return pedersen.Verify(current, v, r), nil
}

// Current returns accountID's stored commitment.
func (t *Tracker) Current(ctx context.Context, accountID string) (ristretto.Point, error) {
	return t.load(ctx, accountID)
}

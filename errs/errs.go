// Package errs holds the sentinel error kinds shared across the proof
// engine. Every failure mode the engine can produce is one of these; none
// of them are transient and none are meant to be retried.
package errs

import "errors"

var (
	// OutOfRange is returned when a prover input violates 0 <= v < 2^n.
	OutOfRange = errors.New("confproof: value out of range")

	// LengthMismatch is returned when a vector-length invariant is
	// violated: a non-power-of-two n, mismatched a/b lengths, a proof
	// whose L/R count does not match its declared n, and so on.
	LengthMismatch = errors.New("confproof: vector length mismatch")

	// InvalidEncoding is returned when bytes fail to decode into a
	// canonical point or scalar, or a buffer has the wrong length.
	InvalidEncoding = errors.New("confproof: invalid encoding")

	// BalanceMismatch is returned when sender_before - amount != sender_after,
	// or when a commitment does not open to the value/blinding a caller
	// claims at prove time.
	BalanceMismatch = errors.New("confproof: balance does not reconcile")

	// ProofInvalid names the normal "false" outcome of a verifier. It is not
	// an exceptional condition: the verifiers in this module report it as a
	// false result with a nil error and never return this value.
	ProofInvalid = errors.New("confproof: proof does not verify")

	// SizeExceeded is returned when a compact serialization would exceed
	// its fixed wire ceiling.
	SizeExceeded = errors.New("confproof: compact encoding exceeds size ceiling")
)

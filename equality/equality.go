// Package equality implements a Schnorr-style proof that two Pedersen
// commitments hide the same value. It generalizes the commit/challenge/
// response shape of the reference implementation's voteproof package (see
// voteproof.go: Prove/Verify, sigmaPedersenCheck) down to a single group and
// a single secret (the blinding difference), driven by the shared
// transcript instead of an ad hoc SHA-256 digest, and drops voteproof's
// abort-retry loop: that loop exists there to keep a Sigma response inside
// a leak-free numeric window for a bounded vote value, a constraint this
// proof's blinding-factor secret has no analogue of.
package equality

import (
	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/pedersen"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
)

// Proof is a Schnorr-style proof that C1 and C2 commit to the same value.
type Proof struct {
	R ristretto.Point
	S ristretto.Scalar
}

func appendCommitments(tr *transcript.Transcript, c1, c2 ristretto.Point) {
	tr.AppendMessage("dom-sep", []byte("equality-proof"))
	tr.AppendPoint("C1", c1)
	tr.AppendPoint("C2", c2)
}

// Prove proves that commitments C1 = v*G + r1*H and C2 = v*G + r2*H hide the
// same value v. It sanity-checks that the supplied openings actually
// reproduce C1 and C2 before proceeding; the protocol itself never reveals v.
func Prove(tr *transcript.Transcript, c1, c2 ristretto.Point, v, r1, r2 ristretto.Scalar) (Proof, error) {
	if !pedersen.Verify(c1, v, r1) || !pedersen.Verify(c2, v, r2) {
		return Proof{}, errs.BalanceMismatch
	}

	k, err := ristretto.RandomScalar()
	if err != nil {
		return Proof{}, err
	}

	appendCommitments(tr, c1, c2)
	R := pedersen.H().ScalarMul(k)
	tr.AppendPoint("R", R)
	c := tr.ChallengeScalar("c")

	diff := r1.Sub(r2)
	s := k.Add(c.Mul(diff))

	return Proof{R: R, S: s}, nil
}

// Verify replays the transcript and accepts iff s*H == R + c*(C1 - C2).
func Verify(tr *transcript.Transcript, c1, c2 ristretto.Point, proof Proof) bool {
	appendCommitments(tr, c1, c2)
	tr.AppendPoint("R", proof.R)
	c := tr.ChallengeScalar("c")

	lhs := pedersen.H().ScalarMul(proof.S)
	rhs := proof.R.Add(c1.Sub(c2).ScalarMul(c))
	return lhs.Equal(rhs)
}

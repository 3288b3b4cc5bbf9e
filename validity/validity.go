// Package validity composes equality proofs into the transfer-level
// validity check: C_before = C_amount + C_after at the value level, plus an
// optional recipient-balance update proof. It follows the reference
// implementation's voteproof pattern of bundling several sigma proofs that
// share one Fiat-Shamir derivation (see voteproof.SigmaProof), generalized
// to compose equality.Proof values instead of ElGamal/Pedersen sigma
// components.
package validity

import (
	"github.com/shieldedpay/confproof/equality"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
)

// Proof bundles the sender-side equality proof and, when a recipient update
// is part of the transfer, the recipient-side equality proof.
type Proof struct {
	SenderEquality    equality.Proof
	RecipientEquality equality.Proof
	HasRecipient      bool
}

// Prove proves C_before = C_amount + C_after (sender side) and, if
// recipient is non-nil, that C_recipient_new = C_recipient_old + C_amount.
func Prove(tr *transcript.Transcript,
	cBefore, cAmount, cAfter ristretto.Point,
	before, amount, after, rBefore, rAmount, rAfter ristretto.Scalar,
	recipient *RecipientUpdate,
) (Proof, error) {
	combined := cAmount.Add(cAfter)
	rCombined := rAmount.Add(rAfter)

	senderProof, err := equality.Prove(tr, cBefore, combined, before, rBefore, rCombined)
	if err != nil {
		return Proof{}, err
	}

	proof := Proof{SenderEquality: senderProof}
	if recipient == nil {
		return proof, nil
	}

	recCombined := recipient.COld.Add(cAmount)
	recRCombined := recipient.ROld.Add(rAmount)
	recProof, err := equality.Prove(tr, recipient.CNew, recCombined,
		recipient.New, recipient.RNew, recRCombined)
	if err != nil {
		return Proof{}, err
	}

	proof.RecipientEquality = recProof
	proof.HasRecipient = true
	return proof, nil
}

// RecipientUpdate carries the recipient-side commitments and openings
// needed to additionally prove C_recipient_new = C_recipient_old + C_amount.
type RecipientUpdate struct {
	COld ristretto.Point
	CNew ristretto.Point
	ROld ristretto.Scalar
	New  ristretto.Scalar
	RNew ristretto.Scalar
}

// Verify checks the sender equality proof and, when present, the recipient
// equality proof, against the given commitments.
func Verify(tr *transcript.Transcript,
	cBefore, cAmount, cAfter ristretto.Point,
	proof Proof,
	recipientOld, recipientNew *ristretto.Point,
) bool {
	combined := cAmount.Add(cAfter)
	if !equality.Verify(tr, cBefore, combined, proof.SenderEquality) {
		return false
	}

	if !proof.HasRecipient {
		return true
	}
	if recipientOld == nil || recipientNew == nil {
		return false
	}

	recCombined := recipientOld.Add(cAmount)
	return equality.Verify(tr, *recipientNew, recCombined, proof.RecipientEquality)
}

// Package submission builds and parses the wire envelope a confidential
// transfer travels in between the prover and the on-chain/off-chain
// verifier: the three sender-side commitments plus the compact transfer
// proof, tagged with a correlation ID so a submitter can match an
// asynchronous verification result back to its request. It follows the
// ID-tagged-request shape common across the pack's service-layer repos
// (github.com/google/uuid as the correlation ID type) and enforces the
// payload's external size ceiling the way serialize enforces the proof's
// own.
package submission

import (
	"github.com/google/uuid"

	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/serialize"
	"github.com/shieldedpay/confproof/transfer"
)

// MaxEnvelopeSize is the external payload ceiling this envelope must fit
// under (a Solana transaction instruction's size budget).
const MaxEnvelopeSize = 1232

const (
	idSize    = 16
	pointSize = 32
)

// Envelope is the wire-submission unit: a correlation ID, the three
// sender-side commitments, and the compact transfer proof.
type Envelope struct {
	ID                       uuid.UUID
	CBefore, CAmount, CAfter [32]byte
	Proof                    serialize.CompactTransferProof
}

// Build assembles an envelope from a proved transfer, generating a fresh
// correlation ID.
func Build(proof transfer.Proof) (Envelope, error) {
	compactAmount, err := serialize.EncodeRangeProof(proof.AmountRange)
	if err != nil {
		return Envelope{}, err
	}
	compactAfter, err := serialize.EncodeRangeProof(proof.AfterRange)
	if err != nil {
		return Envelope{}, err
	}
	compactValidity := serialize.EncodeValidityProof(proof.Validity)

	return Envelope{
		ID:      uuid.New(),
		CBefore: proof.CBefore.Compress(),
		CAmount: proof.CAmount.Compress(),
		CAfter:  proof.CAfter.Compress(),
		Proof: serialize.CompactTransferProof{
			AmountRange: compactAmount,
			AfterRange:  compactAfter,
			Validity:    compactValidity,
		},
	}, nil
}

// Bytes encodes e as id || cBefore || cAmount || cAfter || compactTransferProof,
// refusing anything that would exceed MaxEnvelopeSize.
func (e Envelope) Bytes() ([]byte, error) {
	proofBytes, err := e.Proof.Bytes()
	if err != nil {
		return nil, err
	}

	total := idSize + 3*pointSize + len(proofBytes)
	if total > MaxEnvelopeSize {
		return nil, errs.SizeExceeded
	}

	out := make([]byte, 0, total)
	idBytes, err := e.ID.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out = append(out, idBytes...)
	out = append(out, e.CBefore[:]...)
	out = append(out, e.CAmount[:]...)
	out = append(out, e.CAfter[:]...)
	out = append(out, proofBytes[:]...)
	return out, nil
}

// Parse decodes an envelope previously produced by Bytes.
func Parse(b []byte) (Envelope, error) {
	want := idSize + 3*pointSize + serialize.CompactTransferProofSize
	if len(b) != want {
		return Envelope{}, errs.InvalidEncoding
	}

	var e Envelope
	o := 0
	if err := e.ID.UnmarshalBinary(b[o : o+idSize]); err != nil {
		return Envelope{}, errs.InvalidEncoding
	}
	o += idSize
	copy(e.CBefore[:], b[o:o+pointSize])
	o += pointSize
	copy(e.CAmount[:], b[o:o+pointSize])
	o += pointSize
	copy(e.CAfter[:], b[o:o+pointSize])
	o += pointSize

	proof, err := serialize.DecodeCompactTransferProof(b[o:])
	if err != nil {
		return Envelope{}, err
	}
	e.Proof = proof
	return e, nil
}

// Commitments decompresses the three commitments carried in e.
func (e Envelope) Commitments() (before, amount, after ristretto.Point, err error) {
	before, err = ristretto.DecompressPoint(e.CBefore)
	if err != nil {
		return
	}
	amount, err = ristretto.DecompressPoint(e.CAmount)
	if err != nil {
		return
	}
	after, err = ristretto.DecompressPoint(e.CAfter)
	return
}

// Package serialize implements the fixed-size wire encodings the external
// wire-submission layer and off-chain verifier (see §6 of the accompanying
// design notes) consume: a 273-byte compact range proof, a 144-byte compact
// validity proof, and their 690-byte concatenation, each carrying just
// enough to structurally validate and link to a full proof held off-chain,
// never enough to verify independently. This mirrors the reference
// implementation's one-marshal-struct-per-proof-type organization (see
// bulletproofs/marshal.go, voteproof/marshal.go) but targets a fixed binary
// layout instead of JSON, since the wire consumer here is a byte-budget-
// constrained instruction payload rather than a JSON API.
package serialize

import (
	"crypto/sha256"

	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/rangeproof"
	"github.com/shieldedpay/confproof/validity"
)

const (
	// CompactRangeProofSize is the fixed size of a compact range proof envelope.
	CompactRangeProofSize = 273
	// CompactValidityProofSize is the fixed size of a compact validity proof envelope.
	CompactValidityProofSize = 144
	// CompactTransferProofSize is the fixed size of a compact transfer proof envelope.
	CompactTransferProofSize = 690
)

// CompactRangeProof is the 273-byte wire envelope for a range proof.
type CompactRangeProof struct {
	V, A, S, T1, T2  [32]byte
	Taux, Mu, T      [32]byte
	N                byte
	Hash             [16]byte
}

func rangeProofHash(p rangeproof.Proof) [16]byte {
	h := sha256.New()
	write := func(b [32]byte) { h.Write(b[:]) }
	write(p.V.Compress())
	write(p.A.Compress())
	write(p.S.Compress())
	write(p.T1.Compress())
	write(p.T2.Compress())
	write(p.Taux.Bytes())
	write(p.Mu.Bytes())
	write(p.T.Bytes())
	h.Write([]byte{byte(p.N)})
	for _, l := range p.IPP.L {
		write(l.Compress())
	}
	for _, r := range p.IPP.R {
		write(r.Compress())
	}
	write(p.IPP.A.Bytes())
	write(p.IPP.B.Bytes())

	sum := h.Sum(nil)
	var out [16]byte
	copy(out[:], sum[:16])
	return out
}

// EncodeRangeProof builds the compact envelope for a full range proof.
func EncodeRangeProof(p rangeproof.Proof) (CompactRangeProof, error) {
	if p.N < 0 || p.N > 255 {
		return CompactRangeProof{}, errs.SizeExceeded
	}
	return CompactRangeProof{
		V: p.V.Compress(), A: p.A.Compress(), S: p.S.Compress(),
		T1: p.T1.Compress(), T2: p.T2.Compress(),
		Taux: p.Taux.Bytes(), Mu: p.Mu.Bytes(), T: p.T.Bytes(),
		N:    byte(p.N),
		Hash: rangeProofHash(p),
	}, nil
}

// VerifyProofHash reports whether c was produced from p, i.e. whether its
// truncated hash matches p's recomputed hash.
func VerifyProofHash(c CompactRangeProof, p rangeproof.Proof) bool {
	return c.Hash == rangeProofHash(p)
}

// Bytes encodes c as its fixed 273-byte wire form.
func (c CompactRangeProof) Bytes() [CompactRangeProofSize]byte {
	var out [CompactRangeProofSize]byte
	o := 0
	put := func(b []byte) { copy(out[o:], b); o += len(b) }
	put(c.V[:])
	put(c.A[:])
	put(c.S[:])
	put(c.T1[:])
	put(c.T2[:])
	put(c.Taux[:])
	put(c.Mu[:])
	put(c.T[:])
	out[o] = c.N
	o++
	put(c.Hash[:])
	return out
}

// DecodeCompactRangeProof parses a 273-byte wire form.
func DecodeCompactRangeProof(b []byte) (CompactRangeProof, error) {
	if len(b) != CompactRangeProofSize {
		return CompactRangeProof{}, errs.InvalidEncoding
	}
	var c CompactRangeProof
	o := 0
	take := func(dst []byte) { copy(dst, b[o:o+len(dst)]); o += len(dst) }
	take(c.V[:])
	take(c.A[:])
	take(c.S[:])
	take(c.T1[:])
	take(c.T2[:])
	take(c.Taux[:])
	take(c.Mu[:])
	take(c.T[:])
	c.N = b[o]
	o++
	take(c.Hash[:])
	return c, nil
}

// CompactValidityProof is the 144-byte wire envelope for a validity proof.
type CompactValidityProof struct {
	SenderR, SenderS       [32]byte
	RecipientR, RecipientS [32]byte
	Hash                   [16]byte
}

func validityProofHash(senderR, senderS, recipientR, recipientS [32]byte, hasRecipient bool) [16]byte {
	h := sha256.New()
	h.Write(senderR[:])
	h.Write(senderS[:])
	h.Write(recipientR[:])
	h.Write(recipientS[:])
	if hasRecipient {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	var out [16]byte
	copy(out[:], sum[:16])
	return out
}

// EncodeValidityProof builds the compact envelope for a validity proof.
// The recipient fields are zero-filled when no recipient update is present.
func EncodeValidityProof(p validity.Proof) CompactValidityProof {
	senderR := p.SenderEquality.R.Compress()
	senderS := p.SenderEquality.S.Bytes()

	var recipientR, recipientS [32]byte
	if p.HasRecipient {
		recipientR = p.RecipientEquality.R.Compress()
		recipientS = p.RecipientEquality.S.Bytes()
	}

	return CompactValidityProof{
		SenderR: senderR, SenderS: senderS,
		RecipientR: recipientR, RecipientS: recipientS,
		Hash: validityProofHash(senderR, senderS, recipientR, recipientS, p.HasRecipient),
	}
}

// VerifyProofHash reports whether c was produced from p.
func (c CompactValidityProof) VerifyProofHash(p validity.Proof) bool {
	return c.Hash == EncodeValidityProof(p).Hash
}

// Bytes encodes c as its fixed 144-byte wire form.
func (c CompactValidityProof) Bytes() [CompactValidityProofSize]byte {
	var out [CompactValidityProofSize]byte
	o := 0
	put := func(b []byte) { copy(out[o:], b); o += len(b) }
	put(c.SenderR[:])
	put(c.SenderS[:])
	put(c.RecipientR[:])
	put(c.RecipientS[:])
	put(c.Hash[:])
	return out
}

// DecodeCompactValidityProof parses a 144-byte wire form.
func DecodeCompactValidityProof(b []byte) (CompactValidityProof, error) {
	if len(b) != CompactValidityProofSize {
		return CompactValidityProof{}, errs.InvalidEncoding
	}
	var c CompactValidityProof
	o := 0
	take := func(dst []byte) { copy(dst, b[o:o+len(dst)]); o += len(dst) }
	take(c.SenderR[:])
	take(c.SenderS[:])
	take(c.RecipientR[:])
	take(c.RecipientS[:])
	take(c.Hash[:])
	return c, nil
}

// CompactTransferProof is the 690-byte concatenation of the amount range
// proof, the sender-after range proof, and the validity proof envelopes.
type CompactTransferProof struct {
	AmountRange CompactRangeProof
	AfterRange  CompactRangeProof
	Validity    CompactValidityProof
}

// Bytes encodes t as its fixed 690-byte wire form, refusing to emit
// anything past the ceiling — a defensive check against a future field
// addition rather than something the current fixed layout can trigger.
func (t CompactTransferProof) Bytes() ([CompactTransferProofSize]byte, error) {
	var out [CompactTransferProofSize]byte
	amount := t.AmountRange.Bytes()
	after := t.AfterRange.Bytes()
	valid := t.Validity.Bytes()

	total := len(amount) + len(after) + len(valid)
	if total > CompactTransferProofSize {
		return out, errs.SizeExceeded
	}

	o := 0
	o += copy(out[o:], amount[:])
	o += copy(out[o:], after[:])
	copy(out[o:], valid[:])
	return out, nil
}

// DecodeCompactTransferProof parses a 690-byte wire form.
func DecodeCompactTransferProof(b []byte) (CompactTransferProof, error) {
	if len(b) != CompactTransferProofSize {
		return CompactTransferProof{}, errs.InvalidEncoding
	}
	amount, err := DecodeCompactRangeProof(b[:CompactRangeProofSize])
	if err != nil {
		return CompactTransferProof{}, err
	}
	after, err := DecodeCompactRangeProof(b[CompactRangeProofSize : 2*CompactRangeProofSize])
	if err != nil {
		return CompactTransferProof{}, err
	}
	valid, err := DecodeCompactValidityProof(b[2*CompactRangeProofSize:])
	if err != nil {
		return CompactTransferProof{}, err
	}
	return CompactTransferProof{AmountRange: amount, AfterRange: after, Validity: valid}, nil
}

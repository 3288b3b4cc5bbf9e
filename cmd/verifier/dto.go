package main

import (
	"encoding/base64"

	"github.com/shieldedpay/confproof/errs"
	"github.com/shieldedpay/confproof/ipa"
	"github.com/shieldedpay/confproof/rangeproof"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/validity"
)

// ipaProofDTO is the JSON shape of an ipa.Proof.
type ipaProofDTO struct {
	L []string `json:"l"`
	R []string `json:"r"`
	A string   `json:"a"`
	B string   `json:"b"`
}

// rangeProofDTO is the JSON shape of a rangeproof.Proof.
type rangeProofDTO struct {
	V    string      `json:"v"`
	A    string      `json:"a"`
	S    string      `json:"s"`
	T1   string      `json:"t1"`
	T2   string      `json:"t2"`
	Taux string      `json:"taux"`
	Mu   string      `json:"mu"`
	T    string      `json:"t"`
	N    int         `json:"n"`
	IPP  ipaProofDTO `json:"ipp"`
}

// validityProofDTO is the JSON shape of a validity.Proof.
type validityProofDTO struct {
	SenderR      string `json:"sender_r"`
	SenderS      string `json:"sender_s"`
	RecipientR   string `json:"recipient_r,omitempty"`
	RecipientS   string `json:"recipient_s,omitempty"`
	HasRecipient bool   `json:"has_recipient"`
}

// VerifyRequest is the POST /proofs/verify request body.
type VerifyRequest struct {
	CBefore          string           `json:"c_before"`
	CAmount          string           `json:"c_amount"`
	CAfter           string           `json:"c_after"`
	AmountRange      rangeProofDTO    `json:"amount_range"`
	AfterRange       rangeProofDTO    `json:"after_range"`
	Validity         validityProofDTO `json:"validity"`
	RecipientCBefore string           `json:"recipient_c_before,omitempty"`
	RecipientCAfter  string           `json:"recipient_c_after,omitempty"`
	Envelope         string           `json:"envelope"`
}

// VerifyResponse is the POST /proofs/verify response body.
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func decodePoint(s string) (ristretto.Point, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil || len(raw) != 32 {
		return ristretto.Point{}, errs.InvalidEncoding
	}
	var buf [32]byte
	copy(buf[:], raw)
	return ristretto.DecompressPoint(buf)
}

func decodeScalar(s string) (ristretto.Scalar, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ristretto.Scalar{}, errs.InvalidEncoding
	}
	return ristretto.DecodeScalar(raw)
}

func decodeIPAProof(dto ipaProofDTO) (ipa.Proof, error) {
	l := make([]ristretto.Point, len(dto.L))
	for i, s := range dto.L {
		p, err := decodePoint(s)
		if err != nil {
			return ipa.Proof{}, err
		}
		l[i] = p
	}
	r := make([]ristretto.Point, len(dto.R))
	for i, s := range dto.R {
		p, err := decodePoint(s)
		if err != nil {
			return ipa.Proof{}, err
		}
		r[i] = p
	}
	a, err := decodeScalar(dto.A)
	if err != nil {
		return ipa.Proof{}, err
	}
	b, err := decodeScalar(dto.B)
	if err != nil {
		return ipa.Proof{}, err
	}
	return ipa.Proof{L: l, R: r, A: a, B: b}, nil
}

func decodeRangeProof(dto rangeProofDTO) (rangeproof.Proof, error) {
	var out rangeproof.Proof
	var err error
	if out.V, err = decodePoint(dto.V); err != nil {
		return out, err
	}
	if out.A, err = decodePoint(dto.A); err != nil {
		return out, err
	}
	if out.S, err = decodePoint(dto.S); err != nil {
		return out, err
	}
	if out.T1, err = decodePoint(dto.T1); err != nil {
		return out, err
	}
	if out.T2, err = decodePoint(dto.T2); err != nil {
		return out, err
	}
	if out.Taux, err = decodeScalar(dto.Taux); err != nil {
		return out, err
	}
	if out.Mu, err = decodeScalar(dto.Mu); err != nil {
		return out, err
	}
	if out.T, err = decodeScalar(dto.T); err != nil {
		return out, err
	}
	if out.IPP, err = decodeIPAProof(dto.IPP); err != nil {
		return out, err
	}
	out.N = dto.N
	return out, nil
}

func decodeValidityProof(dto validityProofDTO) (validity.Proof, error) {
	var out validity.Proof
	var err error
	if out.SenderEquality.R, err = decodePoint(dto.SenderR); err != nil {
		return out, err
	}
	if out.SenderEquality.S, err = decodeScalar(dto.SenderS); err != nil {
		return out, err
	}
	out.HasRecipient = dto.HasRecipient
	if !dto.HasRecipient {
		return out, nil
	}
	if out.RecipientEquality.R, err = decodePoint(dto.RecipientR); err != nil {
		return out, err
	}
	if out.RecipientEquality.S, err = decodeScalar(dto.RecipientS); err != nil {
		return out, err
	}
	return out, nil
}

package main

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	internallog "github.com/shieldedpay/confproof/internal/log"
	"github.com/shieldedpay/confproof/serialize"
	"github.com/shieldedpay/confproof/submission"
	"github.com/shieldedpay/confproof/transfer"
)

var logger = internallog.Default().Module("verifier")

// verifyHandler implements POST /proofs/verify: it recomputes the compact
// hash of the full proof and checks it matches the 16-byte truncated hash
// carried in the wire envelope, then runs full verification over the full
// proof (spec.md §6.2).
func verifyHandler(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, VerifyResponse{Error: err.Error()})
		return
	}

	proof, err := decodeProof(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, VerifyResponse{Error: err.Error()})
		return
	}

	envelope, err := decodeEnvelope(req.Envelope)
	if err != nil {
		c.JSON(http.StatusBadRequest, VerifyResponse{Error: err.Error()})
		return
	}

	if !linksMatch(proof, envelope) {
		logger.Warn("compact envelope does not link to submitted full proof")
		c.JSON(http.StatusOK, VerifyResponse{Valid: false, Error: "envelope does not link to full proof"})
		return
	}

	ok, err := transfer.Verify(proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, VerifyResponse{Error: err.Error()})
		return
	}

	logger.Info("proof verified", "valid", ok)
	c.JSON(http.StatusOK, VerifyResponse{Valid: ok})
}

func decodeProof(req VerifyRequest) (transfer.Proof, error) {
	var proof transfer.Proof
	var err error

	if proof.CBefore, err = decodePoint(req.CBefore); err != nil {
		return proof, err
	}
	if proof.CAmount, err = decodePoint(req.CAmount); err != nil {
		return proof, err
	}
	if proof.CAfter, err = decodePoint(req.CAfter); err != nil {
		return proof, err
	}
	if proof.AmountRange, err = decodeRangeProof(req.AmountRange); err != nil {
		return proof, err
	}
	if proof.AfterRange, err = decodeRangeProof(req.AfterRange); err != nil {
		return proof, err
	}
	if proof.Validity, err = decodeValidityProof(req.Validity); err != nil {
		return proof, err
	}

	if req.RecipientCBefore != "" {
		before, err := decodePoint(req.RecipientCBefore)
		if err != nil {
			return proof, err
		}
		after, err := decodePoint(req.RecipientCAfter)
		if err != nil {
			return proof, err
		}
		proof.RecipientCBefore = &before
		proof.RecipientCAfter = &after
	}

	return proof, nil
}

func decodeEnvelope(b64 string) (submission.Envelope, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return submission.Envelope{}, err
	}
	return submission.Parse(raw)
}

// linksMatch recomputes the compact envelope from the full proof and
// checks its truncated hash, and the commitments it carries, against what
// the submitter sent on the wire. It also checks that each range proof's
// own commitment is the same point as the transfer-level commitment it is
// supposed to certify, the same binding transfer.Verify enforces: without
// it, a submitted full proof could carry range proofs over commitments
// unrelated to CAmount/CAfter and still clear every other check here.
func linksMatch(proof transfer.Proof, envelope submission.Envelope) bool {
	if proof.CBefore.Compress() != envelope.CBefore {
		return false
	}
	if proof.CAmount.Compress() != envelope.CAmount {
		return false
	}
	if proof.CAfter.Compress() != envelope.CAfter {
		return false
	}
	if !proof.AmountRange.V.Equal(proof.CAmount) {
		return false
	}
	if !proof.AfterRange.V.Equal(proof.CAfter) {
		return false
	}
	if !serialize.VerifyProofHash(envelope.Proof.AmountRange, proof.AmountRange) {
		return false
	}
	if !serialize.VerifyProofHash(envelope.Proof.AfterRange, proof.AfterRange) {
		return false
	}
	if !envelope.Proof.Validity.VerifyProofHash(proof.Validity) {
		return false
	}
	return true
}

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shieldedpay/confproof/rangeproof"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/submission"
	"github.com/shieldedpay/confproof/transfer"
)

func scalar(x uint64) ristretto.Scalar { return ristretto.ScalarFromUint64(x) }

func b64Point(p ristretto.Point) string {
	b := p.Compress()
	return base64.StdEncoding.EncodeToString(b[:])
}

func b64Scalar(s ristretto.Scalar) string {
	b := s.Bytes()
	return base64.StdEncoding.EncodeToString(b[:])
}

func rangeProofToDTO(p rangeproof.Proof) rangeProofDTO {
	l := make([]string, len(p.IPP.L))
	for i, pt := range p.IPP.L {
		l[i] = b64Point(pt)
	}
	r := make([]string, len(p.IPP.R))
	for i, pt := range p.IPP.R {
		r[i] = b64Point(pt)
	}
	return rangeProofDTO{
		V: b64Point(p.V), A: b64Point(p.A), S: b64Point(p.S),
		T1: b64Point(p.T1), T2: b64Point(p.T2),
		Taux: b64Scalar(p.Taux), Mu: b64Scalar(p.Mu), T: b64Scalar(p.T),
		N: p.N,
		IPP: ipaProofDTO{L: l, R: r, A: b64Scalar(p.IPP.A), B: b64Scalar(p.IPP.B)},
	}
}

func buildRequest(t *testing.T, proof transfer.Proof) VerifyRequest {
	t.Helper()
	envelope, err := submission.Build(proof)
	require.NoError(t, err)
	envBytes, err := envelope.Bytes()
	require.NoError(t, err)

	return VerifyRequest{
		CBefore: b64Point(proof.CBefore), CAmount: b64Point(proof.CAmount), CAfter: b64Point(proof.CAfter),
		AmountRange: rangeProofToDTO(proof.AmountRange),
		AfterRange:  rangeProofToDTO(proof.AfterRange),
		Validity: validityProofDTO{
			SenderR: b64Point(proof.Validity.SenderEquality.R),
			SenderS: b64Scalar(proof.Validity.SenderEquality.S),
		},
		Envelope: base64.StdEncoding.EncodeToString(envBytes),
	}
}

func TestVerifyHandlerAcceptsValidProof(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := transfer.Request{
		SenderBefore: 100, Amount: 30, SenderAfter: 70,
		RBefore: scalar(1), RAmount: scalar(2), RAfter: scalar(3),
		BitWidth: 16,
	}
	proof, err := transfer.Prove(req)
	require.NoError(t, err)

	body, err := json.Marshal(buildRequest(t, proof))
	require.NoError(t, err)

	router := gin.New()
	router.POST("/proofs/verify", verifyHandler)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/proofs/verify", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusOK, w.Code)
	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Valid)
}

func TestVerifyHandlerRejectsLinkMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := transfer.Request{
		SenderBefore: 100, Amount: 30, SenderAfter: 70,
		RBefore: scalar(1), RAmount: scalar(2), RAfter: scalar(3),
		BitWidth: 16,
	}
	proof, err := transfer.Prove(req)
	require.NoError(t, err)

	reqBody := buildRequest(t, proof)
	reqBody.CAfter = b64Point(proof.CAfter.Add(proof.CAfter))
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/proofs/verify", verifyHandler)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/proofs/verify", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusOK, w.Code)
	var resp VerifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Valid)
}

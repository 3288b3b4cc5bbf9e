// Command demo walks through one confidential transfer end to end: prove,
// serialize to the compact wire envelope, and verify, timing each stage.
// It plays the role the reference implementation's main.go/voter.go/
// server.go trio plays for an ElGamal vote cast-then-verify cycle, restated
// for a confidential balance transfer instead of a ballot.
package main

import (
	"fmt"
	"time"

	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/submission"
	"github.com/shieldedpay/confproof/transfer"
)

func buildRequest() transfer.Request {
	senderBefore := uint64(1_000_000)
	amount := uint64(250_000)
	senderAfter := senderBefore - amount

	rBefore, _ := ristretto.RandomScalar()
	rAmount, _ := ristretto.RandomScalar()
	rAfter, _ := ristretto.RandomScalar()

	return transfer.Request{
		SenderBefore: senderBefore,
		Amount:       amount,
		SenderAfter:  senderAfter,
		RBefore:      rBefore,
		RAmount:      rAmount,
		RAfter:       rAfter,
		BitWidth:     32,
	}
}

func main() {
	req := buildRequest()

	fmt.Println("Proving transfer")
	startProve := time.Now()
	proof, err := transfer.Prove(req)
	if err != nil {
		fmt.Println("prove failed:", err)
		return
	}
	durationProve := time.Since(startProve)
	fmt.Println("Prove time:", durationProve)

	fmt.Println()
	fmt.Println("Building wire envelope")
	envelope, err := submission.Build(proof)
	if err != nil {
		fmt.Println("envelope build failed:", err)
		return
	}
	wire, err := envelope.Bytes()
	if err != nil {
		fmt.Println("envelope encode failed:", err)
		return
	}
	fmt.Println("Envelope size:", len(wire), "bytes (ceiling", submission.MaxEnvelopeSize, ")")

	fmt.Println()
	fmt.Println("Verifying transfer")
	startVerify := time.Now()
	ok, err := transfer.Verify(proof)
	if err != nil {
		fmt.Println("verify failed:", err)
		return
	}
	durationVerify := time.Since(startVerify)
	fmt.Println("Verify time:", durationVerify)

	fmt.Println()
	fmt.Println("Transfer proof is valid:", ok)
}

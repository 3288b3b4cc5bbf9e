// Command verifier runs the off-chain verifier HTTP surface (spec.md §6.2):
// it accepts a full transfer proof plus its compact wire envelope, checks
// the envelope genuinely links to the proof, then runs full verification.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	r := gin.Default()
	r.POST("/proofs/verify", verifyHandler)

	addr := os.Getenv("CONFPROOF_VERIFIER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		logger.Error("verifier server exited", "err", err)
		os.Exit(1)
	}
}

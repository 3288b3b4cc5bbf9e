// Package transcript implements the Merlin-style Fiat-Shamir transcript the
// rest of the proof engine shares: a labelled append log whose every byte
// and ordering choice is part of the wire contract. The reference
// implementation this engine must interoperate with fixes the exact append
// framing and challenge-extraction formula; this is a direct, literal port
// of that framing rather than a generic transcript abstraction; see the
// accumulate-then-hash translation note this follows instead of pulling in
// a native Merlin/STROBE implementation.
package transcript

import (
	"encoding/binary"
	"strconv"

	"golang.org/x/crypto/sha3"

	"github.com/shieldedpay/confproof/ristretto"
)

// Transcript is an append-only byte log plus a rolling SHAKE256 state.
type Transcript struct {
	state []byte
}

// New starts a fresh transcript with the fixed initial state.
func New() *Transcript {
	t := &Transcript{}
	t.state = append(t.state, []byte("Merlin v1.0")...)
	return t
}

// AppendMessage appends |label|_1 || label || |msg|_4 || msg to the state.
func (t *Transcript) AppendMessage(label string, msg []byte) {
	t.state = append(t.state, byte(len(label)))
	t.state = append(t.state, label...)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(msg)))
	t.state = append(t.state, lenBuf[:]...)
	t.state = append(t.state, msg...)
}

// AppendPoint appends a compressed point under the given label.
func (t *Transcript) AppendPoint(label string, p ristretto.Point) {
	b := p.Compress()
	t.AppendMessage(label, b[:])
}

// AppendScalar appends a scalar's little-endian encoding under the given label.
func (t *Transcript) AppendScalar(label string, s ristretto.Scalar) {
	b := s.Bytes()
	t.AppendMessage(label, b[:])
}

// ChallengeScalar draws the next challenge: it appends an empty message
// under label, squeezes 64 bytes of SHAKE256 over the current state,
// reduces them modulo the scalar field order, feeds the squeezed bytes back
// into the log, and returns the reduced scalar. Feeding the squeeze output
// back in is what makes successive challenges from the same transcript
// independent of one another.
func (t *Transcript) ChallengeScalar(label string) ristretto.Scalar {
	t.AppendMessage(label, nil)

	h := sha3.NewShake256()
	h.Write(t.state)
	var out [64]byte
	h.Read(out[:])

	t.state = append(t.state, out[:]...)
	return ristretto.ScalarFromWideBytesModOrder(out)
}

// RangeDomSep appends the range-proof domain separator, binding the
// transcript to a specific bit-width n and (for this engine, always 1)
// aggregation factor m.
func (t *Transcript) RangeDomSep(n, m int) {
	t.AppendMessage("dom-sep", []byte(rangeDomSepBody(n, m)))
}

// IPPDomSep appends the inner-product-argument domain separator.
func (t *Transcript) IPPDomSep(n int) {
	t.AppendMessage("dom-sep", []byte(ippDomSepBody(n)))
}

func rangeDomSepBody(n, m int) string {
	return "rangeproof n=" + strconv.Itoa(n) + " m=" + strconv.Itoa(m)
}

func ippDomSepBody(n int) string {
	return "ipp n=" + strconv.Itoa(n)
}

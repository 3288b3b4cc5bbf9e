// Package transfer is the privacy façade: it orchestrates the range-proof,
// equality, and validity packages into a single prove/verify surface for a
// confidential balance transfer. It plays the role the reference
// implementation's voter.go/server.go pair plays for an ElGamal vote: the
// single place a caller hands over plaintext values and gets back
// commitments and proofs, never touching the underlying group arithmetic
// directly.
package transfer

import (
	"container/list"
	"sync"
	"time"

	"github.com/shieldedpay/confproof/errs"
	internallog "github.com/shieldedpay/confproof/internal/log"
	"github.com/shieldedpay/confproof/pedersen"
	"github.com/shieldedpay/confproof/rangeproof"
	"github.com/shieldedpay/confproof/ristretto"
	"github.com/shieldedpay/confproof/transcript"
	"github.com/shieldedpay/confproof/validity"
)

// defaultMaxCacheEntries bounds ProofCache when NewProofCache is called
// with maxEntries <= 0.
const defaultMaxCacheEntries = 4096

var logger = internallog.Default().Module("transfer")

// RecipientUpdate carries the plaintext values and blindings for an
// optional recipient-balance update bundled into the same transfer.
type RecipientUpdate struct {
	Before, After   uint64
	RBefore, RAfter ristretto.Scalar
}

// Request is the plaintext input to Prove: a sender balance moving from
// Before to After by Amount, each committed under its own blinding factor.
type Request struct {
	SenderBefore, Amount, SenderAfter uint64
	RBefore, RAmount, RAfter          ristretto.Scalar
	BitWidth                          int
	Recipient                         *RecipientUpdate
}

// Proof is the complete output of a confidential transfer: the three
// sender-side commitments, a range proof for the amount and the resulting
// sender balance, and the validity proof tying them together.
type Proof struct {
	CBefore, CAmount, CAfter ristretto.Point
	AmountRange              rangeproof.Proof
	AfterRange               rangeproof.Proof
	Validity                 validity.Proof

	RecipientCBefore, RecipientCAfter *ristretto.Point
}

func validateRequest(req Request) error {
	if req.Amount > req.SenderBefore {
		return errs.BalanceMismatch
	}
	if req.SenderBefore-req.Amount != req.SenderAfter {
		return errs.BalanceMismatch
	}
	if err := rangeproof.Setup(req.BitWidth); err != nil {
		return err
	}
	return nil
}

// Prove validates the request's arithmetic, commits to before/amount/after,
// and builds the two range proofs plus the validity proof that bind them
// together. The two range proofs are generated concurrently since neither
// depends on the other's transcript or output.
func Prove(req Request) (Proof, error) {
	return proveWithCache(req, nil)
}

// ProveWithCache behaves like Prove but consults cache for the amount and
// sender-after range proofs, keyed on (value, blinding, bit width), saving
// the IPA recursion when the same commitment is proved repeatedly.
func ProveWithCache(req Request, cache *ProofCache) (Proof, error) {
	return proveWithCache(req, cache)
}

func proveWithCache(req Request, cache *ProofCache) (Proof, error) {
	if err := validateRequest(req); err != nil {
		logger.Warn("rejected transfer request", "err", err)
		return Proof{}, err
	}

	cBefore := commit(req.SenderBefore, req.RBefore)
	cAmount := commit(req.Amount, req.RAmount)
	cAfter := commit(req.SenderAfter, req.RAfter)

	var amountProof, afterProof rangeproof.Proof
	var amountErr, afterErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		amountProof, amountErr = proveRange(cache, req.Amount, req.RAmount, req.BitWidth)
	}()
	go func() {
		defer wg.Done()
		afterProof, afterErr = proveRange(cache, req.SenderAfter, req.RAfter, req.BitWidth)
	}()
	wg.Wait()
	if amountErr != nil {
		return Proof{}, amountErr
	}
	if afterErr != nil {
		return Proof{}, afterErr
	}

	var recipient *validity.RecipientUpdate
	var recCOld, recCNew ristretto.Point
	if req.Recipient != nil {
		r := req.Recipient
		recCOld = commit(r.Before, r.RBefore)
		recCNew = commit(r.After, r.RAfter)
		recipient = &validity.RecipientUpdate{
			COld: recCOld,
			CNew: recCNew,
			ROld: r.RBefore,
			New:  ristretto.ScalarFromUint64(r.After),
			RNew: r.RAfter,
		}
	}

	validityTr := transcript.New()
	validityProof, err := validity.Prove(validityTr, cBefore, cAmount, cAfter,
		ristretto.ScalarFromUint64(req.SenderBefore), ristretto.ScalarFromUint64(req.Amount), ristretto.ScalarFromUint64(req.SenderAfter),
		req.RBefore, req.RAmount, req.RAfter, recipient)
	if err != nil {
		return Proof{}, err
	}

	out := Proof{
		CBefore: cBefore, CAmount: cAmount, CAfter: cAfter,
		AmountRange: amountProof, AfterRange: afterProof, Validity: validityProof,
	}
	if req.Recipient != nil {
		out.RecipientCBefore = &recCOld
		out.RecipientCAfter = &recCNew
	}
	logger.Info("transfer proved", "bit_width", req.BitWidth, "has_recipient", req.Recipient != nil)
	return out, nil
}

func commit(v uint64, r ristretto.Scalar) ristretto.Point {
	return pedersen.Commit(ristretto.ScalarFromUint64(v), r)
}

func proveRange(cache *ProofCache, v uint64, r ristretto.Scalar, n int) (rangeproof.Proof, error) {
	if cache != nil {
		return cache.GetOrProve(v, r, n)
	}
	tr := transcript.New()
	return rangeproof.Prove(tr, v, r, n)
}

// Verify checks every component of proof: that each range proof's own
// commitment is the same point the validity proof certifies, then both
// range proofs and the validity proof itself, in the same order Prove
// derived them in. The binding check is what stops a prover from pairing
// range proofs over one pair of commitments with a validity proof over
// an unrelated pair: without it, CAmount and CAfter could each commit to
// an out-of-range value while satisfying CBefore = CAmount + CAfter and
// every sub-verifier would still pass.
func Verify(proof Proof) (bool, error) {
	if !proof.AmountRange.V.Equal(proof.CAmount) {
		return false, nil
	}
	if !proof.AfterRange.V.Equal(proof.CAfter) {
		return false, nil
	}

	amountOK, err := rangeproof.Verify(transcript.New(), proof.AmountRange)
	if err != nil {
		return false, err
	}
	if !amountOK {
		return false, nil
	}

	afterOK, err := rangeproof.Verify(transcript.New(), proof.AfterRange)
	if err != nil {
		return false, err
	}
	if !afterOK {
		return false, nil
	}

	validityTr := transcript.New()
	return validity.Verify(validityTr, proof.CBefore, proof.CAmount, proof.CAfter,
		proof.Validity, proof.RecipientCBefore, proof.RecipientCAfter), nil
}

// BatchProve runs Prove over every request, stopping at the first error.
func BatchProve(reqs []Request) ([]Proof, error) {
	out := make([]Proof, len(reqs))
	for i, req := range reqs {
		p, err := Prove(req)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// BatchVerify verifies every proof and reports the index of the first
// failure, if any, alongside the overall result.
func BatchVerify(proofs []Proof) (bool, int, error) {
	for i, p := range proofs {
		ok, err := Verify(p)
		if err != nil {
			return false, i, err
		}
		if !ok {
			return false, i, nil
		}
	}
	return true, -1, nil
}

// ProofCache memoizes range proofs by (value, blinding, bit width) for a
// bounded TTL and a bounded entry count. A cache hit serves a proof
// generated earlier for the same public commitment rather than repeating
// the IPA recursion; it need not be byte-identical to what a fresh Prove
// call would produce, since every range proof draws its own blinding
// randomness, but it verifies just the same because verification only
// depends on the commitment and the proof's own internal consistency,
// never on which randomness produced it. Entries are tracked in a
// recency list so that once the cache is full, inserting a new entry
// evicts the least recently touched one, bounding memory regardless of
// how many distinct (value, blinding, n) keys are ever seen.
type ProofCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[cacheKey]*list.Element
	order      *list.List
}

type cacheKey struct {
	value    uint64
	blinding [32]byte
	n        int
}

type cacheEntry struct {
	key       cacheKey
	proof     rangeproof.Proof
	expiresAt time.Time
}

// NewProofCache builds a cache that evicts entries older than ttl and
// never holds more than maxEntries at once, evicting the least recently
// touched entry to make room. maxEntries <= 0 falls back to
// defaultMaxCacheEntries.
func NewProofCache(ttl time.Duration, maxEntries int) *ProofCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxCacheEntries
	}
	return &ProofCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[cacheKey]*list.Element),
		order:      list.New(),
	}
}

// GetOrProve returns a cached proof for (v, r, n) if present and unexpired,
// otherwise proves it fresh and stores the result.
func (c *ProofCache) GetOrProve(v uint64, r ristretto.Scalar, n int) (rangeproof.Proof, error) {
	key := cacheKey{value: v, blinding: r.Bytes(), n: n}

	c.mu.Lock()
	elem, ok := c.entries[key]
	if ok {
		entry := elem.Value.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			c.order.MoveToFront(elem)
			proof := entry.proof
			c.mu.Unlock()
			return proof, nil
		}
		c.removeLocked(elem)
	}
	c.mu.Unlock()

	proof, err := rangeproof.Prove(transcript.New(), v, r, n)
	if err != nil {
		return rangeproof.Proof{}, err
	}

	c.mu.Lock()
	c.insertLocked(key, proof)
	c.mu.Unlock()
	return proof, nil
}

// insertLocked stores proof under key, evicting the least recently used
// entry first if the cache is already at capacity. Callers must hold c.mu.
func (c *ProofCache) insertLocked(key cacheKey, proof rangeproof.Proof) {
	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
	for len(c.entries) >= c.maxEntries {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest)
	}
	entry := &cacheEntry{key: key, proof: proof, expiresAt: time.Now().Add(c.ttl)}
	elem := c.order.PushFront(entry)
	c.entries[key] = elem
}

// removeLocked drops elem from both the index and the recency list.
// Callers must hold c.mu.
func (c *ProofCache) removeLocked(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	delete(c.entries, entry.key)
	c.order.Remove(elem)
}

// brokenio is a wrapper around an io.ReadCloser. It allows us to set
// rates of failed read operations.
// Typical use: You get a reader for an input file. You write
// reader = brokenio.NewReader(reader, seed) to wrap the old reader.
// Everything then functions as before, but with artificial errors, so
// we can see that one bad file does not spoil a whole run.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is wrapped by every error we make up.
var ErrBroken = errors.New("brokenio: artificial read failure")

// A BrknRdrClsr is modelled on the various Readers in the standard
// library, but with variables controlling the frequency of errors.
// Probabilities run from 0 to 1, so 0.05 means failure in 5 % of calls.
type BrknRdrClsr struct {
	rdr_orig  io.ReadCloser // Wrapped reader
	rnd       *rand.Rand
	probFail  float32 // Probability of an error on any one read
	failAfter int     // Fail for sure after this many bytes, if > 0
	nCalled   int
	nByte     int
}

// SetProbFail sets the probability of a read failing.
func (r *BrknRdrClsr) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes every read fail once n bytes have been read.
func (r *BrknRdrClsr) SetFailAfter(n int) { r.failAfter = n }

// NewReader returns a new Reader, a wrapper around the old one.
// The seed makes the failures repeatable.
func NewReader(rIn io.ReadCloser, seed int64) *BrknRdrClsr {
	return &BrknRdrClsr{
		rdr_orig: rIn,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability of probFail.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err = r.rdr_orig.Read(p)
	r.nCalled++
	r.nByte += n
	if r.failAfter > 0 && r.nByte >= r.failAfter {
		return n, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
	}
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return n, fmt.Errorf("%w on call %d", ErrBroken, r.nCalled)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error {
	return r.rdr_orig.Close()
}

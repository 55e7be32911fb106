// brokenio is a wrapper around an io.Reader which breaks on request.
// Typical use: in a test, you have a reader over some good data. You write
// reader = brokenio.NewReader(reader, n) and the first n bytes come
// through as before, followed by an error.
// A failure on the first read, without an error, is what one often sees
// with a zero length file. SetZeroFile asks for that.

package brokenio

import (
	"errors"
	"fmt"
	"io"
)

// ErrBroken is returned once the reader has given out its bytes.
var ErrBroken = errors.New("brokenio: artificial read failure")

// A BrknRdr passes reads through to the wrapped reader until failAt
// bytes have gone through.
type BrknRdr struct {
	rdr_orig io.Reader // Wrapped reader
	failAt   int       // fail after this many bytes, never if negative
	zeroFile bool      // look like an empty file
	nCalled  int
	nByte    int
	verbose  bool
}

// NewReader returns a reader which fails after failAt bytes.
// A negative failAt means it never fails.
func NewReader(rIn io.Reader, failAt int) *BrknRdr {
	return &BrknRdr{rdr_orig: rIn, failAt: failAt}
}

// SetVerbose sets the verbosity flag to true or false
func (r *BrknRdr) SetVerbose(newV bool) { r.verbose = newV }

// SetZeroFile makes every read return io.EOF with no data.
func (r *BrknRdr) SetZeroFile(z bool) { r.zeroFile = z }

// NByte is the number of bytes that have gone through so far.
func (r *BrknRdr) NByte() int { return r.nByte }

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *BrknRdr) Read(p []byte) (n int, err error) {
	r.nCalled++
	if len(p) == 0 {
		return 0, nil
	}
	if r.zeroFile {
		return 0, io.EOF
	}
	if r.failAt >= 0 {
		left := r.failAt - r.nByte
		if left <= 0 {
			if r.verbose {
				fmt.Println("Breaking after", r.nCalled, "calls and", r.nByte, "bytes")
			}
			return 0, ErrBroken
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err = r.rdr_orig.Read(p)
	r.nByte += n
	return n, err
}

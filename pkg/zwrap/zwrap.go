// Package zwrap opens input files so callers do not care if they are
// compressed, and creates output files which are compressed if the name
// ends in .gz.
// Plain input files are memory mapped, since we read them once from
// start to finish. Compressed files are decompressed by pgzip, which
// reads ahead in the background.

package zwrap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/pgzip"
)

// gzip magic number
var gzMagic = []byte{0x1f, 0x8b}

// Rdr is what we return from Open. Close releases the decompressor,
// the mapping and the file, in that order.
type Rdr struct {
	rdr  io.Reader
	zrdr *pgzip.Reader
	mm   mmap.MMap
	fp   *os.File
}

// Read makes sure we read from the compressed stream if there is one.
func (r *Rdr) Read(p []byte) (int, error) { return r.rdr.Read(p) }

// Mapped says if the file is being read through a memory mapping.
func (r *Rdr) Mapped() bool { return r.mm != nil }

// Close closes the decompressor, then the mapping, then the file.
func (r *Rdr) Close() error {
	var errs []error
	if r.zrdr != nil {
		errs = append(errs, r.zrdr.Close())
	}
	if r.mm != nil {
		errs = append(errs, r.mm.Unmap())
	}
	errs = append(errs, r.fp.Close())
	return errors.Join(errs...)
}

// isGz looks at the start of a stream for the gzip magic number.
func isGz(b []byte) bool { return bytes.HasPrefix(b, gzMagic) }

// Open opens fname for reading. If the file can be mapped, we read from
// the mapping. If not (pipes, empty files), we read from the file
// itself. Either way, gzip content is recognised by its magic number.
func Open(fname string) (*Rdr, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	r := &Rdr{fp: fp}
	if fi, err := fp.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() > 0 {
		if mm, err := mmap.Map(fp, mmap.RDONLY, 0); err == nil {
			r.mm = mm
		}
	}

	var head []byte
	if r.mm != nil {
		r.rdr = bytes.NewReader(r.mm)
		head = r.mm
	} else {
		br := newPeekRdr(fp)
		r.rdr = br
		head = br.peek(len(gzMagic))
	}
	if isGz(head) {
		if r.zrdr, err = pgzip.NewReader(r.rdr); err != nil {
			r.Close()
			return nil, fmt.Errorf("%s looks compressed, but: %w", fname, err)
		}
		r.rdr = r.zrdr
	}
	return r, nil
}

// peekRdr lets us look at the first bytes of something we cannot seek on.
type peekRdr struct {
	head []byte
	rdr  io.Reader
}

func newPeekRdr(rdr io.Reader) *peekRdr { return &peekRdr{rdr: rdr} }

// peek reads up to n bytes and keeps them for the next Read.
func (p *peekRdr) peek(n int) []byte {
	buf := make([]byte, n)
	m, _ := io.ReadFull(p.rdr, buf)
	p.head = buf[:m]
	return p.head
}

func (p *peekRdr) Read(b []byte) (int, error) {
	if len(p.head) > 0 {
		n := copy(b, p.head)
		p.head = p.head[n:]
		return n, nil
	}
	return p.rdr.Read(b)
}

// Wrtr is what we return from Create. Close flushes the compressor if
// there is one, then closes the file.
type Wrtr struct {
	w    io.Writer
	zwrt *pgzip.Writer
	fp   *os.File
}

func (w *Wrtr) Write(p []byte) (int, error) { return w.w.Write(p) }

// Close finishes the compressed stream, then closes the file.
func (w *Wrtr) Close() error {
	var errs []error
	if w.zwrt != nil {
		errs = append(errs, w.zwrt.Close())
	}
	errs = append(errs, w.fp.Close())
	return errors.Join(errs...)
}

// Create creates fname. If the name ends in .gz, whatever is written
// is compressed.
func Create(fname string) (*Wrtr, error) {
	fp, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	w := &Wrtr{w: fp, fp: fp}
	if strings.HasSuffix(fname, ".gz") {
		w.zwrt = pgzip.NewWriter(fp)
		w.w = w.zwrt
	}
	return w, nil
}

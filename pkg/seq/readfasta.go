// Pull selected records out of a fasta file.

package seq

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/andrew-torda/minfasta/pkg/white"
	"github.com/andrew-torda/minfasta/pkg/zwrap"
)

const defaultReadSize = 64 * 1024

var rdsize int = defaultReadSize

// setFastaRdSize is only used during testing
func setFastaRdSize(i int) { rdsize = i }

// Extracted is what we found in one pass over a fasta file.
type Extracted struct {
	Recs    map[string]Record // records we wanted, by identifier
	NRead   int               // records seen in the file
	NFound  int               // wanted records seen, counting repeats
	Missing []string          // wanted, but not in the file, sorted
}

// builder holds the record we are in the middle of reading.
// If we do not want the record, its sequence is not kept.
type builder struct {
	rec  Record
	keep bool
	open bool
}

// start begins a new record from its header line.
func (b *builder) start(header string, want map[string]struct{}) {
	id := ParseID(header)
	_, b.keep = want[id]
	b.rec = Record{ID: id, Header: header}
	b.open = true
}

// finish files the current record. A repeated identifier replaces the
// earlier record.
func (b *builder) finish(ext *Extracted) {
	if !b.open {
		return
	}
	ext.NRead++
	if b.keep {
		ext.Recs[b.rec.ID] = b.rec
		ext.NFound++
	}
	*b = builder{}
}

// Extract reads fasta from rdr and keeps the records whose identifier
// (see ParseID) is in want. Sequence lines are joined with trailing
// white space removed. Anything before the first header is ignored.
func Extract(rdr io.Reader, want map[string]struct{}) (*Extracted, error) {
	ext := &Extracted{Recs: make(map[string]Record)}
	br := bufio.NewReaderSize(rdr, rdsize)
	var b builder
	for {
		line, err := br.ReadSlice('\n')
		if err == bufio.ErrBufferFull { // long line, so go the slow way
			long := append([]byte(nil), line...)
			var rest []byte
			rest, err = br.ReadBytes('\n')
			line = append(long, rest...)
		}
		if line = white.TrimRight(line); len(line) > 0 {
			if line[0] == MarkerChar {
				b.finish(ext)
				b.start(string(line), want)
			} else if b.keep {
				b.rec.Seq = append(b.rec.Seq, line...)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading fasta: %w", err)
		}
	}
	b.finish(ext)

	for id := range want {
		if _, ok := ext.Recs[id]; !ok {
			ext.Missing = append(ext.Missing, id)
		}
	}
	sort.Strings(ext.Missing)
	return ext, nil
}

// ExtractFile is Extract on a named file, which may be compressed.
func ExtractFile(fname string, want map[string]struct{}) (*Extracted, error) {
	fp, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	ext, err := Extract(fp, want)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return ext, nil
}

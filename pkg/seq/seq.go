// 20 Dec 2017
// 14 Oct 2026 cut down to what we need for pulling records out of a
// big reference file and writing them again.

// Package seq reads and writes sequences in fasta format.
// A record is kept with its header line exactly as it was read, so a
// file written here has the same headers as the file it came from.
package seq

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andrew-torda/minfasta/pkg/report"
	"github.com/andrew-torda/minfasta/pkg/zwrap"
)

// DefaultWidth is the number of sequence characters per output line.
const DefaultWidth = 60

// MarkerChar starts a header line.
const MarkerChar byte = '>'

const idSep = "|"

// Record is one entry from a fasta file.
type Record struct {
	ID     string // from ParseID
	Header string // the marker line, including the leading ">"
	Seq    []byte // all the sequence lines, joined
}

// Len is the number of residues.
func (r Record) Len() int { return len(r.Seq) }

// ParseID gets the identifier from a header line.
// With a UniProt style header, ">sp|P12345|NAME_HUMAN desc", it is the
// first word of the second field, P12345. Without any "|" it is the
// first word after the ">". It returns "" if there is nothing there.
func ParseID(header string) string {
	s := strings.TrimPrefix(header, string(MarkerChar))
	if parts := strings.SplitN(s, idSep, 3); len(parts) >= 2 {
		s = parts[1]
	}
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}

// Stats describes what was written.
type Stats struct {
	NRec     int     // records
	NRes     int     // residues, summed over all records
	MeanLen  float64 // NRes / NRec
	FileSize int64   // bytes on disk
}

// Report prints the statistics.
func (s *Stats) Report(r *report.Reporter) {
	const kb = 1024.
	r.Println()
	r.Printf("FASTA Statistics:")
	r.Printf("  Proteins: %d", s.NRec)
	r.Printf("  Total amino acids: %s", r.Grouped(s.NRes))
	r.Printf("  Average protein length: %.0f aa", s.MeanLen)
	r.Printf("  File size: ~%.1f KB", float64(s.FileSize)/kb)
}

// SortedIDs returns the keys of recs in order.
func SortedIDs(recs map[string]Record) []string {
	ids := make([]string, 0, len(recs))
	for id := range recs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WriteToF writes records to fname, sorted by identifier, with the
// sequence broken into lines of width characters. A record with no
// residues gets only its header. Directories leading to fname are
// created. If fname ends in .gz, the output is compressed.
func WriteToF(fname string, recs map[string]Record, width int) (stats *Stats, err error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return nil, fmt.Errorf("making directory for output: %w", err)
	}
	fp, err := zwrap.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("creating output sequence file: %w", err)
	}
	defer func() {
		if e := fp.Close(); e != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fname, e)
		}
		if err != nil {
			return
		}
		fi, e := os.Stat(fname)
		if e != nil {
			err = e
			return
		}
		stats.FileSize = fi.Size()
	}()

	stats = new(Stats)
	bw := bufio.NewWriter(fp)
	for _, id := range SortedIDs(recs) {
		rec := recs[id]
		bw.WriteString(rec.Header)
		bw.WriteByte('\n')
		for s := rec.Seq; len(s) > 0; {
			n := min(width, len(s))
			bw.Write(s[:n])
			bw.WriteByte('\n')
			s = s[n:]
		}
		stats.NRec++
		stats.NRes += rec.Len()
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", fname, err)
	}
	if stats.NRec > 0 {
		stats.MeanLen = float64(stats.NRes) / float64(stats.NRec)
	}
	return stats, nil
}

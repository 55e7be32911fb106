// 14 Oct 2026

// Package pgmatrix reads a protein group matrix as written by DIA-NN
// (report.pg_matrix.tsv) and picks the protein identifiers we want to keep.
// Rows are ranked by their mean intensity over the sample columns.
package pgmatrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Columns names the interesting columns of the matrix.
type Columns struct {
	Group        string // protein group, maybe "P1;P2;P3"
	Evidence     string // number of peptides supporting the group
	SampleSuffix string // sample intensity columns end with this
}

// DefaultColumns are the DIA-NN names.
var DefaultColumns = Columns{
	Group:        "Protein.Group",
	Evidence:     "N.Sequences",
	SampleSuffix: ".dia",
}

const groupSep = ";"

var (
	ErrMissingColumn = errors.New("required column not in header")
	ErrNoSampleCols  = errors.New("no sample columns found in matrix")
	ErrEmpty         = errors.New("matrix has no header line")
)

// ScoreRow is one protein group that passed the evidence threshold.
type ScoreRow struct {
	Group string  // as in the file
	NSeq  int     // evidence count
	Mean  float64 // mean over sample columns
	Line  int     // line number in the input, from 1
}

// Matrix is what we keep after reading. Only rows with enough evidence
// are kept.
type Matrix struct {
	Rows     []ScoreRow
	NSample  int // number of sample columns
	NDropped int // rows below the evidence threshold
}

// cleanName gets a column name into a form we can compare.
func cleanName(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(norm.NFC.String(s))
}

// colIndex finds the position of the columns we want.
func colIndex(header []string, cols Columns) (grp, evd int, samples []int, err error) {
	grp, evd = -1, -1
	for i, h := range header {
		h = cleanName(h)
		switch {
		case h == cols.Group:
			grp = i
		case h == cols.Evidence:
			evd = i
		case cols.SampleSuffix != "" && strings.HasSuffix(h, cols.SampleSuffix):
			samples = append(samples, i)
		}
	}
	if grp == -1 {
		return 0, 0, nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.Group)
	}
	if evd == -1 {
		return 0, 0, nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.Evidence)
	}
	if len(samples) == 0 {
		return 0, 0, nil, fmt.Errorf("%w (looking for names ending in %q)", ErrNoSampleCols, cols.SampleSuffix)
	}
	return grp, evd, samples, nil
}

// intensity turns a cell into a number. Anything we cannot read,
// including an empty cell, NaN or infinity, is zero.
func intensity(s string) float64 {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// mean of the sample cells in a record. Cells beyond the end of a short
// record count as zero.
func mean(record []string, samples []int) float64 {
	var sum float64
	for _, c := range samples {
		if c < len(record) {
			sum += intensity(record[c])
		}
	}
	return sum / float64(len(samples))
}

// lineRdr hands out the lines of a tab separated file, already split.
// Quotes mean nothing, so a name like "odd stays inside its own field.
type lineRdr struct {
	br *bufio.Reader
	n  int // number of the line last returned, from 1
}

// next returns the fields of the next line which is not blank, or
// io.EOF at the end. Line ends, \r\n or \n, are removed.
func (l *lineRdr) next() ([]string, error) {
	for {
		s, err := l.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if s == "" {
			return nil, io.EOF
		}
		l.n++
		if s = strings.TrimRight(s, "\r\n"); strings.TrimSpace(s) != "" {
			return strings.Split(s, "\t"), nil
		}
	}
}

// ReadMatrix reads a tab separated matrix with a header line.
// Rows with fewer than minPep supporting sequences are dropped here, so
// they cannot come back when we pick the top ranked rows.
func ReadMatrix(rdr io.Reader, cols Columns, minPep int) (*Matrix, error) {
	lr := lineRdr{br: bufio.NewReader(rdr)}
	header, err := lr.next()
	if err == io.EOF {
		return nil, ErrEmpty
	} else if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	grp, evd, samples, err := colIndex(header, cols)
	if err != nil {
		return nil, err
	}

	mtx := &Matrix{NSample: len(samples)}
	for {
		record, err := lr.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading matrix after line %d: %w", lr.n, err)
		}
		line := lr.n
		if grp >= len(record) || evd >= len(record) {
			return nil, fmt.Errorf("line %d: only %d fields", line, len(record))
		}
		nseq, err := strconv.Atoi(strings.TrimSpace(record[evd]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s is not an integer: %q", line, cols.Evidence, record[evd])
		}
		if nseq < minPep {
			mtx.NDropped++
			continue
		}
		mtx.Rows = append(mtx.Rows, ScoreRow{
			Group: record[grp],
			NSeq:  nseq,
			Mean:  mean(record, samples),
			Line:  line,
		})
	}
	return mtx, nil
}

// Select sorts rows by mean intensity, biggest first, and keeps the
// first top of them. Rows with the same mean stay in file order.
// If top is zero or negative, or not smaller than the number of rows,
// everything is kept.
// The rows in mtx are reordered.
func (mtx *Matrix) Select(top int) []ScoreRow {
	rows := mtx.Rows
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Mean > rows[j].Mean })
	if top > 0 && top < len(rows) {
		return rows[:top]
	}
	return rows
}

// KeySet is a set of single protein identifiers.
type KeySet map[string]struct{}

// Has says if id is in the set.
func (k KeySet) Has(id string) bool {
	_, ok := k[id]
	return ok
}

// Sorted returns the members of the set in order.
func (k KeySet) Sorted() []string {
	s := make([]string, 0, len(k))
	for id := range k {
		s = append(s, id)
	}
	sort.Strings(s)
	return s
}

// Expand splits protein groups like "P1; P2" into their members and
// puts them all in one set. Empty pieces are ignored.
func Expand(rows []ScoreRow) KeySet {
	keys := make(KeySet)
	for _, row := range rows {
		for _, id := range strings.Split(row.Group, groupSep) {
			if id = strings.TrimSpace(id); id != "" {
				keys[id] = struct{}{}
			}
		}
	}
	return keys
}

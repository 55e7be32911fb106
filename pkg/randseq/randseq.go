// 31 July 2020
// 14 Oct 2026 protein records with UniProt style headers

// Package randseq writes random protein sequences in fasta format. It is
// for making test data, so it also returns what it wrote.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
)

const letters = "ACDEFGHIKLMNPQRSTVWY"

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed  int64     // random number seed
	Wrtr   io.Writer // where we write to
	Nseq   int       // number of sequences
	MaxLen int       // sequences have 0 to MaxLen residues
	Width  int       // line width, random widths if zero
	Crlf   bool      // end lines with \r\n
}

// Entry is one sequence as it was written.
type Entry struct {
	ID     string
	Header string
	Seq    string
}

// getseq returns a random sequence of up to maxlen residues.
func getseq(maxlen int, rnd *rand.Rand) []byte {
	ret := make([]byte, rnd.Intn(maxlen+1))
	for i := range ret {
		ret[i] = letters[rnd.Intn(len(letters))]
	}
	return ret
}

// header makes a swissprot or trembl header, or sometimes a plain one
// with just the identifier.
func header(i int, rnd *rand.Rand) (id, hdr string) {
	id = fmt.Sprintf("Q%05d", i)
	switch rnd.Intn(3) {
	case 0:
		hdr = fmt.Sprintf(">sp|%s|P%d_HUMAN Protein %d OS=Homo sapiens", id, i, i)
	case 1:
		hdr = fmt.Sprintf(">tr|%s|T%d_MOUSE", id, i)
	default:
		hdr = fmt.Sprintf(">%s random protein %d", id, i)
	}
	return id, hdr
}

// RandSeqMain writes random sequences to args.Wrtr.
func RandSeqMain(args *RandSeqArgs) ([]Entry, error) {
	rnd := rand.New(rand.NewSource(args.Iseed))
	eol := "\n"
	if args.Crlf {
		eol = "\r\n"
	}
	entries := make([]Entry, 0, args.Nseq)
	for i := 0; i < args.Nseq; i++ {
		id, hdr := header(i, rnd)
		s := getseq(args.MaxLen, rnd)
		entries = append(entries, Entry{ID: id, Header: hdr, Seq: string(s)})
		width := args.Width
		if width <= 0 {
			width = 1 + rnd.Intn(120)
		}
		if _, err := io.WriteString(args.Wrtr, hdr+eol); err != nil {
			return nil, err
		}
		for ; len(s) > 0; s = s[min(width, len(s)):] {
			if _, err := io.WriteString(args.Wrtr, string(s[:min(width, len(s))])+eol); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}

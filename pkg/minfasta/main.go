// 14 Oct 2026

// Package minfasta makes a small fasta file holding only the proteins
// seen in a DIA-NN protein group matrix. It is for building test data
// and for re-analysis against a reduced database.
package minfasta

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/andrew-torda/minfasta/pkg/pgmatrix"
	"github.com/andrew-torda/minfasta/pkg/report"
	"github.com/andrew-torda/minfasta/pkg/seq"
	"github.com/andrew-torda/minfasta/pkg/seq/common"
	"github.com/andrew-torda/minfasta/pkg/zwrap"
)

const dfltMinPep = 2

var (
	ErrNoneSelected = errors.New("no proteins selected")
	ErrNoneFound    = errors.New("no FASTA entries found")
)

// CmdArgs is literally command line flags after parsing
type CmdArgs struct {
	MatrixFname string // report.pg_matrix.tsv
	FastaFname  string // full reference proteome
	OutFname    string // where the small fasta file goes
	Top         int    // keep only this many of the most abundant, all if <= 0
	MinPep      int    // minimum number of peptides for a protein group
	ConfigFname string // optional yaml or toml
	Plain       bool   // no colour in diagnostics
}

// ParseArgs reads the command line (without the program name).
// Usage and flag errors are written to w.
func ParseArgs(argv []string, w io.Writer) (*CmdArgs, error) {
	var args CmdArgs
	f := flag.NewFlagSet("minfasta", flag.ContinueOnError)
	f.SetOutput(w)
	f.StringVar(&args.MatrixFname, "protein-matrix", "", "DIA-NN protein matrix (report.pg_matrix.tsv)")
	f.StringVar(&args.FastaFname, "full-fasta", "", "Full FASTA file containing all proteins")
	f.StringVar(&args.OutFname, "output", "", "Output minimal FASTA file")
	f.IntVar(&args.Top, "top", 0, "Include only top N most abundant proteins (0 or less keeps all)")
	f.IntVar(&args.MinPep, "min-peptides", dfltMinPep, "Minimum peptides per protein")
	f.StringVar(&args.ConfigFname, "config", "", "yaml or toml file with column names and output settings")
	f.BoolVar(&args.Plain, "no-color", false, "do not colour warnings and errors")
	f.Usage = func() {
		fmt.Fprintln(w, "usage: minfasta --protein-matrix file --full-fasta file --output file [options]")
		f.PrintDefaults()
	}
	if err := f.Parse(argv); err != nil {
		return nil, err
	}
	if f.NArg() != 0 {
		f.Usage()
		return nil, fmt.Errorf("unexpected arguments %v", f.Args())
	}
	var missing []string
	for _, x := range []struct{ name, val string }{
		{"--protein-matrix", args.MatrixFname},
		{"--full-fasta", args.FastaFname},
		{"--output", args.OutFname},
	} {
		if x.val == "" {
			missing = append(missing, x.name)
		}
	}
	if len(missing) > 0 {
		f.Usage()
		return nil, fmt.Errorf("required: %s", strings.Join(missing, ", "))
	}
	return &args, nil
}

// mustExist checks an input file is there before we start.
func mustExist(fname, what string) error {
	if _, err := os.Stat(fname); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s not found: %s", what, fname)
	} else if err != nil {
		return err
	}
	return nil
}

// selectIDs reads the matrix and returns the identifiers we want.
func selectIDs(args *CmdArgs, cfg Config, r *report.Reporter) (pgmatrix.KeySet, error) {
	r.Printf("Reading protein matrix: %s", args.MatrixFname)
	fp, err := zwrap.Open(args.MatrixFname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	mtx, err := pgmatrix.ReadMatrix(fp, cfg.Columns(), args.MinPep)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args.MatrixFname, err)
	}
	r.Printf("Found %s", r.Count(mtx.NSample, "sample column"))
	r.Printf("Loaded %s (≥%d peptides)", r.Count(len(mtx.Rows), "protein"), args.MinPep)

	rows := mtx.Select(args.Top)
	if len(rows) < len(mtx.Rows) {
		r.Printf("Selected top %d most abundant proteins", len(rows))
	} else {
		r.Printf("Selected all %d proteins", len(rows))
	}
	keys := pgmatrix.Expand(rows)
	r.Printf("Total unique protein IDs: %d", len(keys))
	return keys, nil
}

// extract pulls the records out of the big fasta file and complains
// about the ones that are not there.
func extract(fname string, keys pgmatrix.KeySet, cfg Config, r *report.Reporter) (*seq.Extracted, error) {
	r.Println()
	r.Printf("Reading full FASTA: %s", fname)
	ext, err := seq.ExtractFile(fname, keys)
	if err != nil {
		return nil, err
	}
	r.Printf("Found %d / %d proteins in FASTA", ext.NFound, len(keys))
	if n := len(ext.Missing); n > 0 {
		r.Println()
		r.Warnf("%s not found in FASTA", r.Count(n, "protein"))
		if n <= cfg.MaxListMissing {
			r.Printf("Missing IDs: %s", strings.Join(ext.Missing, ", "))
		}
	}
	return ext, nil
}

// run is the whole pipeline. Nothing is written until we know there is
// something worth writing.
func run(args *CmdArgs, r *report.Reporter) error {
	cfg, err := LoadConfig(args.ConfigFname)
	if err != nil {
		return err
	}
	if err := mustExist(args.MatrixFname, "Protein matrix"); err != nil {
		return err
	}
	if err := mustExist(args.FastaFname, "Full FASTA"); err != nil {
		return err
	}

	keys, err := selectIDs(args, cfg, r)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return ErrNoneSelected
	}

	ext, err := extract(args.FastaFname, keys, cfg, r)
	if err != nil {
		return err
	}
	if len(ext.Recs) == 0 {
		return ErrNoneFound
	}
	if odd := seq.CheckAlphabet(ext.Recs); len(odd) > 0 {
		r.Warnf("%s with letters outside the protein alphabet", r.Count(len(odd), "sequence"))
		if len(odd) <= cfg.MaxListMissing {
			r.Printf("Odd IDs: %s", strings.Join(odd, ", "))
		}
	}

	r.Println()
	r.Printf("Writing minimal FASTA: %s", args.OutFname)
	stats, err := seq.WriteToF(args.OutFname, ext.Recs, cfg.LineWidth)
	if err != nil {
		return err
	}
	stats.Report(r)
	r.Println()
	r.Printf("Done!")
	return nil
}

// Mymain is the top level main, after parsing the command line.
// All the chatter, including errors, goes to w.
func Mymain(args *CmdArgs, w io.Writer) int {
	r := report.New(w, args.Plain)
	if err := run(args, r); err != nil {
		r.Errorf("%v", err)
		return common.ExitFailure
	}
	return common.ExitSuccess
}

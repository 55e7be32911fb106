// 14 Oct 2026
// Build a minimal fasta file from a DIA-NN protein matrix.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/andrew-torda/minfasta/pkg/minfasta"
	. "github.com/andrew-torda/minfasta/pkg/seq/common"
)

func main() {
	args, err := minfasta.ParseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(ExitSuccess)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsageError)
	}
	os.Exit(minfasta.Mymain(args, os.Stdout))
}

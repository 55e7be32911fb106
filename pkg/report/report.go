// 14 Oct 2026

// Package report prints the progress and diagnostic text of a run.
// Everything goes to one writer, normally stdout. Warnings and errors get
// a coloured prefix when the writer is a terminal.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gedex/inflector"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reporter is the one place where diagnostics are written.
type Reporter struct {
	w     io.Writer
	p     *message.Printer
	warnC *color.Color
	errC  *color.Color
}

// New returns a Reporter writing to w. If plain is set, or the
// terminal does not do colour, prefixes are written without escapes.
func New(w io.Writer, plain bool) *Reporter {
	r := &Reporter{
		w:     w,
		p:     message.NewPrinter(language.English),
		warnC: color.New(color.FgYellow, color.Bold),
		errC:  color.New(color.FgRed, color.Bold),
	}
	if plain {
		r.warnC.DisableColor()
		r.errC.DisableColor()
	}
	return r
}

// Discard is a Reporter that prints nothing. Handy in tests.
func Discard() *Reporter { return New(io.Discard, true) }

// Printf writes an informational line. A newline is added.
func (r *Reporter) Printf(format string, a ...any) {
	fmt.Fprintf(r.w, format+"\n", a...)
}

// Println writes an empty line, or the arguments separated by spaces.
func (r *Reporter) Println(a ...any) {
	fmt.Fprintln(r.w, a...)
}

// Warnf writes a line starting with WARNING:
func (r *Reporter) Warnf(format string, a ...any) {
	r.warnC.Fprint(r.w, "WARNING:")
	fmt.Fprintf(r.w, " "+format+"\n", a...)
}

// Errorf writes a line starting with ERROR:
func (r *Reporter) Errorf(format string, a ...any) {
	r.errC.Fprint(r.w, "ERROR:")
	fmt.Fprintf(r.w, " "+format+"\n", a...)
}

// Count returns something like "1 protein" or "1234 proteins".
func (r *Reporter) Count(n int, noun string) string {
	if n != 1 {
		noun = inflector.Pluralize(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// Grouped is n with digit grouping, so 12345 becomes 12,345.
func (r *Reporter) Grouped(n int) string { return r.p.Sprintf("%d", n) }

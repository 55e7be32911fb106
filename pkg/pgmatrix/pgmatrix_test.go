package pgmatrix_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/andrew-torda/minfasta/pkg/brokenio"
	. "github.com/andrew-torda/minfasta/pkg/pgmatrix"
)

// tsv joins lines and turns "|" into tabs so the tables below are
// readable.
func tsv(lines ...string) *strings.Reader {
	s := strings.Join(lines, "\n") + "\n"
	return strings.NewReader(strings.ReplaceAll(s, "|", "\t"))
}

// TestThreshold is the two row example. The second row has the higher
// intensity, but only one peptide.
func TestThreshold(t *testing.T) {
	r := tsv("Protein.Group|N.Sequences|S1.dia|S2.dia",
		"P1;P2|3|10|20",
		"P3|1|100|100")
	mtx, err := ReadMatrix(r, DefaultColumns, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mtx.NSample != 2 || mtx.NDropped != 1 || len(mtx.Rows) != 1 {
		t.Fatalf("got %d samples, %d dropped, %d rows", mtx.NSample, mtx.NDropped, len(mtx.Rows))
	}
	if m := mtx.Rows[0].Mean; m != 15 {
		t.Errorf("mean got %v want 15", m)
	}
	keys := Expand(mtx.Select(0))
	if got := keys.Sorted(); !reflect.DeepEqual(got, []string{"P1", "P2"}) {
		t.Fatalf("keys got %v", got)
	}
	if keys.Has("P3") {
		t.Fatal("P3 should have been dropped")
	}
}

// TestTop checks the ranking, including that ties stay in file order.
func TestTop(t *testing.T) {
	r := tsv("Protein.Group|N.Sequences|a.dia|b.dia|c.dia",
		"A|2|1|1|1",
		"B|5|9|9|9",
		"C|2|3|3|3",
		"D|4|3|3|3",
		"E|2|0||x",
		"F|3|9|9|9")
	mtx, err := ReadMatrix(r, DefaultColumns, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		top  int
		want []string
	}{
		{1, []string{"B"}},
		{2, []string{"B", "F"}},
		{3, []string{"B", "F", "C"}},
		{4, []string{"B", "F", "C", "D"}},
		{0, []string{"B", "F", "C", "D", "A", "E"}},
		{-1, []string{"B", "F", "C", "D", "A", "E"}},
		{100, []string{"B", "F", "C", "D", "A", "E"}},
	} {
		var got []string
		for _, row := range mtx.Select(tt.top) {
			got = append(got, row.Group)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("top %d got %v want %v", tt.top, got, tt.want)
		}
	}
}

// TestBadValues has cells which cannot be read as numbers. They are zero.
func TestBadValues(t *testing.T) {
	r := tsv("Protein.Group|N.Sequences|a.dia|b.dia|c.dia|d.dia",
		"A|2|8|NaN|junk|",
		"B|2|4|Inf",
		"C|2|-")
	mtx, err := ReadMatrix(r, DefaultColumns, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2, 1, 0}
	for i, row := range mtx.Rows {
		if row.Mean != want[i] {
			t.Errorf("row %s mean %v want %v", row.Group, row.Mean, want[i])
		}
	}
}

func TestExpand(t *testing.T) {
	rows := []ScoreRow{
		{Group: " P1 ; P2;;"},
		{Group: "P2;P3"},
		{Group: ""},
		{Group: "sp|Q9|X"},
	}
	got := Expand(rows).Sorted()
	want := []string{"P1", "P2", "P3", "sp|Q9|X"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestColumnErrors(t *testing.T) {
	for _, tt := range []struct {
		header string
		want   error
	}{
		{"Protein.Ids|N.Sequences|a.dia", ErrMissingColumn},
		{"Protein.Group|Genes|a.dia", ErrMissingColumn},
		{"Protein.Group|N.Sequences|a.raw", ErrNoSampleCols},
	} {
		_, err := ReadMatrix(tsv(tt.header, "P1|2|3"), DefaultColumns, 2)
		if !errors.Is(err, tt.want) {
			t.Errorf("header %q got error %v want %v", tt.header, err, tt.want)
		}
	}
	if _, err := ReadMatrix(strings.NewReader(""), DefaultColumns, 2); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty input got %v", err)
	}
}

func TestBadEvidence(t *testing.T) {
	r := tsv("Protein.Group|N.Sequences|a.dia",
		"P1|2|3",
		"P2|two|3")
	_, err := ReadMatrix(r, DefaultColumns, 2)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("wanted error naming line 3, got %v", err)
	}
}

// TestHeaderClean has a byte order mark, carriage returns and other
// column names.
func TestHeaderClean(t *testing.T) {
	s := "\ufeffPG\tpep\tS1.raw\tS2.raw\r\nP1\t 7 \t2\t4\r\n"
	cols := Columns{Group: "PG", Evidence: "pep", SampleSuffix: ".raw"}
	mtx, err := ReadMatrix(strings.NewReader(s), cols, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(mtx.Rows) != 1 || mtx.Rows[0].NSeq != 7 || mtx.Rows[0].Mean != 3 {
		t.Fatalf("got %+v", mtx.Rows)
	}
	if mtx.Rows[0].Line != 2 {
		t.Errorf("line got %d want 2", mtx.Rows[0].Line)
	}
}

// TestQuotes has free text with quote characters. They are just text,
// so no field swallows the tabs or lines after it.
func TestQuotes(t *testing.T) {
	r := tsv("Protein.Group|Protein.Names|N.Sequences|S1.dia",
		`P1|"odd name|3|10`,
		"P2|B|3|20",
		`P3|C "x"|3|30`,
		`P4|closing"|3|40`)
	mtx, err := ReadMatrix(r, DefaultColumns, 2)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, row := range mtx.Rows {
		got = append(got, row.Group)
	}
	if want := []string{"P1", "P2", "P3", "P4"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if mtx.Rows[0].Mean != 10 || mtx.Rows[3].Line != 5 {
		t.Fatalf("got %+v", mtx.Rows)
	}
}

// TestBlankLines are skipped, but still counted for line numbers.
func TestBlankLines(t *testing.T) {
	r := tsv("", "Protein.Group|N.Sequences|a.dia", "", "  ", "P1|2|4", "")
	mtx, err := ReadMatrix(r, DefaultColumns, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(mtx.Rows) != 1 || mtx.Rows[0].Line != 5 || mtx.Rows[0].Mean != 4 {
		t.Fatalf("got %+v", mtx.Rows)
	}
}

// TestNoNewline has no line end after the last row.
func TestNoNewline(t *testing.T) {
	s := "Protein.Group\tN.Sequences\ta.dia\nP1\t2\t4\nP2\t2\t6"
	mtx, err := ReadMatrix(strings.NewReader(s), DefaultColumns, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(mtx.Rows) != 2 || mtx.Rows[1].Mean != 6 {
		t.Fatalf("got %+v", mtx.Rows)
	}
}

func TestBrokenMatrix(t *testing.T) {
	s := "Protein.Group\tN.Sequences\ta.dia\nP1\t2\t4\nP2\t2\t6\n"
	for _, n := range []int{10, 40} {
		r := brokenio.NewReader(strings.NewReader(s), n)
		if _, err := ReadMatrix(r, DefaultColumns, 2); !errors.Is(err, brokenio.ErrBroken) {
			t.Errorf("fail at %d got %v", n, err)
		}
	}
}

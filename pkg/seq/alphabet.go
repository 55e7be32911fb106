package seq

import (
	"sort"

	"github.com/biogo/biogo/alphabet"
)

// CheckAlphabet returns the identifiers of records with characters which
// are not in the protein alphabet, sorted.
func CheckAlphabet(recs map[string]Record) []string {
	var odd []string
	for id, rec := range recs {
		for _, c := range rec.Seq {
			if !alphabet.Protein.IsValid(alphabet.Letter(c)) {
				odd = append(odd, id)
				break
			}
		}
	}
	sort.Strings(odd)
	return odd
}

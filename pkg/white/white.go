// Package white knows about the ascii white space that turns up at the
// ends of lines in sequence files.

package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// TrimRight returns s without trailing white space. It does not copy,
// so the result shares storage with s.
func TrimRight(s []byte) []byte {
	n := len(s)
	for n > 0 && asciiSpace[s[n-1]] {
		n--
	}
	return s[:n]
}

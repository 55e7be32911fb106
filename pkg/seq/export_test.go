package seq

// SetFastaRdSize lets tests use a small read buffer, so lines are longer
// than the buffer.
var SetFastaRdSize = setFastaRdSize

// DefaultReadSize is what tests should put back.
const DefaultReadSize = defaultReadSize

package grib2

import "io"

// Source supplies stream bytes to the parser.
//
// Refill must move any unread bytes to the start of buf and append newly
// available bytes after them. Adding no bytes signals the end of input.
type Source interface {
	Refill(buf *Buffer) error
}

// ReaderSource is a Source reading from an io.Reader.
type ReaderSource struct {
	r io.Reader
	n int64
}

// NewReaderSource creates a Source over r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// Refill implements Source.
func (s *ReaderSource) Refill(buf *Buffer) error {
	n, err := buf.Fill(s.r)
	s.n += int64(n)
	return err
}

// BytesRead returns the number of bytes read from the underlying reader.
func (s *ReaderSource) BytesRead() int64 {
	return s.n
}

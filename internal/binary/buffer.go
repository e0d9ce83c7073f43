package binary

import (
	"errors"
	"io"
)

// Buffer is a refillable window over a byte stream.
//
// Bytes between Pos and Limit are buffered but not yet consumed. A refill
// compacts that tail to the front of the backing array and appends whatever
// the stream yields next.
type Buffer struct {
	data  []byte
	pos   int
	limit int
}

// NewBuffer creates an empty buffer with the given capacity.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// NewBufferBytes creates a buffer whose readable span is b.
func NewBufferBytes(b []byte) *Buffer {
	return &Buffer{data: b, limit: len(b)}
}

// Pos returns the read position within the backing array.
func (b *Buffer) Pos() int { return b.pos }

// Limit returns the end of the readable span.
func (b *Buffer) Limit() int { return b.limit }

// Cap returns the size of the backing array.
func (b *Buffer) Cap() int { return len(b.data) }

// Remaining returns the number of buffered, unconsumed bytes.
func (b *Buffer) Remaining() int { return b.limit - b.pos }

// Unread returns the buffered, unconsumed bytes without copying.
func (b *Buffer) Unread() []byte { return b.data[b.pos:b.limit] }

// Skip consumes n buffered bytes.
func (b *Buffer) Skip(n int) error {
	if n < 0 || n > b.Remaining() {
		return ErrShortBuffer
	}
	b.pos += n
	return nil
}

// Reset discards all buffered bytes.
func (b *Buffer) Reset() {
	b.pos = 0
	b.limit = 0
}

// Compact moves the unread tail to the start of the backing array.
func (b *Buffer) Compact() {
	if b.pos == 0 {
		return
	}
	n := copy(b.data, b.data[b.pos:b.limit])
	b.pos = 0
	b.limit = n
}

// Grow makes sure the backing array can hold at least n unread bytes.
// It compacts as a side effect.
func (b *Buffer) Grow(n int) {
	b.Compact()
	if n <= len(b.data) {
		return
	}
	data := make([]byte, n)
	copy(data, b.data[:b.limit])
	b.data = data
}

// Fill compacts the buffer and reads from r until the backing array is full
// or r is exhausted. It returns the number of bytes added. io.EOF is not
// reported as an error; a return of zero bytes signals the end of input.
func (b *Buffer) Fill(r io.Reader) (int, error) {
	b.Compact()
	total := 0
	for b.limit < len(b.data) {
		n, err := r.Read(b.data[b.limit:])
		b.limit += n
		total += n
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

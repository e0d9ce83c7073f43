package binary

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBitReaderRead(t *testing.T) {
	// 1010 1100 | 0011 0101
	br := NewBitReader(bytes.NewReader([]byte{0xAC, 0x35}))

	steps := []struct {
		n    int
		want uint32
	}{
		{1, 1},
		{3, 0b010},
		{0, 0},
		{6, 0b110000},
		{6, 0b110101},
	}
	for i, s := range steps {
		got, err := br.Read(s.n)
		if err != nil {
			t.Fatalf("step %d: Read(%d) failed: %v", i, s.n, err)
		}
		if got != s.want {
			t.Errorf("step %d: Read(%d) = %b, want %b", i, s.n, got, s.want)
		}
	}
	if br.Buffered() != 0 {
		t.Errorf("expected no buffered bits, got %d", br.Buffered())
	}
}

func TestBitReaderChunkingInvariance(t *testing.T) {
	src := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x12, 0x34, 0x56, 0x78}

	decompositions := map[int][][]int{
		32: {{32}, {1, 31}, {7, 9, 16}, {8, 8, 8, 8}, {3, 5, 11, 13}, {1, 1, 1, 29}},
		20: {{20}, {12, 8}, {4, 4, 4, 4, 4}, {19, 1}},
		13: {{13}, {6, 7}, {1, 2, 3, 7}},
	}

	for total, parts := range decompositions {
		whole, err := NewBitReader(bytes.NewReader(src)).Read(total)
		if err != nil {
			t.Fatalf("Read(%d) failed: %v", total, err)
		}
		for _, chunks := range parts {
			br := NewBitReader(bytes.NewReader(src))
			var got uint64
			for _, n := range chunks {
				v, err := br.Read(n)
				if err != nil {
					t.Fatalf("chunks %v: Read(%d) failed: %v", chunks, n, err)
				}
				got = got<<uint(n) | uint64(v)
			}
			if uint32(got) != whole {
				t.Errorf("chunks %v: got 0x%x, want 0x%x", chunks, got, whole)
			}
		}
	}
}

func TestBitReaderContinuesAfterPartialByte(t *testing.T) {
	// 12-bit values 0xABC, 0xDEF packed into three bytes.
	br := NewBitReader(bytes.NewReader([]byte{0xAB, 0xCD, 0xEF}))
	a, err := br.Read(12)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	b, err := br.Read(12)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if a != 0xABC || b != 0xDEF {
		t.Errorf("expected 0xABC 0xDEF, got 0x%X 0x%X", a, b)
	}
}

func TestBitReaderInvalidLength(t *testing.T) {
	br := NewBitReader(bytes.NewReader(make([]byte, 8)))
	for _, n := range []int{-1, 33} {
		if _, err := br.Read(n); !errors.Is(err, ErrInvalidBitLength) {
			t.Errorf("Read(%d): expected ErrInvalidBitLength, got %v", n, err)
		}
	}
}

func TestBitReaderExhausted(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xFF}))
	if _, err := br.Read(4); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, err := br.Read(8); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

package binary

import (
	"bytes"
	"testing"
)

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteString("GRIB")
	w.WriteUint8(0x42)
	w.WriteUint16(0x0102)
	w.WriteUint32(0x01020304)
	w.WriteUint64(0x0102030405060708)
	w.WriteFloat32(1.5)
	if err := w.WriteSignMagnitude(-90, 4); err != nil {
		t.Fatalf("WriteSignMagnitude failed: %v", err)
	}
	if err := w.WriteSignMagnitude(-1, 2); err != nil {
		t.Fatalf("WriteSignMagnitude failed: %v", err)
	}

	r := NewReader(w.Bytes())
	marker, _ := r.ReadBytes(4)
	if string(marker) != "GRIB" {
		t.Errorf("expected GRIB, got %q", marker)
	}
	if v, _ := r.ReadUint8(); v != 0x42 {
		t.Errorf("uint8: got 0x%x", v)
	}
	if v, _ := r.ReadUint16(); v != 0x0102 {
		t.Errorf("uint16: got 0x%x", v)
	}
	if v, _ := r.ReadUint32(); v != 0x01020304 {
		t.Errorf("uint32: got 0x%x", v)
	}
	if v, _ := r.ReadUint64(); v != 0x0102030405060708 {
		t.Errorf("uint64: got 0x%x", v)
	}
	if v, _ := r.ReadFloat32(); v != 1.5 {
		t.Errorf("float32: got %v", v)
	}
	if v, _ := r.ReadSignMagnitude(4); v != -90 {
		t.Errorf("sign-magnitude: got %d", v)
	}
	if v, _ := r.ReadSignMagnitude(2); v != -1 {
		t.Errorf("missing: got %d", v)
	}
}

func TestWriterSignMagnitudeBytes(t *testing.T) {
	w := NewWriter()
	_ = w.WriteSignMagnitude(-2, 2)
	_ = w.WriteSignMagnitude(-1, 1)
	_ = w.WriteSignMagnitude(5, 1)
	want := []byte{0x80, 0x02, 0xFF, 0x05}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("expected % x, got % x", want, w.Bytes())
	}
}

func TestWriterPutUint32(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(0)
	w.WriteUint8(3)
	w.PutUint32(0, uint32(w.Pos()))
	want := []byte{0, 0, 0, 5, 3}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("expected % x, got % x", want, w.Bytes())
	}
}

package bitpack_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/pchchv/bitpack"
)

// untouched is an octet transport which fails the test when used.
type untouched struct {
	t *testing.T
}

func (u untouched) ReadByte() (byte, error) {
	u.t.Fatal("unexpected octet pulled from the source")
	return 0, nil
}

func (u untouched) WriteByte(byte) error {
	u.t.Fatal("unexpected octet pushed to the sink")
	return nil
}

func TestReadEOF(t *testing.T) {
	tests := []struct {
		data []byte
		n    uint
		err  error
	}{
		{[]byte{0xFF}, 8, nil},
		{[]byte{0xFF}, 2, nil},
		{[]byte{0xFF}, 9, io.ErrUnexpectedEOF},
		{[]byte{}, 1, io.EOF},
		{[]byte{0xFF, 0xFF}, 16, nil},
		{[]byte{0xFF, 0xFF}, 17, io.ErrUnexpectedEOF},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 33, nil},
		{[]byte{0xFF, 0xFF, 0xFF, 0xFF}, 64, io.ErrUnexpectedEOF},
	}

	for i, test := range tests {
		r := bitpack.NewReader(bytes.NewReader(test.data))
		if _, err := r.ReadUint64(test.n); err != test.err {
			t.Errorf("i=%d; Reading %d from %v, expected err=%v, got err=%v", i, test.n, test.data, test.err, err)
		}
	}
}

func TestReadSignedEOF(t *testing.T) {
	r := bitpack.NewReader(bytes.NewReader([]byte{0x80}))
	if _, err := r.ReadInt16(9); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected %v after the sign bit, got %v", io.ErrUnexpectedEOF, err)
	}

	r = bitpack.NewReader(bytes.NewReader(nil))
	if _, err := r.ReadInt8(2); err != io.EOF {
		t.Fatalf("expected %v before the sign bit, got %v", io.EOF, err)
	}
}

func TestReadFields(t *testing.T) {
	r := bitpack.NewReader(bytes.NewReader([]byte{0xD9}))
	b, err := r.ReadBool()
	if err != nil || !b {
		t.Fatalf("expected true, got %v (err=%v)", b, err)
	}

	if x, err := r.ReadUint8(3); err != nil || x != 5 {
		t.Fatalf("expected 5, got %d (err=%v)", x, err)
	}

	if x, err := r.ReadUint16(4); err != nil || x != 9 {
		t.Fatalf("expected 9, got %d (err=%v)", x, err)
	}

	if r.Count() != 1 {
		t.Fatalf("expected 1 octet pulled, got %d", r.Count())
	}

	if _, err := r.ReadBool(); err != io.EOF {
		t.Fatalf("expected %v, got %v", io.EOF, err)
	}
}

func TestReadSigned(t *testing.T) {
	// 100 011 1111111111
	r := bitpack.NewReader(bytes.NewReader([]byte{0x8F, 0xFF}))
	if x, err := r.ReadInt8(3); err != nil || x != -4 {
		t.Fatalf("expected -4, got %d (err=%v)", x, err)
	}

	if x, err := r.ReadInt32(3); err != nil || x != 3 {
		t.Fatalf("expected 3, got %d (err=%v)", x, err)
	}

	if x, err := r.ReadInt64(10); err != nil || x != -1 {
		t.Fatalf("expected -1, got %d (err=%v)", x, err)
	}
}

func TestReadWide(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF, 0xF0}
	r := bitpack.NewReader(bytes.NewReader(data))
	if x, err := r.ReadUint8(4); err != nil || x != 0 {
		t.Fatalf("expected 0, got %d (err=%v)", x, err)
	}

	if x, err := r.ReadUint64(64); err != nil || x != 0x123456789ABCDEFF {
		t.Fatalf("expected %#x, got %#x (err=%v)", uint64(0x123456789ABCDEFF), x, err)
	}

	if x, err := r.ReadUint8(4); err != nil || x != 0 {
		t.Fatalf("expected 0, got %d (err=%v)", x, err)
	}
}

func TestReadInvalidSize(t *testing.T) {
	r := bitpack.NewByteReader(untouched{t})
	tests := []struct {
		name string
		read func() error
	}{
		{"ReadUint8(0)", func() error { _, err := r.ReadUint8(0); return err }},
		{"ReadUint8(9)", func() error { _, err := r.ReadUint8(9); return err }},
		{"ReadUint16(17)", func() error { _, err := r.ReadUint16(17); return err }},
		{"ReadUint32(33)", func() error { _, err := r.ReadUint32(33); return err }},
		{"ReadUint64(65)", func() error { _, err := r.ReadUint64(65); return err }},
		{"ReadInt8(1)", func() error { _, err := r.ReadInt8(1); return err }},
		{"ReadInt8(9)", func() error { _, err := r.ReadInt8(9); return err }},
		{"ReadInt16(1)", func() error { _, err := r.ReadInt16(1); return err }},
		{"ReadInt32(0)", func() error { _, err := r.ReadInt32(0); return err }},
		{"ReadInt64(65)", func() error { _, err := r.ReadInt64(65); return err }},
		{"ReadBytes(0, 8)", func() error { _, err := r.ReadBytes(0, 8); return err }},
		{"ReadBytes(17, 8)", func() error { _, err := r.ReadBytes(17, 8); return err }},
		{"ReadBytes(8, 0)", func() error { _, err := r.ReadBytes(8, 0); return err }},
		{"ReadBytes(8, 9)", func() error { _, err := r.ReadBytes(8, 9); return err }},
		{"ReadFixedBytes(9)", func() error { return r.ReadFixedBytes(9, make([]byte, 1)) }},
		{"Align(0)", func() error { _, err := r.Align(0); return err }},
	}

	for _, test := range tests {
		if err := test.read(); !errors.Is(err, bitpack.ErrInvalidArgument) {
			t.Errorf("%s; expected %v, got %v", test.name, bitpack.ErrInvalidArgument, err)
		}
	}
}

func TestReadTransportError(t *testing.T) {
	want := errors.New("broken source")
	r := bitpack.NewByteReader(readerFunc(func() (byte, error) { return 0, want }))
	if _, err := r.ReadUint32(20); err != want {
		t.Fatalf("expected the transport error to pass through unchanged, got %v", err)
	}
}

type readerFunc func() (byte, error)

func (f readerFunc) ReadByte() (byte, error) {
	return f()
}

func TestReaderAlign(t *testing.T) {
	r := bitpack.NewReader(bytes.NewReader([]byte{0x80, 0xA0, 0, 0, 0xFF}))
	steps := []struct {
		name string
		do   func() (uint64, error)
		want uint64
	}{
		{"ReadBool", func() (uint64, error) { b, err := r.ReadBool(); return boolToUint(b), err }, 1},
		{"Align(1)", func() (uint64, error) { return r.Align(1) }, 7},
		{"Align(1) again", func() (uint64, error) { return r.Align(1) }, 0},
		{"ReadUint8(3)", func() (uint64, error) { x, err := r.ReadUint8(3); return uint64(x), err }, 5},
		{"Align(4)", func() (uint64, error) { return r.Align(4) }, 21},
		{"Align(4) again", func() (uint64, error) { return r.Align(4) }, 0},
		{"ReadUint8(8)", func() (uint64, error) { x, err := r.ReadUint8(8); return uint64(x), err }, 0xFF},
		{"Count", func() (uint64, error) { return r.Count(), nil }, 5},
	}

	for _, step := range steps {
		got, err := step.do()
		if err != nil {
			t.Fatalf("%s; unexpected error: %v", step.name, err)
		}
		if got != step.want {
			t.Fatalf("%s; expected %d, got %d", step.name, step.want, got)
		}
	}
}

func TestReaderAlignEOF(t *testing.T) {
	r := bitpack.NewReader(bytes.NewReader([]byte{0xAA}))
	if _, err := r.ReadUint8(3); err != nil {
		t.Fatal(err)
	}

	n, err := r.Align(4)
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("expected %v, got %v", io.ErrUnexpectedEOF, err)
	}

	if n != 5 {
		t.Fatalf("expected 5 discarded bits before running out of data, got %d", n)
	}
}

func TestReaderClose(t *testing.T) {
	c := &closeRecorder{Reader: bytes.NewReader([]byte{0xFF})}
	r := bitpack.NewReader(c)
	if _, err := r.ReadUint8(3); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	if !c.closed {
		t.Fatal("underlying source not closed")
	}
}

type closeRecorder struct {
	*bytes.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

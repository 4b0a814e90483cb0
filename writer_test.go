package bitpack_test

import (
	"bufio"
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/pchchv/bitpack"
)

func TestWriteFields(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	if err := w.WriteBool(true); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteUint8(3, 5); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteUint32(4, 9); err != nil {
		t.Fatal(err)
	}

	// the octet is complete and pushed before Close
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0xD9}) {
		t.Fatalf("expected d9, got %x", got)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if got := buf.Bytes(); !bytes.Equal(got, []byte{0xD9}) {
		t.Fatalf("Close padded a complete stream; got %x", got)
	}
}

func TestWriteSigned(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	errs := []error{
		w.WriteInt8(3, -4),
		w.WriteInt32(3, 3),
		w.WriteInt64(10, -1),
		w.Close(),
	}

	for i, err := range errs {
		if err != nil {
			t.Errorf("i=%d; unexpected error: %v", i, err)
		}
	}

	if want := []byte{0x8F, 0xFF}; !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("expected %x, got %x", want, buf.Bytes())
	}
}

func TestWriteOutOfRange(t *testing.T) {
	w := bitpack.NewByteWriter(untouched{t})
	tests := []struct {
		name  string
		write func() error
		want  error
	}{
		{"WriteUint8(4, 16)", func() error { return w.WriteUint8(4, 16) }, bitpack.ErrValueOutOfRange},
		{"WriteUint16(9, 512)", func() error { return w.WriteUint16(9, 512) }, bitpack.ErrValueOutOfRange},
		{"WriteUint32(31, 1<<31)", func() error { return w.WriteUint32(31, 1<<31) }, bitpack.ErrValueOutOfRange},
		{"WriteUint64(63, 1<<63)", func() error { return w.WriteUint64(63, 1<<63) }, bitpack.ErrValueOutOfRange},
		{"WriteInt8(3, 4)", func() error { return w.WriteInt8(3, 4) }, bitpack.ErrValueOutOfRange},
		{"WriteInt8(3, -5)", func() error { return w.WriteInt8(3, -5) }, bitpack.ErrValueOutOfRange},
		{"WriteInt16(2, 2)", func() error { return w.WriteInt16(2, 2) }, bitpack.ErrValueOutOfRange},
		{"WriteInt64(63, 1<<62)", func() error { return w.WriteInt64(63, 1<<62) }, bitpack.ErrValueOutOfRange},
		{"WriteUint8(0, 0)", func() error { return w.WriteUint8(0, 0) }, bitpack.ErrInvalidArgument},
		{"WriteUint8(9, 0)", func() error { return w.WriteUint8(9, 0) }, bitpack.ErrInvalidArgument},
		{"WriteUint64(65, 0)", func() error { return w.WriteUint64(65, 0) }, bitpack.ErrInvalidArgument},
		{"WriteInt32(1, 0)", func() error { return w.WriteInt32(1, 0) }, bitpack.ErrInvalidArgument},
		{"WriteInt16(17, 0)", func() error { return w.WriteInt16(17, 0) }, bitpack.ErrInvalidArgument},
		{"WriteBytes(0, 8, nil)", func() error { return w.WriteBytes(0, 8, nil) }, bitpack.ErrInvalidArgument},
		{"WriteBytes(4, 9, nil)", func() error { return w.WriteBytes(4, 9, nil) }, bitpack.ErrInvalidArgument},
		{"WriteBytes(1, 8, 2 bytes)", func() error { return w.WriteBytes(1, 8, []byte{1, 2}) }, bitpack.ErrInvalidArgument},
		{"WriteFixedBytes(0)", func() error { return w.WriteFixedBytes(0, []byte{1}) }, bitpack.ErrInvalidArgument},
		{"WriteASCII", func() error { return w.WriteASCII("naïve") }, bitpack.ErrValueOutOfRange},
		{"Align(0)", func() error { _, err := w.Align(0); return err }, bitpack.ErrInvalidArgument},
	}

	for _, test := range tests {
		if err := test.write(); !errors.Is(err, test.want) {
			t.Errorf("%s; expected %v, got %v", test.name, test.want, err)
		}
	}

	if w.Count() != 0 {
		t.Fatalf("rejected writes pushed %d octets", w.Count())
	}
}

func TestWriteErrorMessage(t *testing.T) {
	w := bitpack.NewWriter(&bytes.Buffer{})
	err := w.WriteUint8(4, 16)
	want := "bitpack.Writer.WriteUint8: value out of range; 16 does not fit in 4 unsigned bits"
	if err == nil || err.Error() != want {
		t.Fatalf("expected %q, got %v", want, err)
	}
}

func TestBitAccounting(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		buf := &bytes.Buffer{}
		w := bitpack.NewWriter(buf)
		var total uint
		for j := rnd.Intn(50); j >= 0; j-- {
			size := uint(rnd.Intn(64)) + 1
			if err := w.WriteUint64(size, rnd.Uint64()>>(64-size)); err != nil {
				t.Fatal(err)
			}
			total += size
		}

		// complete the last octet with a field
		if rem := total % 8; rem != 0 {
			if err := w.WriteUint8(8-rem, 0); err != nil {
				t.Fatal(err)
			}
			total += 8 - rem
		}

		if uint(buf.Len()) != total/8 || w.Count() != uint64(total/8) {
			t.Fatalf("i=%d; %d bits written, expected %d octets, got %d (count %d)", i, total, total/8, buf.Len(), w.Count())
		}

		if n, err := w.Align(1); err != nil || n != 0 {
			t.Fatalf("i=%d; expected no pending bits, got %d padded (err=%v)", i, n, err)
		}
	}
}

func TestWriterAlign(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	steps := []struct {
		name string
		do   func() (uint64, error)
		want uint64
	}{
		{"Align(1) on empty stream", func() (uint64, error) { return w.Align(1) }, 0},
		{"Align(3) on empty stream", func() (uint64, error) { return w.Align(3) }, 0},
		{"WriteBool", func() (uint64, error) { return 0, w.WriteBool(true) }, 0},
		{"Align(1)", func() (uint64, error) { return w.Align(1) }, 7},
		{"Align(1) again", func() (uint64, error) { return w.Align(1) }, 0},
		{"WriteUint8(3)", func() (uint64, error) { return 0, w.WriteUint8(3, 5) }, 0},
		{"Align(4)", func() (uint64, error) { return w.Align(4) }, 21},
		{"Align(4) again", func() (uint64, error) { return w.Align(4) }, 0},
		{"Align(2) at multiple of 4", func() (uint64, error) { return w.Align(2) }, 0},
		{"Count", func() (uint64, error) { return w.Count(), nil }, 4},
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

	if want := []byte{0x80, 0xA0, 0, 0}; !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("expected %x, got %x", want, buf.Bytes())
	}
}

// plainWriter hides the io.ByteWriter implementation of bytes.Buffer.
type plainWriter struct {
	buf    bytes.Buffer
	closed int
}

func (p *plainWriter) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

func (p *plainWriter) Close() error {
	p.closed++
	return nil
}

func TestWriterClose(t *testing.T) {
	p := &plainWriter{}
	w := bitpack.NewWriter(p)
	if err := w.WriteUint16(12, 0xABC); err != nil {
		t.Fatal(err)
	}

	// buffered until Close
	if p.buf.Len() != 0 {
		t.Fatalf("expected buffered output, got %x", p.buf.Bytes())
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if want := []byte{0xAB, 0xC0}; !bytes.Equal(p.buf.Bytes(), want) {
		t.Fatalf("expected %x, got %x", want, p.buf.Bytes())
	}

	if err := w.Close(); err != nil {
		t.Fatalf("second Close; unexpected error: %v", err)
	}

	if p.closed != 1 {
		t.Fatalf("expected the sink to be closed once, got %d", p.closed)
	}

	if err := w.WriteBool(true); err != bitpack.ErrClosed {
		t.Fatalf("expected %v, got %v", bitpack.ErrClosed, err)
	}
}

func TestWriterFlushesByteWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	bw := bufio.NewWriter(buf)
	w := bitpack.NewWriter(bw)
	if err := w.WriteUint8(5, 0x1F); err != nil {
		t.Fatal(err)
	}

	if _, err := w.Align(1); err != nil {
		t.Fatal(err)
	}

	if want := []byte{0xF8}; !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("expected %x, got %x", want, buf.Bytes())
	}
}

type failingWriter struct {
	n   int
	err error
}

func (f *failingWriter) WriteByte(byte) error {
	if f.n == 0 {
		return f.err
	}
	f.n--
	return nil
}

func TestWriteTransportError(t *testing.T) {
	want := errors.New("broken sink")
	w := bitpack.NewByteWriter(&failingWriter{n: 1, err: want})
	if err := w.WriteUint32(20, 0xFFFFF); err != want {
		t.Fatalf("expected the transport error to pass through unchanged, got %v", err)
	}

	// the count includes the octet the sink rejected
	if w.Count() != 2 {
		t.Fatalf("expected 2 octets handed to the sink, got %d", w.Count())
	}
}

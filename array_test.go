package bitpack_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/pchchv/bitpack"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestBytesFraming(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	if err := w.WriteBytes(4, 8, []byte{0x41, 0x42}); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	// 0010 01000001 01000010 0000
	if want := []byte{0x24, 0x14, 0x20}; !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("expected %x, got %x", want, buf.Bytes())
	}

	r := bitpack.NewReader(buf)
	got, err := r.ReadBytes(4, 8)
	if err != nil {
		t.Fatal(err)
	}

	if want := []byte{0x41, 0x42}; !bytes.Equal(got, want) {
		t.Fatalf("expected %x, got %x", want, got)
	}
}

func TestBytesNarrowElements(t *testing.T) {
	tests := []struct {
		lengthBits, bitsPerByte uint
		data                    []byte
		want                    []byte
	}{
		{1, 1, []byte{1}, []byte{1}},
		{3, 3, []byte{7, 0, 5, 2}, []byte{7, 0, 5, 2}},
		// only the low bits of each element are kept
		{5, 4, []byte{0xAB, 0xCD}, []byte{0x0B, 0x0D}},
		{16, 7, []byte("hello"), []byte("hello")},
		{8, 8, []byte{}, []byte{}},
	}

	for i, test := range tests {
		buf := &bytes.Buffer{}
		w := bitpack.NewWriter(buf)
		if err := w.WriteBytes(test.lengthBits, test.bitsPerByte, test.data); err != nil {
			t.Fatalf("i=%d; %v", i, err)
		}

		if err := w.Close(); err != nil {
			t.Fatalf("i=%d; %v", i, err)
		}

		wantBits := test.lengthBits + uint(len(test.data))*test.bitsPerByte
		if got := uint(buf.Len()); got != (wantBits+7)/8 {
			t.Errorf("i=%d; expected %d octets, got %d", i, (wantBits+7)/8, got)
		}

		r := bitpack.NewReader(buf)
		got, err := r.ReadBytes(test.lengthBits, test.bitsPerByte)
		if err != nil {
			t.Fatalf("i=%d; %v", i, err)
		}

		if !bytes.Equal(got, test.want) {
			t.Errorf("i=%d; expected %x, got %x", i, test.want, got)
		}
	}
}

func TestBytesLengthLimit(t *testing.T) {
	w := bitpack.NewWriter(&bytes.Buffer{})
	if err := w.WriteBytes(2, 8, []byte{1, 2, 3}); err != nil {
		t.Fatalf("3 elements fit a 2-bit count; %v", err)
	}

	err := w.WriteBytes(2, 8, []byte{1, 2, 3, 4})
	if !errors.Is(err, bitpack.ErrInvalidArgument) {
		t.Fatalf("expected %v, got %v", bitpack.ErrInvalidArgument, err)
	}
}

func TestReadBytesEOF(t *testing.T) {
	// count of 3, but a single element follows
	r := bitpack.NewReader(bytes.NewReader([]byte{0x03, 0xFF}))
	if _, err := r.ReadBytes(8, 8); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected %v, got %v", io.ErrUnexpectedEOF, err)
	}
}

func TestFixedBytes(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	if err := w.WriteFixedBytes(6, []byte{0x3F, 0x00, 0x2A, 0x15}); err != nil {
		t.Fatal(err)
	}

	// 24 bits, no count prefix
	if buf.Len() != 3 {
		t.Fatalf("expected 3 octets, got %d", buf.Len())
	}

	got := make([]byte, 4)
	r := bitpack.NewReader(buf)
	if err := r.ReadFixedBytes(6, got); err != nil {
		t.Fatal(err)
	}

	if want := []byte{0x3F, 0x00, 0x2A, 0x15}; !bytes.Equal(got, want) {
		t.Fatalf("expected %x, got %x", want, got)
	}
}

func TestText(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	errs := []error{
		w.WriteBool(true),
		w.WriteString("grüße"),
		w.WriteASCII("plain"),
		w.WriteText(8, 8, charmap.ISO8859_1.NewEncoder(), "café"),
		w.WriteText(10, 8, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder(), "λ"),
		w.WriteByteSlice([]byte{0xDE, 0xAD}),
		w.Close(),
	}

	for i, err := range errs {
		if err != nil {
			t.Fatalf("i=%d; unexpected error: %v", i, err)
		}
	}

	r := bitpack.NewReader(buf)
	if _, err := r.ReadBool(); err != nil {
		t.Fatal(err)
	}

	if s, err := r.ReadString(); err != nil || s != "grüße" {
		t.Fatalf("expected %q, got %q (err=%v)", "grüße", s, err)
	}

	if s, err := r.ReadASCII(); err != nil || s != "plain" {
		t.Fatalf("expected %q, got %q (err=%v)", "plain", s, err)
	}

	if s, err := r.ReadText(8, 8, charmap.ISO8859_1.NewDecoder()); err != nil || s != "café" {
		t.Fatalf("expected %q, got %q (err=%v)", "café", s, err)
	}

	if s, err := r.ReadText(10, 8, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()); err != nil || s != "λ" {
		t.Fatalf("expected %q, got %q (err=%v)", "λ", s, err)
	}

	if p, err := r.ReadByteSlice(); err != nil || !bytes.Equal(p, []byte{0xDE, 0xAD}) {
		t.Fatalf("expected dead, got %x (err=%v)", p, err)
	}
}

func TestTextLatin1Length(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitpack.NewWriter(buf)
	// 4 octets once encoded, 5 as UTF-8
	if err := w.WriteText(8, 8, charmap.ISO8859_1.NewEncoder(), "café"); err != nil {
		t.Fatal(err)
	}

	if buf.Len() != 5 || buf.Bytes()[0] != 4 {
		t.Fatalf("expected a count of 4 followed by 4 octets, got %x", buf.Bytes())
	}
}

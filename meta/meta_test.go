package meta_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/meta"
)

func TestHeader(t *testing.T) {
	buf := new(bytes.Buffer)
	w := bitpack.NewWriter(buf)
	want := meta.Header{IsLast: true, Type: meta.TypePadding, Length: 8192}
	if err := want.Write(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0x81, 0x00, 0x20, 0x00}) {
		t.Errorf("header mismatch; expected 81002000, got %x", got)
	}

	got, err := meta.ReadHeader(bitpack.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("header mismatch; expected %+v, got %+v", want, got)
	}
}

func TestHeaderInvalid(t *testing.T) {
	w := bitpack.NewWriter(io.Discard)
	if err := (meta.Header{Type: 127}).Write(w); !errors.Is(err, meta.ErrReservedType) {
		t.Errorf("expected ErrReservedType, got %v", err)
	}
	if err := (meta.Header{Length: meta.MaxLength + 1}).Write(w); !errors.Is(err, bitpack.ErrValueOutOfRange) {
		t.Errorf("expected ErrValueOutOfRange, got %v", err)
	}

	_, err := meta.ReadHeader(bitpack.NewReader(bytes.NewReader([]byte{0x7F, 0, 0, 0})))
	if !errors.Is(err, meta.ErrReservedType) {
		t.Errorf("expected ErrReservedType, got %v", err)
	}
	_, err = meta.ReadHeader(bitpack.NewReader(bytes.NewReader([]byte{0x01, 0})))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestBlocks(t *testing.T) {
	blocks := []*meta.Block{
		{Header: meta.Header{Type: meta.TypeApplication}, Body: &meta.Application{ID: 0x61746368, Data: []byte("xyz")}},
		{Header: meta.Header{Type: meta.TypeSeekTable}, Body: &meta.SeekTable{Points: []meta.SeekPoint{
			{SampleNum: 0, Offset: 0, NSamples: 4096},
			{SampleNum: 4096, Offset: 1234, NSamples: 4096},
			{SampleNum: meta.PlaceholderPoint},
		}}},
		{Header: meta.Header{Type: meta.TypeVorbisComment}, Body: []byte{1, 2, 3}},
		{Header: meta.Header{Type: meta.TypePadding, Length: 5, IsLast: true}},
	}

	buf := new(bytes.Buffer)
	w := bitpack.NewWriter(buf)
	for _, block := range blocks {
		if err := meta.WriteBlock(w, block); err != nil {
			t.Fatalf("unable to write %v block; %v", block.Type, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if want := int64(4*4 + 7 + 3*18 + 3 + 5); int64(buf.Len()) != want {
		t.Errorf("encoded length mismatch; expected %d, got %d", want, buf.Len())
	}

	r := bitpack.NewReader(buf)
	for i, want := range blocks {
		got, err := meta.ReadBlock(r)
		if err != nil {
			t.Fatalf("i=%d; unable to read block; %v", i, err)
		}
		if got.Type != want.Type {
			t.Errorf("i=%d; type mismatch; expected %v, got %v", i, want.Type, got.Type)
		}
		switch body := want.Body.(type) {
		case *meta.Application:
			app := got.Body.(*meta.Application)
			if app.ID != body.ID || !bytes.Equal(app.Data, body.Data) {
				t.Errorf("i=%d; application mismatch; expected %+v, got %+v", i, body, app)
			}
		case *meta.SeekTable:
			table := got.Body.(*meta.SeekTable)
			if len(table.Points) != len(body.Points) {
				t.Fatalf("i=%d; seek point count mismatch; expected %d, got %d", i, len(body.Points), len(table.Points))
			}
			for j := range body.Points {
				if table.Points[j] != body.Points[j] {
					t.Errorf("i=%d; seek point %d mismatch; expected %+v, got %+v", i, j, body.Points[j], table.Points[j])
				}
			}
		case []byte:
			if !bytes.Equal(got.Body.([]byte), body) {
				t.Errorf("i=%d; raw body mismatch; expected %x, got %x", i, body, got.Body)
			}
		case nil:
			if got.Body != nil || got.Length != want.Length || !got.IsLast {
				t.Errorf("i=%d; padding mismatch; got %+v", i, got)
			}
		}
	}
}

func TestInvalidPadding(t *testing.T) {
	_, err := meta.ReadBlock(bitpack.NewReader(bytes.NewReader([]byte{0x01, 0x00, 0x00, 0x02, 0x00, 0x01})))
	if !errors.Is(err, meta.ErrInvalidPadding) {
		t.Errorf("expected ErrInvalidPadding, got %v", err)
	}
}

func TestSeekTableOrder(t *testing.T) {
	block := &meta.Block{Body: &meta.SeekTable{Points: []meta.SeekPoint{
		{SampleNum: 10},
		{SampleNum: 5},
	}}}
	if err := meta.WriteBlock(bitpack.NewWriter(io.Discard), block); err == nil {
		t.Error("expected error for unordered seek points")
	}
}

func TestTruncatedBody(t *testing.T) {
	// application block claiming 8 octets, only 2 present
	_, err := meta.ReadBlock(bitpack.NewReader(bytes.NewReader([]byte{0x02, 0x00, 0x00, 0x08, 0x61, 0x74})))
	if err != io.ErrUnexpectedEOF {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

// Package codec provides typed encoders and decoders of bit fields.
//
// A Codec pairs the write and read of one field shape, so that a record
// layout can be declared once and used in both directions:
//
//	length, err := codec.Uint32(24)
//	...
//	err = length.Encode(w, 8192)
//	n, err := length.Decode(r)
//
// Field sizes are validated when a Codec is constructed.
package codec

import (
	"io"

	"github.com/pchchv/bitpack"
)

// An Encoder writes values of type T to a bit writer.
type Encoder[T any] interface {
	Encode(w *bitpack.Writer, x T) error
}

// A Decoder reads values of type T from a bit reader.
type Decoder[T any] interface {
	Decode(r *bitpack.Reader) (T, error)
}

// A Codec both encodes and decodes values of type T.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// Func returns a Codec built from a pair of functions.
func Func[T any](enc func(*bitpack.Writer, T) error, dec func(*bitpack.Reader) (T, error)) Codec[T] {
	return funcCodec[T]{enc: enc, dec: dec}
}

type funcCodec[T any] struct {
	enc func(*bitpack.Writer, T) error
	dec func(*bitpack.Reader) (T, error)
}

func (c funcCodec[T]) Encode(w *bitpack.Writer, x T) error {
	return c.enc(w, x)
}

func (c funcCodec[T]) Decode(r *bitpack.Reader) (T, error) {
	return c.dec(r)
}

// unexpected returns io.ErrUnexpectedEOF if err is io.EOF, for reads which
// fail after part of a value has been consumed.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

package codec

import (
	"fmt"

	"github.com/pchchv/bitpack"
)

// Slice returns a Codec of sequences of values encoded by c, prefixed with
// an element count of lengthBits bits, 1 through 16.
func Slice[T any](lengthBits uint, c Codec[T]) (Codec[[]T], error) {
	const op = "codec.Slice"
	if err := bitpack.CheckLengthBits(op, lengthBits); err != nil {
		return nil, err
	}
	return slice[T]{lengthBits: lengthBits, c: c}, nil
}

type slice[T any] struct {
	lengthBits uint
	c          Codec[T]
}

func (s slice[T]) Encode(w *bitpack.Writer, xs []T) error {
	if !bitpack.FitsUnsigned(s.lengthBits, uint64(len(xs))) {
		return fmt.Errorf("codec.Slice: %w; length (%d) does not fit in %d bits", bitpack.ErrInvalidArgument, len(xs), s.lengthBits)
	}
	if err := w.WriteUint16(s.lengthBits, uint16(len(xs))); err != nil {
		return err
	}
	for _, x := range xs {
		if err := s.c.Encode(w, x); err != nil {
			return err
		}
	}
	return nil
}

func (s slice[T]) Decode(r *bitpack.Reader) ([]T, error) {
	n, err := r.ReadUint16(s.lengthBits)
	if err != nil {
		return nil, err
	}

	xs := make([]T, n)
	for i := range xs {
		if xs[i], err = s.c.Decode(r); err != nil {
			return nil, unexpected(err)
		}
	}
	return xs, nil
}

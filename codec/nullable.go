package codec

import "github.com/pchchv/bitpack"

// Nullable returns a Codec of optional values. A presence bit, set for a
// non-nil value, precedes the field encoded by c; a nil value is the
// presence bit alone.
func Nullable[T any](c Codec[T]) Codec[*T] {
	return nullable[T]{c: c}
}

type nullable[T any] struct {
	c Codec[T]
}

func (n nullable[T]) Encode(w *bitpack.Writer, x *T) error {
	if err := w.WriteBool(x != nil); err != nil {
		return err
	}
	if x == nil {
		return nil
	}
	return n.c.Encode(w, *x)
}

func (n nullable[T]) Decode(r *bitpack.Reader) (*T, error) {
	ok, err := r.ReadBool()
	if err != nil || !ok {
		return nil, err
	}

	x, err := n.c.Decode(r)
	if err != nil {
		return nil, unexpected(err)
	}
	return &x, nil
}

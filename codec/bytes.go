package codec

import (
	"golang.org/x/text/encoding"

	"github.com/pchchv/bitpack"
)

// Bytes returns a Codec of byte sequences prefixed with an element count
// of lengthBits bits, each element taking bitsPerByte bits.
func Bytes(lengthBits, bitsPerByte uint) (Codec[[]byte], error) {
	if err := bitpack.CheckFraming("codec.Bytes", lengthBits, bitsPerByte); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, p []byte) error { return w.WriteBytes(lengthBits, bitsPerByte, p) },
		func(r *bitpack.Reader) ([]byte, error) { return r.ReadBytes(lengthBits, bitsPerByte) },
	), nil
}

// Text returns a Codec of strings converted with e and framed as by Bytes.
// A nil e stores the bytes of the string unchanged.
func Text(lengthBits, bitsPerByte uint, e encoding.Encoding) (Codec[string], error) {
	if err := bitpack.CheckFraming("codec.Text", lengthBits, bitsPerByte); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, s string) error {
			var enc *encoding.Encoder
			if e != nil {
				enc = e.NewEncoder()
			}
			return w.WriteText(lengthBits, bitsPerByte, enc, s)
		},
		func(r *bitpack.Reader) (string, error) {
			var dec *encoding.Decoder
			if e != nil {
				dec = e.NewDecoder()
			}
			return r.ReadText(lengthBits, bitsPerByte, dec)
		},
	), nil
}

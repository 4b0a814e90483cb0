package bitpack

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Bounds of the length-prefixed sequence operations.
const (
	MaxLengthBits  uint = 16 // widest element count prefix
	MaxBitsPerByte uint = 8  // widest sequence element
)

// CheckLengthBits returns an error wrapping ErrInvalidArgument, prefixed
// with op, if lengthBits is outside [1, MaxLengthBits].
func CheckLengthBits(op string, lengthBits uint) error {
	if lengthBits < 1 || lengthBits > MaxLengthBits {
		return invalidArgument(op, "length bits", uint64(lengthBits), 1, uint64(MaxLengthBits))
	}
	return nil
}

// CheckBitsPerByte returns an error wrapping ErrInvalidArgument, prefixed
// with op, if bitsPerByte is outside [1, MaxBitsPerByte].
func CheckBitsPerByte(op string, bitsPerByte uint) error {
	if bitsPerByte < 1 || bitsPerByte > MaxBitsPerByte {
		return invalidArgument(op, "bits per byte", uint64(bitsPerByte), 1, uint64(MaxBitsPerByte))
	}
	return nil
}

// CheckFraming validates the count and element widths of a sequence as
// ReadBytes and WriteBytes do.
func CheckFraming(op string, lengthBits, bitsPerByte uint) error {
	if err := CheckLengthBits(op, lengthBits); err != nil {
		return err
	}
	return CheckBitsPerByte(op, bitsPerByte)
}

// ReadBytes reads an element count of lengthBits bits, 1 through 16,
// followed by that many elements of bitsPerByte bits each, 1 through 8.
// Each element is zero-extended into a byte.
func (br *Reader) ReadBytes(lengthBits, bitsPerByte uint) ([]byte, error) {
	if err := CheckFraming("bitpack.Reader.ReadBytes", lengthBits, bitsPerByte); err != nil {
		return nil, err
	}

	n, err := br.readUint16(lengthBits)
	if err != nil {
		return nil, err
	}

	p := make([]byte, n)
	if err := br.readElements(bitsPerByte, p); err != nil {
		return nil, unexpected(err)
	}
	return p, nil
}

// ReadFixedBytes fills p with elements of bitsPerByte bits each,
// 1 through 8, with no count prefix.
func (br *Reader) ReadFixedBytes(bitsPerByte uint, p []byte) error {
	if err := CheckBitsPerByte("bitpack.Reader.ReadFixedBytes", bitsPerByte); err != nil {
		return err
	}
	return br.readElements(bitsPerByte, p)
}

// ReadByteSlice reads a sequence of up to 65535 octets with a 16-bit count.
func (br *Reader) ReadByteSlice() ([]byte, error) {
	return br.ReadBytes(16, 8)
}

// ReadText reads a sequence as ReadBytes does and converts it to UTF-8
// with dec. A nil dec passes the bytes through unchanged.
func (br *Reader) ReadText(lengthBits, bitsPerByte uint, dec *encoding.Decoder) (string, error) {
	p, err := br.ReadBytes(lengthBits, bitsPerByte)
	if err != nil {
		return "", err
	}

	if dec == nil {
		return string(p), nil
	}

	if p, err = dec.Bytes(p); err != nil {
		return "", fmt.Errorf("bitpack.Reader.ReadText: unable to decode text; %w", err)
	}
	return string(p), nil
}

// ReadString reads UTF-8 text of up to 65535 octets with a 16-bit count.
// Invalid sequences are replaced by U+FFFD.
func (br *Reader) ReadString() (string, error) {
	return br.ReadText(16, 8, unicode.UTF8.NewDecoder())
}

// ReadASCII reads US-ASCII text of up to 65535 characters with a 16-bit
// count, 7 bits per character.
func (br *Reader) ReadASCII() (string, error) {
	return br.ReadText(16, 7, nil)
}

// readElements fills p, one element of n bits per byte.
// An error after the first element is unexpected.
func (br *Reader) readElements(n uint, p []byte) (err error) {
	for i := range p {
		if p[i], err = br.readUint8(n); err != nil {
			if i > 0 {
				err = unexpected(err)
			}
			return err
		}
	}
	return nil
}

// WriteBytes writes len(p) as an unsigned integer of lengthBits bits,
// 1 through 16, followed by the lowest bitsPerByte bits, 1 through 8, of
// each element of p.
func (bw *Writer) WriteBytes(lengthBits, bitsPerByte uint, p []byte) error {
	const op = "bitpack.Writer.WriteBytes"
	if bw.closed {
		return ErrClosed
	}

	if err := CheckFraming(op, lengthBits, bitsPerByte); err != nil {
		return err
	}

	if !FitsUnsigned(lengthBits, uint64(len(p))) {
		return fmt.Errorf("%s: %w; length (%d) does not fit in %d bits", op, ErrInvalidArgument, len(p), lengthBits)
	}

	if err := bw.writeUint16(lengthBits, uint16(len(p))); err != nil {
		return err
	}
	return bw.writeElements(bitsPerByte, p)
}

// WriteFixedBytes writes the lowest bitsPerByte bits, 1 through 8, of each
// element of p, with no count prefix.
func (bw *Writer) WriteFixedBytes(bitsPerByte uint, p []byte) error {
	if bw.closed {
		return ErrClosed
	}

	if err := CheckBitsPerByte("bitpack.Writer.WriteFixedBytes", bitsPerByte); err != nil {
		return err
	}
	return bw.writeElements(bitsPerByte, p)
}

// WriteByteSlice writes a sequence of up to 65535 octets with a 16-bit count.
func (bw *Writer) WriteByteSlice(p []byte) error {
	return bw.WriteBytes(16, 8, p)
}

// WriteText converts s from UTF-8 with enc and writes the result as
// WriteBytes does. A nil enc passes the bytes of s through unchanged.
func (bw *Writer) WriteText(lengthBits, bitsPerByte uint, enc *encoding.Encoder, s string) error {
	const op = "bitpack.Writer.WriteText"
	if bw.closed {
		return ErrClosed
	}

	if err := CheckFraming(op, lengthBits, bitsPerByte); err != nil {
		return err
	}

	p := []byte(s)
	if enc != nil {
		var err error
		if p, err = enc.Bytes(p); err != nil {
			return fmt.Errorf("%s: unable to encode text; %w", op, err)
		}
	}

	return bw.WriteBytes(lengthBits, bitsPerByte, p)
}

// WriteString writes s as UTF-8 text of up to 65535 octets with a 16-bit
// count. Invalid sequences are replaced by U+FFFD.
func (bw *Writer) WriteString(s string) error {
	return bw.WriteText(16, 8, unicode.UTF8.NewEncoder(), s)
}

// WriteASCII writes s as US-ASCII text of up to 65535 characters with a
// 16-bit count, 7 bits per character.
func (bw *Writer) WriteASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return fmt.Errorf("bitpack.Writer.WriteASCII: %w; non-ASCII byte %#02x at offset %d", ErrValueOutOfRange, s[i], i)
		}
	}
	return bw.WriteText(16, 7, nil, s)
}

func (bw *Writer) writeElements(n uint, p []byte) error {
	for _, b := range p {
		if err := bw.writeUint8(n, b); err != nil {
			return err
		}
	}
	return nil
}

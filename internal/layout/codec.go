package layout

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/codec"
)

// converter returns the converter of the field's textual values.
func (f Field) converter() (converter, error) {
	switch f.Kind {
	case Bool:
		return textCodec[bool]{c: codec.Bool(), parse: strconv.ParseBool, format: strconv.FormatBool}, nil
	case Coded:
		return textCodec[uint64]{c: codec.CodedNumber(), parse: parseUint, format: formatUint}, nil
	case Unsigned:
		c, err := codec.Uint64(f.Size)
		if err != nil {
			return nil, err
		}
		return textCodec[uint64]{c: c, parse: parseUint, format: formatUint}, nil
	case Signed:
		c, err := codec.Int64(f.Size)
		if err != nil {
			return nil, err
		}
		return textCodec[int64]{c: c, parse: parseInt, format: formatInt}, nil
	case ZigZag:
		c, err := codec.ZigZag(f.Size)
		if err != nil {
			return nil, err
		}
		return textCodec[int64]{c: c, parse: parseInt, format: formatInt}, nil
	case Float:
		switch f.Size {
		case 32:
			return textCodec[float32]{c: codec.Float32(), parse: parseFloat32, format: formatFloat32}, nil
		case 64:
			return textCodec[float64]{c: codec.Float64(), parse: parseFloat64, format: formatFloat64}, nil
		}
		return nil, fmt.Errorf("%w; float size (%d) must be 32 or 64", bitpack.ErrInvalidArgument, f.Size)
	case Bytes:
		c, err := codec.Bytes(f.Size, f.Elem)
		if err != nil {
			return nil, err
		}
		return textCodec[[]byte]{c: c, parse: bytesParser(f.Elem), format: hex.EncodeToString}, nil
	case Text:
		c, err := codec.Text(f.Size, f.Elem, unicode.UTF8)
		if err != nil {
			return nil, err
		}
		return textCodec[string]{c: c, parse: textParser(f.Elem), format: identity}, nil
	case Align:
		if f.Size < 1 {
			return nil, fmt.Errorf("%w; alignment (%d) must be positive", bitpack.ErrInvalidArgument, f.Size)
		}
		return alignCodec(f.Size), nil
	}
	return nil, fmt.Errorf("%w; unknown field kind %d", ErrSyntax, f.Kind)
}

// Encode writes values to w as laid out by l, one value per field which
// has one. The final partial octet stays cached in w.
func (l *Layout) Encode(w *bitpack.Writer, values []string) error {
	if len(values) != l.values {
		return fmt.Errorf("layout.Layout.Encode: %w; got %d values, layout %q takes %d", bitpack.ErrInvalidArgument, len(values), l, l.values)
	}

	i := 0
	for j, f := range l.fields {
		var s string
		if f.HasValue() {
			s = values[i]
			i++
		}
		if err := l.convs[j].encode(w, s); err != nil {
			return fmt.Errorf("layout.Layout.Encode: field %s; %w", f, err)
		}
	}
	return nil
}

// Decode reads one record laid out by l from r and returns the textual
// value of every field which has one.
func (l *Layout) Decode(r *bitpack.Reader) ([]string, error) {
	values := make([]string, 0, l.values)
	for i, f := range l.fields {
		s, err := l.convs[i].decode(r)
		if err != nil {
			if i > 0 {
				err = unexpected(err)
			}
			return nil, fmt.Errorf("layout.Layout.Decode: field %s; %w", f, err)
		}
		if f.HasValue() {
			values = append(values, s)
		}
	}
	return values, nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}

func formatUint(x uint64) string {
	return strconv.FormatUint(x, 10)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 0, 64)
}

func formatInt(x int64) string {
	return strconv.FormatInt(x, 10)
}

func parseFloat32(s string) (float32, error) {
	x, err := strconv.ParseFloat(s, 32)
	return float32(x), err
}

func formatFloat32(x float32) string {
	return strconv.FormatFloat(float64(x), 'g', -1, 32)
}

func parseFloat64(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func formatFloat64(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// bytesParser returns a parser of hexadecimal byte sequences whose
// elements all fit in elem bits.
func bytesParser(elem uint) func(string) ([]byte, error) {
	return func(s string) ([]byte, error) {
		p, err := hex.DecodeString(s)
		if err != nil {
			return nil, err
		}
		for i, b := range p {
			if !bitpack.FitsUnsigned(elem, uint64(b)) {
				return nil, fmt.Errorf("%w; element %#02x at index %d does not fit in %d bits", bitpack.ErrValueOutOfRange, b, i, elem)
			}
		}
		return p, nil
	}
}

// textParser returns a parser admitting UTF-8 text whose octets all fit
// in elem bits.
func textParser(elem uint) func(string) (string, error) {
	return func(s string) (string, error) {
		if !utf8.ValidString(s) {
			return "", fmt.Errorf("%w; invalid UTF-8 text %q", bitpack.ErrValueOutOfRange, s)
		}
		for i := 0; i < len(s); i++ {
			if !bitpack.FitsUnsigned(elem, uint64(s[i])) {
				return "", fmt.Errorf("%w; octet %#02x at offset %d does not fit in %d bits", bitpack.ErrValueOutOfRange, s[i], i, elem)
			}
		}
		return s, nil
	}
}

// unexpected returns io.ErrUnexpectedEOF if err is io.EOF.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func identity(s string) string {
	return s
}

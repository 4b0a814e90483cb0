// Package layout parses compact bit field layouts and converts textual
// field values to and from their bit-packed form.
//
// A layout is a comma-separated list of fields:
//
//	b       one-bit flag, "true" or "false"
//	uN      unsigned integer of N bits, 1 through 64
//	sN      two's complement integer of N bits, 2 through 64
//	zN      ZigZag encoded signed integer of N bits, 1 through 64
//	c       FLAC "UTF-8" coded number
//	f32     IEEE 754 single precision value
//	f64     IEEE 754 double precision value
//	xL:B    byte sequence, hexadecimal, with an L-bit count and B-bit elements
//	tL:B    UTF-8 text with an L-bit count and B-bit elements; every octet
//	        of the text must fit in B bits
//	aN      zero padding up to a multiple of N octets; takes no value
//
// At least one field of a layout must take a value.
// For instance, the header of a FLAC metadata block is "b,u7,u24".
package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/codec"
)

// ErrSyntax is returned for a malformed layout.
var ErrSyntax = errors.New("invalid syntax")

// Kind identifies the shape of a field.
type Kind uint8

// Field kinds.
const (
	Bool Kind = iota
	Unsigned
	Signed
	ZigZag
	Coded
	Float
	Bytes
	Text
	Align
)

// names maps each kind to its layout letter.
var names = map[Kind]string{
	Bool:     "b",
	Unsigned: "u",
	Signed:   "s",
	ZigZag:   "z",
	Coded:    "c",
	Float:    "f",
	Bytes:    "x",
	Text:     "t",
	Align:    "a",
}

// A Usage describes one form of layout field.
type Usage struct {
	Form    string
	Meaning string
}

// Usages lists the forms of layout fields in the order of the package
// documentation.
var Usages = []Usage{
	{"b", `one-bit flag, "true" or "false"`},
	{"uN", "unsigned integer of N bits, 1 through 64"},
	{"sN", "two's complement integer of N bits, 2 through 64"},
	{"zN", "ZigZag encoded signed integer of N bits, 1 through 64"},
	{"c", `FLAC "UTF-8" coded number`},
	{"f32", "IEEE 754 single precision value"},
	{"f64", "IEEE 754 double precision value"},
	{"xL:B", "byte sequence, hexadecimal, with an L-bit count and B-bit elements"},
	{"tL:B", "UTF-8 text with an L-bit count and B-bit elements; every octet of the text must fit in B bits"},
	{"aN", "zero padding up to a multiple of N octets; takes no value"},
}

// A Field is one element of a layout.
type Field struct {
	Kind Kind
	// Size is the bit size of integer and float fields, the count prefix
	// size of sequences, and the octet multiple of Align.
	Size uint
	// Elem is the element size of sequences.
	Elem uint
}

func (f Field) String() string {
	switch f.Kind {
	case Bool, Coded:
		return names[f.Kind]
	case Bytes, Text:
		return fmt.Sprintf("%s%d:%d", names[f.Kind], f.Size, f.Elem)
	}
	return names[f.Kind] + strconv.FormatUint(uint64(f.Size), 10)
}

// HasValue reports whether the field consumes a value when encoding.
func (f Field) HasValue() bool {
	return f.Kind != Align
}

// A Layout is a sequence of fields, most significant bit first, with the
// converter of every field built once.
type Layout struct {
	fields []Field
	convs  []converter
	values int
}

// New returns the layout of fields. Every field size is checked as the
// corresponding bit operation would, and at least one field must take a
// value.
func New(fields ...Field) (*Layout, error) {
	return build("layout.New", append([]Field(nil), fields...))
}

func build(op string, fields []Field) (*Layout, error) {
	l := &Layout{fields: fields, convs: make([]converter, len(fields))}
	for i, f := range fields {
		c, err := f.converter()
		if err != nil {
			return nil, fmt.Errorf("%s: field %d (%s); %w", op, i, f, err)
		}
		l.convs[i] = c
		if f.HasValue() {
			l.values++
		}
	}

	// Records of padding alone never reach the end of the input.
	if l.values == 0 {
		return nil, fmt.Errorf("%s: %w; layout %q takes no value", op, ErrSyntax, l)
	}
	return l, nil
}

// Fields returns a copy of the fields of l.
func (l *Layout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

func (l *Layout) String() string {
	s := make([]string, len(l.fields))
	for i, f := range l.fields {
		s[i] = f.String()
	}
	return strings.Join(s, ",")
}

// Values returns the number of values the layout consumes.
func (l *Layout) Values() int {
	return l.values
}

// Parse parses a layout such as "b,u3,u4,s12,x4:8,t16:7,a2".
func Parse(s string) (*Layout, error) {
	var fields []Field
	for i, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		f, err := parseField(tok)
		if err != nil {
			return nil, fmt.Errorf("layout.Parse: field %d (%q); %w", i, tok, err)
		}
		fields = append(fields, f)
	}
	return build("layout.Parse", fields)
}

func parseField(tok string) (Field, error) {
	if tok == "" {
		return Field{}, ErrSyntax
	}

	var f Field
	switch tok[0] {
	case 'b':
		f.Kind = Bool
	case 'c':
		f.Kind = Coded
	case 'u':
		f.Kind = Unsigned
	case 's':
		f.Kind = Signed
	case 'z':
		f.Kind = ZigZag
	case 'f':
		f.Kind = Float
	case 'x':
		f.Kind = Bytes
	case 't':
		f.Kind = Text
	case 'a':
		f.Kind = Align
	default:
		return Field{}, fmt.Errorf("%w; unknown field kind %q", ErrSyntax, tok[0])
	}

	args := tok[1:]
	switch f.Kind {
	case Bool, Coded:
		if args != "" {
			return Field{}, fmt.Errorf("%w; unexpected size %q", ErrSyntax, args)
		}
		return f, nil
	case Bytes, Text:
		size, elem, ok := strings.Cut(args, ":")
		if !ok {
			return Field{}, fmt.Errorf("%w; missing element size", ErrSyntax)
		}
		var err error
		if f.Size, err = parseSize(size); err != nil {
			return Field{}, err
		}
		if f.Elem, err = parseSize(elem); err != nil {
			return Field{}, err
		}
	default:
		var err error
		if f.Size, err = parseSize(args); err != nil {
			return Field{}, err
		}
	}
	return f, nil
}

func parseSize(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w; invalid size %q", ErrSyntax, s)
	}
	return uint(n), nil
}

// converter converts the textual value of one field.
type converter interface {
	encode(w *bitpack.Writer, s string) error
	decode(r *bitpack.Reader) (string, error)
}

// textCodec binds a typed codec to the text form of its values.
type textCodec[T any] struct {
	c      codec.Codec[T]
	parse  func(string) (T, error)
	format func(T) string
}

func (t textCodec[T]) encode(w *bitpack.Writer, s string) error {
	x, err := t.parse(s)
	if err != nil {
		return err
	}
	return t.c.Encode(w, x)
}

func (t textCodec[T]) decode(r *bitpack.Reader) (string, error) {
	x, err := t.c.Decode(r)
	if err != nil {
		return "", err
	}
	return t.format(x), nil
}

type alignCodec uint

func (a alignCodec) encode(w *bitpack.Writer, _ string) error {
	_, err := w.Align(uint(a))
	return err
}

func (a alignCodec) decode(r *bitpack.Reader) (string, error) {
	_, err := r.Align(uint(a))
	return "", err
}

// Package meta implements access to FLAC metadata blocks.
//
// A metadata block starts with a 32-bit header: a last-block flag, a 7-bit
// block type and the 24-bit length of the body in octets. Block bodies are
// laid out most significant bit first.
package meta

import (
	"errors"
	"fmt"
	"io"

	"github.com/pchchv/bitpack"
)

// Metadata block body types.
const (
	TypeStreamInfo    Type = 0
	TypePadding       Type = 1
	TypeApplication   Type = 2
	TypeSeekTable     Type = 3
	TypeVorbisComment Type = 4
	TypeCueSheet      Type = 5
	TypePicture       Type = 6
)

// MaxLength is the largest body length a header can describe.
const MaxLength = 1<<24 - 1

// ErrReservedType is returned for the reserved block type 127, which is
// invalid to avoid confusion with a frame sync code.
var ErrReservedType = errors.New("reserved block type")

// Type represents the type of a metadata block body.
type Type uint8

func (t Type) String() string {
	switch t {
	case TypeStreamInfo:
		return "stream info"
	case TypePadding:
		return "padding"
	case TypeApplication:
		return "application"
	case TypeSeekTable:
		return "seek table"
	case TypeVorbisComment:
		return "vorbis comment"
	case TypeCueSheet:
		return "cue sheet"
	case TypePicture:
		return "picture"
	default:
		return "<unknown block type>"
	}
}

// A Header contains information about the type and length of a metadata
// block.
type Header struct {
	// IsLast specifies if the block is the last metadata block.
	IsLast bool
	// Type of the block body.
	Type Type
	// Length of the body in octets.
	Length int64
}

// ReadHeader reads and parses a metadata block header.
func ReadHeader(r *bitpack.Reader) (hdr Header, err error) {
	// 1 bit: IsLast
	if hdr.IsLast, err = r.ReadBool(); err != nil {
		return Header{}, err
	}

	// 7 bits: Type
	x, err := r.ReadUint8(7)
	if err != nil {
		return Header{}, unexpected(err)
	}
	if x == 127 {
		return Header{}, fmt.Errorf("meta.ReadHeader: %w", ErrReservedType)
	}
	hdr.Type = Type(x)

	// 24 bits: Length
	length, err := r.ReadUint32(24)
	if err != nil {
		return Header{}, unexpected(err)
	}
	hdr.Length = int64(length)
	return hdr, nil
}

// Write writes the metadata block header to w.
func (hdr Header) Write(w *bitpack.Writer) error {
	if hdr.Type == 127 {
		return fmt.Errorf("meta.Header.Write: %w", ErrReservedType)
	}
	if hdr.Length < 0 || hdr.Length > MaxLength {
		return fmt.Errorf("meta.Header.Write: %w; length (%d) outside [0, %d]", bitpack.ErrValueOutOfRange, hdr.Length, MaxLength)
	}

	// 1 bit: IsLast
	if err := w.WriteBool(hdr.IsLast); err != nil {
		return err
	}

	// 7 bits: Type
	if err := w.WriteUint8(7, uint8(hdr.Type)); err != nil {
		return err
	}

	// 24 bits: Length
	return w.WriteUint32(24, uint32(hdr.Length))
}

// A Block contains the header and body of a metadata block.
type Block struct {
	Header
	// Body is one of *Application, *SeekTable or, for padding, nil.
	// The bodies of other block types are kept as raw []byte.
	Body any
}

// ReadBlock reads and parses a metadata block, header and body.
func ReadBlock(r *bitpack.Reader) (*Block, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	block := &Block{Header: hdr}
	switch hdr.Type {
	case TypePadding:
		err = block.verifyPadding(r)
	case TypeApplication:
		err = block.parseApplication(r)
	case TypeSeekTable:
		err = block.parseSeekTable(r)
	default:
		buf := make([]byte, hdr.Length)
		err = r.ReadFixedBytes(8, buf)
		block.Body = buf
	}
	if err != nil {
		return nil, unexpected(err)
	}
	return block, nil
}

// WriteBlock writes the header and body of a metadata block to w.
// The header length is derived from the body.
func WriteBlock(w *bitpack.Writer, block *Block) error {
	hdr := block.Header
	switch body := block.Body.(type) {
	case nil:
		if hdr.Type != TypePadding {
			return fmt.Errorf("meta.WriteBlock: missing body of %v block", hdr.Type)
		}
		return WritePadding(w, hdr.Length, hdr.IsLast)
	case *Application:
		hdr.Type, hdr.Length = TypeApplication, 4+int64(len(body.Data))
		if err := hdr.Write(w); err != nil {
			return err
		}
		return body.write(w)
	case *SeekTable:
		if err := body.verify(); err != nil {
			return err
		}
		hdr.Type, hdr.Length = TypeSeekTable, seekPointSize*int64(len(body.Points))
		if err := hdr.Write(w); err != nil {
			return err
		}
		return body.write(w)
	case []byte:
		hdr.Length = int64(len(body))
		if err := hdr.Write(w); err != nil {
			return err
		}
		return w.WriteFixedBytes(8, body)
	default:
		return fmt.Errorf("meta.WriteBlock: unsupported body type %T", block.Body)
	}
}

// unexpected returns io.ErrUnexpectedEOF if error is io.EOF,
// and returns error otherwise.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

package meta

import (
	"errors"
	"fmt"

	"github.com/pchchv/bitpack"
)

var ErrInvalidPadding = errors.New("invalid padding")

// verifyPadding verifies the body of a Padding metadata block.
// It should only contain zero-padding.
func (block *Block) verifyPadding(r *bitpack.Reader) error {
	for i := int64(0); i < block.Length; i++ {
		x, err := r.ReadUint8(8)
		if err != nil {
			return err
		}
		if x != 0 {
			return fmt.Errorf("meta.Block.verifyPadding: %w; octet %#02x at offset %d", ErrInvalidPadding, x, i)
		}
	}
	return nil
}

// WritePadding writes a Padding metadata block of length zero octets.
func WritePadding(w *bitpack.Writer, length int64, last bool) error {
	hdr := Header{
		IsLast: last,
		Type:   TypePadding,
		Length: length,
	}
	if err := hdr.Write(w); err != nil {
		return err
	}

	for i := int64(0); i < length; i++ {
		if err := w.WriteUint8(8, 0); err != nil {
			return err
		}
	}
	return nil
}

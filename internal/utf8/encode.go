// Package utf8 implements encoding and decoding of "UTF-8" coded numbers,
// the variable length integers FLAC stores frame and sample numbers in.
// Values of up to 36 bits take between one and seven octets.
package utf8

import (
	"fmt"

	"github.com/pchchv/bitpack"
)

const (
	tx = 0x80 // 1000 0000
	t2 = 0xC0 // 1100 0000
	t3 = 0xE0 // 1110 0000
	t4 = 0xF0 // 1111 0000
	t5 = 0xF8 // 1111 1000
	t6 = 0xFC // 1111 1100
	t7 = 0xFE // 1111 1110
	t8 = 0xFF // 1111 1111

	maskx = 0x3F // 0011 1111
	mask2 = 0x1F // 0001 1111
	mask3 = 0x0F // 0000 1111
	mask4 = 0x07 // 0000 0111
	mask5 = 0x03 // 0000 0011
	mask6 = 0x01 // 0000 0001

	rune1Max = 1<<7 - 1
	rune2Max = 1<<11 - 1
	rune3Max = 1<<16 - 1
	rune4Max = 1<<21 - 1
	rune5Max = 1<<26 - 1
	rune6Max = 1<<31 - 1
	rune7Max = 1<<36 - 1
)

// MaxValue is the largest value which has a coded representation.
const MaxValue = rune7Max

// Len returns the number of octets needed to encode x, or 0 if x is larger
// than MaxValue.
func Len(x uint64) int {
	switch {
	case x <= rune1Max:
		return 1
	case x <= rune2Max:
		return 2
	case x <= rune3Max:
		return 3
	case x <= rune4Max:
		return 4
	case x <= rune5Max:
		return 5
	case x <= rune6Max:
		return 6
	case x <= rune7Max:
		return 7
	}
	return 0
}

// Encode encodes x as a "UTF-8" coded number into w, eight bits per octet.
func Encode(w *bitpack.Writer, x uint64) error {
	l := Len(x) - 1
	if l < 0 {
		return fmt.Errorf("utf8.Encode: %w; %d exceeds the 36-bit limit", bitpack.ErrValueOutOfRange, x)
	}

	// 1-byte, 7-bit sequence
	if l == 0 {
		return w.WriteUint8(8, uint8(x))
	}

	// the leading octet holds l+1 one bits, a zero bit and the top bits of x
	lead := []uint8{t2, t3, t4, t5, t6, t7}[l-1]
	c0 := lead | uint8(x>>(6*uint(l)))&^lead
	if err := w.WriteUint8(8, c0); err != nil {
		return err
	}

	for i := l - 1; i >= 0; i-- {
		c := tx | uint8(x>>(6*uint(i)))&maskx
		if err := w.WriteUint8(8, c); err != nil {
			return err
		}
	}
	return nil
}

package utf8

import (
	"errors"
	"fmt"
	"io"

	"github.com/pchchv/bitpack"
)

var (
	// ErrContinuation is returned when a coded number starts with a
	// continuation octet, or a continuation octet is missing.
	ErrContinuation = errors.New("invalid continuation octet")
	// ErrOverlong is returned when a coded number uses more octets than
	// its value needs.
	ErrOverlong = errors.New("overlong encoding")
)

// Decode decodes a "UTF-8" coded number from r and returns it.
// Algorithm description:
//   - read one octet B0
//   - if B0 = 0xxxxxxx then the read value is B0 -> end
//   - if B0 = 10xxxxxx, the encoding is invalid
//   - if B0 = 11xxxxxx, set L to the number of leading binary 1s minus 1
//   - assign the bits following the zero bit of B0 to R
//   - L times: shift R left 6 bits, read an octet B which must match
//     10xxxxxx and or its lower 6 bits into R
//   - the read value is R
func Decode(r *bitpack.Reader) (x uint64, err error) {
	c0, err := r.ReadUint8(8)
	if err != nil {
		return 0, err
	}

	// 1-byte, 7-bit sequence
	if c0 < tx {
		return uint64(c0), nil
	}

	// unexpected continuation byte
	if c0 < t2 {
		return 0, fmt.Errorf("utf8.Decode: %w; leading octet %#02x", ErrContinuation, c0)
	}

	// get number of continuation bytes and store bits from c0
	var l int
	switch {
	case c0 < t3:
		// total: 11 bits (5 + 6)
		l, x = 1, uint64(c0&mask2)
	case c0 < t4:
		// total: 16 bits (4 + 6 + 6)
		l, x = 2, uint64(c0&mask3)
	case c0 < t5:
		// total: 21 bits (3 + 6 + 6 + 6)
		l, x = 3, uint64(c0&mask4)
	case c0 < t6:
		// total: 26 bits (2 + 6 + 6 + 6 + 6)
		l, x = 4, uint64(c0&mask5)
	case c0 < t7:
		// total: 31 bits (1 + 6 + 6 + 6 + 6 + 6)
		l, x = 5, uint64(c0&mask6)
	case c0 < t8:
		// total: 36 bits (0 + 6 + 6 + 6 + 6 + 6 + 6)
		l, x = 6, 0
	default:
		return 0, fmt.Errorf("utf8.Decode: %w; leading octet %#02x", ErrContinuation, c0)
	}

	// store bits from continuation bytes
	for i := 0; i < l; i++ {
		c, err := r.ReadUint8(8)
		if err != nil {
			if err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if c < tx || t2 <= c {
			return 0, fmt.Errorf("utf8.Decode: %w; octet %#02x at %d", ErrContinuation, c, i+1)
		}
		x = x<<6 | uint64(c&maskx)
	}

	if Len(x) != l+1 {
		return 0, fmt.Errorf("utf8.Decode: %w; x (%d) stored in %d bytes, could be stored in %d bytes", ErrOverlong, x, l+1, Len(x))
	}
	return x, nil
}

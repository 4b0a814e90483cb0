package bitpack

// Native widths of the integer operations.
const (
	Width8  uint = 8
	Width16 uint = 16
	Width32 uint = 32
	Width64 uint = 64
)

// ValidSize reports whether a field of size bits is admissible for an
// integer of the given native width: 1 through width for unsigned fields,
// and 2 through width for signed ones, which need a sign bit and at least
// one magnitude bit.
func ValidSize(signed bool, size, width uint) bool {
	if signed {
		return size >= 2 && size <= width
	}
	return size >= 1 && size <= width
}

// FitsUnsigned reports whether 0 <= x < 2^size.
func FitsUnsigned(size uint, x uint64) bool {
	return x>>size == 0
}

// FitsSigned reports whether -2^(size-1) <= x < 2^(size-1).
// size must be at least 1.
func FitsSigned(size uint, x int64) bool {
	// Shifting out the magnitude bits leaves only copies of the sign bit.
	hi := x >> (size - 1)
	return hi == 0 || hi == -1
}

// CheckSize returns an error wrapping ErrInvalidArgument, prefixed with op,
// if size is not admissible for an integer of the given native width.
func CheckSize(op string, signed bool, size, width uint) error {
	if ValidSize(signed, size, width) {
		return nil
	}
	return invalidSize(op, signed, size, width)
}

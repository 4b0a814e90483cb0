package bitpack

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidArgument is returned when a size, length or byte count is
	// outside the bounds admitted by an operation. No octet is transferred.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValueOutOfRange is returned when a value cannot be represented in
	// the requested number of bits. No bit of the field is written.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrClosed is returned by operations on a closed Writer.
	ErrClosed = errors.New("writer closed")
)

// unexpected returns io.ErrUnexpectedEOF if error is io.EOF,
// and returns error otherwise.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func invalidSize(op string, signed bool, size, width uint) error {
	lo := uint(1)
	if signed {
		lo = 2
	}
	return fmt.Errorf("%s: %w; size (%d) outside [%d, %d]", op, ErrInvalidArgument, size, lo, width)
}

func invalidArgument(op, name string, x, lo, hi uint64) error {
	return fmt.Errorf("%s: %w; %s (%d) outside [%d, %d]", op, ErrInvalidArgument, name, x, lo, hi)
}

package codec

import (
	"fmt"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/internal/bits"
	"github.com/pchchv/bitpack/internal/utf8"
)

// Bool returns a Codec of single-bit flags.
func Bool() Codec[bool] {
	return Func((*bitpack.Writer).WriteBool, (*bitpack.Reader).ReadBool)
}

// Float32 returns a Codec of IEEE 754 single precision values in 32 bits.
func Float32() Codec[float32] {
	return Func((*bitpack.Writer).WriteFloat32, (*bitpack.Reader).ReadFloat32)
}

// Float64 returns a Codec of IEEE 754 double precision values in 64 bits.
func Float64() Codec[float64] {
	return Func((*bitpack.Writer).WriteFloat64, (*bitpack.Reader).ReadFloat64)
}

// ZigZag returns a Codec of signed values stored as unsigned fields of
// size bits, 1 through 64, in ZigZag encoding. Values of small magnitude
// fit in few bits regardless of their sign.
func ZigZag(size uint) (Codec[int64], error) {
	const op = "codec.ZigZag"
	if err := bitpack.CheckSize(op, false, size, bitpack.Width64); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x int64) error {
			u := bits.EncodeZigZag(x)
			if !bitpack.FitsUnsigned(size, u) {
				return fmt.Errorf("%s: %w; %d does not fit in %d zigzag bits", op, bitpack.ErrValueOutOfRange, x, size)
			}
			return w.WriteUint64(size, u)
		},
		func(r *bitpack.Reader) (int64, error) {
			u, err := r.ReadUint64(size)
			if err != nil {
				return 0, err
			}
			return bits.DecodeZigZag(u), nil
		},
	), nil
}

// CodedNumber returns a Codec of FLAC "UTF-8" coded numbers: values of up
// to 36 bits in one to seven octets.
func CodedNumber() Codec[uint64] {
	return Func(utf8.Encode, utf8.Decode)
}

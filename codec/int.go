package codec

import "github.com/pchchv/bitpack"

// Uint8 returns a Codec of unsigned fields of size bits, 1 through 8.
func Uint8(size uint) (Codec[uint8], error) {
	if err := bitpack.CheckSize("codec.Uint8", false, size, bitpack.Width8); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x uint8) error { return w.WriteUint8(size, x) },
		func(r *bitpack.Reader) (uint8, error) { return r.ReadUint8(size) },
	), nil
}

// Uint16 returns a Codec of unsigned fields of size bits, 1 through 16.
func Uint16(size uint) (Codec[uint16], error) {
	if err := bitpack.CheckSize("codec.Uint16", false, size, bitpack.Width16); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x uint16) error { return w.WriteUint16(size, x) },
		func(r *bitpack.Reader) (uint16, error) { return r.ReadUint16(size) },
	), nil
}

// Uint32 returns a Codec of unsigned fields of size bits, 1 through 32.
func Uint32(size uint) (Codec[uint32], error) {
	if err := bitpack.CheckSize("codec.Uint32", false, size, bitpack.Width32); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x uint32) error { return w.WriteUint32(size, x) },
		func(r *bitpack.Reader) (uint32, error) { return r.ReadUint32(size) },
	), nil
}

// Uint64 returns a Codec of unsigned fields of size bits, 1 through 64.
func Uint64(size uint) (Codec[uint64], error) {
	if err := bitpack.CheckSize("codec.Uint64", false, size, bitpack.Width64); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x uint64) error { return w.WriteUint64(size, x) },
		func(r *bitpack.Reader) (uint64, error) { return r.ReadUint64(size) },
	), nil
}

// Int8 returns a Codec of two's complement fields of size bits, 2 through 8.
func Int8(size uint) (Codec[int8], error) {
	if err := bitpack.CheckSize("codec.Int8", true, size, bitpack.Width8); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x int8) error { return w.WriteInt8(size, x) },
		func(r *bitpack.Reader) (int8, error) { return r.ReadInt8(size) },
	), nil
}

// Int16 returns a Codec of two's complement fields of size bits, 2 through 16.
func Int16(size uint) (Codec[int16], error) {
	if err := bitpack.CheckSize("codec.Int16", true, size, bitpack.Width16); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x int16) error { return w.WriteInt16(size, x) },
		func(r *bitpack.Reader) (int16, error) { return r.ReadInt16(size) },
	), nil
}

// Int32 returns a Codec of two's complement fields of size bits, 2 through 32.
func Int32(size uint) (Codec[int32], error) {
	if err := bitpack.CheckSize("codec.Int32", true, size, bitpack.Width32); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x int32) error { return w.WriteInt32(size, x) },
		func(r *bitpack.Reader) (int32, error) { return r.ReadInt32(size) },
	), nil
}

// Int64 returns a Codec of two's complement fields of size bits, 2 through 64.
func Int64(size uint) (Codec[int64], error) {
	if err := bitpack.CheckSize("codec.Int64", true, size, bitpack.Width64); err != nil {
		return nil, err
	}
	return Func(
		func(w *bitpack.Writer, x int64) error { return w.WriteInt64(size, x) },
		func(r *bitpack.Reader) (int64, error) { return r.ReadInt64(size) },
	), nil
}

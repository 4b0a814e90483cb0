package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/pchchv/bitpack"
	"github.com/pchchv/bitpack/internal/hashutil/crc8"
	"github.com/pchchv/bitpack/internal/utf8"
	"github.com/pchchv/bitpack/octet"
)

// syncCode marks the beginning of a frame header.
const syncCode = 0x3FFE

var (
	// ErrInvalidSync is returned when a frame header does not start with
	// the sync code.
	ErrInvalidSync = errors.New("invalid sync code")
	// ErrChecksum is returned when the CRC-8 of a frame header does not
	// match its contents.
	ErrChecksum = errors.New("CRC-8 checksum mismatch")
)

// fixed sample rates by their 4-bit code; 0 is unknown, and codes 12
// through 14 take the rate from the end of the header.
var sampleRates = [...]uint32{
	1:  88200,
	2:  176400,
	3:  192000,
	4:  8000,
	5:  16000,
	6:  22050,
	7:  24000,
	8:  32000,
	9:  44100,
	10: 48000,
	11: 96000,
}

// sample sizes by their 3-bit code; 0 is unknown and 3 is reserved.
var sampleSizes = [...]uint8{
	1: 8,
	2: 12,
	4: 16,
	5: 20,
	6: 24,
	7: 32,
}

// ReadHeader reads and parses an audio frame header from in and verifies
// its CRC-8 checksum. No octet past the header is read.
func ReadHeader(in io.ByteReader) (hdr Header, err error) {
	h := crc8.NewATM()
	r := bitpack.NewByteReader(octet.NewHashReader(in, h))

	// 14 bits: sync-code (11111111111110)
	sync, err := r.ReadUint16(14)
	if err != nil {
		return Header{}, err
	}
	if sync != syncCode {
		return Header{}, fmt.Errorf("frame.ReadHeader: %w; expected %014b, got %014b", ErrInvalidSync, syncCode, sync)
	}

	var fields [6]uint8
	// 1 bit: reserved
	// 1 bit: HasFixedBlockSize
	// 4 bits: BlockSize
	// 4 bits: SampleRate
	// 4 bits: Channels
	// 3 bits: BitsPerSample
	// 1 bit: reserved
	for i, n := range []uint{1, 1, 4, 4, 4, 3} {
		if fields[i], err = r.ReadUint8(n); err != nil {
			return Header{}, unexpected(err)
		}
	}
	reserved, err := r.ReadBool()
	if err != nil {
		return Header{}, unexpected(err)
	}
	if fields[0] != 0 || reserved {
		return Header{}, errors.New("frame.ReadHeader: non-zero reserved value")
	}

	hdr.HasFixedBlockSize = fields[1] == 0
	blockSizeCode, rateCode, bpsCode := fields[2], fields[3], fields[5]

	hdr.Channels = Channels(fields[4])
	if hdr.Channels.Count() == 0 {
		return Header{}, fmt.Errorf("frame.ReadHeader: reserved channels bit pattern (%04b)", fields[4])
	}

	switch bpsCode {
	case 0:
		// 000: get from StreamInfo
	case 3:
		return Header{}, fmt.Errorf("frame.ReadHeader: reserved sample size bit pattern (%03b)", bpsCode)
	default:
		hdr.BitsPerSample = sampleSizes[bpsCode]
	}

	// "UTF-8" coded frame number or first sample number
	if hdr.Num, err = utf8.Decode(r); err != nil {
		return Header{}, unexpected(err)
	}
	if hdr.HasFixedBlockSize && hdr.Num > maxFrameNum {
		return Header{}, fmt.Errorf("frame.ReadHeader: frame number (%d) exceeds %d", hdr.Num, maxFrameNum)
	}

	if err := hdr.readBlockSize(r, blockSizeCode); err != nil {
		return Header{}, unexpected(err)
	}
	if err := hdr.readSampleRate(r, rateCode); err != nil {
		return Header{}, unexpected(err)
	}

	// 8 bits: CRC-8 of the preceding octets
	want := h.Sum8()
	got, err := in.ReadByte()
	if err != nil {
		return Header{}, unexpected(err)
	}
	if got != want {
		return Header{}, fmt.Errorf("frame.ReadHeader: %w; expected %#02x, got %#02x", ErrChecksum, want, got)
	}
	return hdr, nil
}

// maxFrameNum is the largest frame number of a fixed block size stream.
const maxFrameNum = 1<<31 - 1

func (hdr *Header) readBlockSize(r *bitpack.Reader, code uint8) error {
	// block size in inter-channel samples:
	//    0000 : reserved
	//    0001 : 192 samples
	//    0010-0101 : 576 * (2^(n-2)) samples, i.e. 576/1152/2304/4608
	//    0110 : get 8 bit (blocksize-1) from end of header
	//    0111 : get 16 bit (blocksize-1) from end of header
	//    1000-1111 : 256 * (2^(n-8)) samples, i.e. 256/512/1024/2048/4096/8192/16384/32768
	switch {
	case code == 0x0:
		return errors.New("frame.Header.readBlockSize: reserved block size bit pattern (0000)")
	case code == 0x1:
		hdr.BlockSize = 192
	case code <= 0x5:
		hdr.BlockSize = 576 << (code - 2)
	case code == 0x6:
		x, err := r.ReadUint16(8)
		if err != nil {
			return err
		}
		hdr.BlockSize = x + 1
	case code == 0x7:
		x, err := r.ReadUint16(16)
		if err != nil {
			return err
		}
		if x == 0xFFFF {
			return errors.New("frame.Header.readBlockSize: block size of 65536 samples not supported")
		}
		hdr.BlockSize = x + 1
	default:
		hdr.BlockSize = 256 << (code - 8)
	}
	return nil
}

func (hdr *Header) readSampleRate(r *bitpack.Reader, code uint8) error {
	switch code {
	case 0x0:
		// 0000: get from StreamInfo
	case 0xC:
		// 1100: 8 bit sample rate (in kHz) from end of header
		x, err := r.ReadUint32(8)
		if err != nil {
			return err
		}
		hdr.SampleRate = x * 1000
	case 0xD:
		// 1101: 16 bit sample rate (in Hz) from end of header
		x, err := r.ReadUint32(16)
		if err != nil {
			return err
		}
		hdr.SampleRate = x
	case 0xE:
		// 1110: 16 bit sample rate (in tens of Hz) from end of header
		x, err := r.ReadUint32(16)
		if err != nil {
			return err
		}
		hdr.SampleRate = x * 10
	case 0xF:
		return errors.New("frame.Header.readSampleRate: invalid sample rate bit pattern (1111)")
	default:
		hdr.SampleRate = sampleRates[code]
	}
	return nil
}

// Write writes the frame header to out, followed by its CRC-8 checksum.
func (hdr Header) Write(out io.ByteWriter) error {
	blockSizeCode, blockSizeBits, err := hdr.blockSizeCode()
	if err != nil {
		return err
	}
	rateCode, rateBits, rate, err := hdr.sampleRateCode()
	if err != nil {
		return err
	}
	bpsCode, err := hdr.sampleSizeCode()
	if err != nil {
		return err
	}
	if hdr.Channels.Count() == 0 {
		return fmt.Errorf("frame.Header.Write: %w; reserved channel assignment %d", bitpack.ErrValueOutOfRange, hdr.Channels)
	}
	if hdr.HasFixedBlockSize && hdr.Num > maxFrameNum {
		return fmt.Errorf("frame.Header.Write: %w; frame number (%d) exceeds %d", bitpack.ErrValueOutOfRange, hdr.Num, maxFrameNum)
	}

	h := crc8.NewATM()
	w := bitpack.NewByteWriter(octet.NewHashWriter(out, h))

	// 14 bits: sync-code, 1 bit: reserved
	if err := w.WriteUint16(15, syncCode<<1); err != nil {
		return err
	}
	// 1 bit: blocking strategy
	if err := w.WriteBool(!hdr.HasFixedBlockSize); err != nil {
		return err
	}
	for _, f := range []struct {
		n uint
		x uint8
	}{
		{4, blockSizeCode},
		{4, rateCode},
		{4, uint8(hdr.Channels)},
		{3, bpsCode},
		{1, 0}, // reserved
	} {
		if err := w.WriteUint8(f.n, f.x); err != nil {
			return err
		}
	}

	if err := utf8.Encode(w, hdr.Num); err != nil {
		return err
	}
	if blockSizeBits > 0 {
		if err := w.WriteUint16(blockSizeBits, hdr.BlockSize-1); err != nil {
			return err
		}
	}
	if rateBits > 0 {
		if err := w.WriteUint32(rateBits, rate); err != nil {
			return err
		}
	}
	if _, err := w.Align(1); err != nil {
		return err
	}

	// 8 bits: CRC-8
	return out.WriteByte(h.Sum8())
}

// blockSizeCode returns the 4-bit block size code and the size of the
// (blocksize-1) suffix, if any.
func (hdr Header) blockSizeCode() (code uint8, suffixBits uint, err error) {
	switch bs := hdr.BlockSize; {
	case bs == 0:
		return 0, 0, fmt.Errorf("frame.Header.Write: %w; block size of 0 samples", bitpack.ErrValueOutOfRange)
	case bs == 192:
		return 0x1, 0, nil
	}
	for i := uint8(0); i < 4; i++ {
		if hdr.BlockSize == 576<<i {
			return 0x2 + i, 0, nil
		}
	}
	for i := uint8(0); i < 8; i++ {
		if hdr.BlockSize == 256<<i {
			return 0x8 + i, 0, nil
		}
	}
	if hdr.BlockSize <= 256 {
		return 0x6, 8, nil
	}
	return 0x7, 16, nil
}

// sampleRateCode returns the 4-bit sample rate code and the size and value
// of the sample rate suffix, if any.
func (hdr Header) sampleRateCode() (code uint8, suffixBits uint, suffix uint32, err error) {
	rate := hdr.SampleRate
	if rate == 0 {
		return 0x0, 0, 0, nil
	}
	for i, x := range sampleRates {
		if x != 0 && x == rate {
			return uint8(i), 0, 0, nil
		}
	}
	switch {
	case rate%1000 == 0 && rate/1000 <= 0xFF:
		return 0xC, 8, rate / 1000, nil
	case rate <= 0xFFFF:
		return 0xD, 16, rate, nil
	case rate%10 == 0 && rate/10 <= 0xFFFF:
		return 0xE, 16, rate / 10, nil
	}
	return 0, 0, 0, fmt.Errorf("frame.Header.Write: %w; sample rate %d Hz cannot be represented", bitpack.ErrValueOutOfRange, rate)
}

// sampleSizeCode returns the 3-bit sample size code.
func (hdr Header) sampleSizeCode() (uint8, error) {
	if hdr.BitsPerSample == 0 {
		return 0x0, nil
	}
	for i, x := range sampleSizes {
		if x != 0 && x == hdr.BitsPerSample {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("frame.Header.Write: %w; sample size of %d bits not supported", bitpack.ErrValueOutOfRange, hdr.BitsPerSample)
}

// unexpected returns io.ErrUnexpectedEOF if error is io.EOF,
// and returns error otherwise.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

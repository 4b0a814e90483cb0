// Package crc16 implements the 16-bit cyclic redundancy check, or CRC-16,
// checksum, most significant bit first and with a zero initial value.
package crc16

import "github.com/pchchv/bitpack/internal/hashutil"

// Size of a CRC-16 checksum in bytes.
const Size = 2

// IBM is the CRC-16-IBM polynomial x^16 + x^15 + x^2 + 1, as used by FLAC
// frame footers.
const IBM = 0x8005

// IBMTable is the table for the IBM polynomial.
var IBMTable = MakeTable(IBM)

// Table is a 256-word table representing the
// polynomial for efficient processing.
type Table [256]uint16

// MakeTable returns the Table constructed from the specified polynomial.
func MakeTable(poly uint16) *Table {
	t := new(Table)
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return t
}

// digest represents the partial evaluation of a checksum.
type digest struct {
	crc   uint16
	table *Table
}

// New creates a new hashutil.Hash16 computing the CRC-16 checksum
// using the polynomial represented by the Table.
func New(table *Table) hashutil.Hash16 {
	return &digest{table: table}
}

// NewIBM creates a new hashutil.Hash16 computing the CRC-16 checksum
// using the IBM polynomial.
func NewIBM() hashutil.Hash16 {
	return New(IBMTable)
}

func (d *digest) Size() int {
	return Size
}

func (d *digest) BlockSize() int {
	return 1
}

func (d *digest) Reset() {
	d.crc = 0
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.crc = Update(d.crc, d.table, p)
	return len(p), nil
}

// Sum appends the current hash to b and returns the resulting slice.
func (d *digest) Sum(b []byte) []byte {
	return append(b, uint8(d.crc>>8), uint8(d.crc))
}

func (d *digest) Sum16() uint16 {
	return d.crc
}

// Update returns the result of adding the bytes in p to the crc.
func Update(crc uint16, table *Table, p []byte) uint16 {
	for _, v := range p {
		crc = crc<<8 ^ table[crc>>8^uint16(v)]
	}
	return crc
}

// Checksum returns the CRC-16 checksum of data
// using the polynomial represented by the Table.
func Checksum(data []byte, table *Table) uint16 {
	return Update(0, table, data)
}

// ChecksumIBM returns the CRC-16 checksum of data
// using the IBM polynomial.
func ChecksumIBM(data []byte) uint16 {
	return Update(0, IBMTable, data)
}

package octet

// ReaderFunc adapts an ordinary function to io.ByteReader.
// The function returns io.EOF at the end of data.
type ReaderFunc func() (byte, error)

// ReadByte calls f().
func (f ReaderFunc) ReadByte() (byte, error) {
	return f()
}

// WriterFunc adapts an ordinary function to io.ByteWriter.
type WriterFunc func(byte) error

// WriteByte calls f(x).
func (f WriterFunc) WriteByte(x byte) error {
	return f(x)
}

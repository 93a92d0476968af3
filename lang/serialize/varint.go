package serialize

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/mna/fuzzil/lang/ilvar"
)

// byteWriter is the minimal capability the wire encoders need: bytes.Buffer
// and bufio.Writer both satisfy it.
type byteWriter interface {
	io.ByteWriter
	io.Writer
}

func writeUvarint(w byteWriter, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func readUvarint(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}

func writeVarint(w byteWriter, v int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func readVarint(r io.ByteReader) (int64, error) {
	return binary.ReadVarint(r)
}

func writeString(w byteWriter, s string) error {
	if err := writeUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r *bufio.Reader) (string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeVariable(w byteWriter, v ilvar.Variable) error {
	return writeUvarint(w, uint64(v))
}

func readVariable(r io.ByteReader) (ilvar.Variable, error) {
	n, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	return ilvar.Variable(n), nil
}

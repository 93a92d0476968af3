package serialize

import (
	"io"
	"math"
)

// sliceBuffer is a minimal in-memory byteWriter, used to materialize an
// encoded Operation's bytes so they can double as the shared cache's lookup
// key (see encodeOperation).
type sliceBuffer struct{ b []byte }

func (s *sliceBuffer) Write(p []byte) (int, error) {
	s.b = append(s.b, p...)
	return len(p), nil
}

func (s *sliceBuffer) WriteByte(c byte) error {
	s.b = append(s.b, c)
	return nil
}

func writeBool(w byteWriter, b bool) error {
	if b {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

func readBool(r io.ByteReader) (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

func float64Bits(f float64) uint64 { return math.Float64bits(f) }
func bitsFloat64(u uint64) float64 { return math.Float64frombits(u) }

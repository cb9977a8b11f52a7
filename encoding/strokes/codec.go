package strokes

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	Header    = "rmscribe strokes, version=1     "
	HeaderLen = 32
)

// MarshalBinary encodes the sequence as a header, a point count and
// one little-endian float32 triple per offset.
func (seq Sequence) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	b.Grow(HeaderLen + 4 + 12*len(seq))
	b.WriteString(Header)

	binary.Write(&b, binary.LittleEndian, uint32(len(seq)))
	for _, o := range seq {
		binary.Write(&b, binary.LittleEndian, [3]float32{float32(o.DX), float32(o.DY), float32(o.Eos)})
	}
	return b.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (seq *Sequence) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	buf := make([]byte, HeaderLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("wrong header size")
	}
	if string(buf) != Header {
		return fmt.Errorf("unknown header %q", bytes.TrimRight(buf, " "))
	}

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("wrong number read")
	}
	if int64(n)*12 != int64(r.Len()) {
		return fmt.Errorf("header declares %d offsets, payload holds %d bytes", n, r.Len())
	}

	out := make(Sequence, n)
	for i := range out {
		var v [3]float32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return fmt.Errorf("failed to read offset %d", i)
		}
		for _, c := range v {
			if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
				return fmt.Errorf("offset %d is not finite", i)
			}
		}
		out[i] = Offset{DX: float64(v[0]), DY: float64(v[1]), Eos: float64(v[2])}
	}
	*seq = out
	return nil
}

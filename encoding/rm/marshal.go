package rm

import (
	"bytes"
	"encoding/binary"
)

// MarshalBinary implements encoding.MarshalBinary for
// transforming a Rm page into bytes. Pages are always written as v5.
func (rm *Rm) MarshalBinary() (data []byte, err error) {
	w := new(writer)

	w.writeHeader()

	w.writeNumber(len(rm.Layers))
	for _, layer := range rm.Layers {
		w.writeNumber(len(layer.Lines))

		for _, line := range layer.Lines {
			w.writeLine(line)
		}
	}

	return w.Bytes(), nil
}

type writer struct {
	b bytes.Buffer
}

func (w *writer) Bytes() []byte {
	return w.b.Bytes()
}

func (w *writer) writeHeader() {
	w.b.WriteString(HeaderV5)
}

func (w *writer) writeNumber(n int) {
	binary.Write(&w.b, binary.LittleEndian, uint32(n))
}

func (w *writer) writeLine(line Line) {
	binary.Write(&w.b, binary.LittleEndian, line.BrushType)
	binary.Write(&w.b, binary.LittleEndian, line.BrushColor)
	binary.Write(&w.b, binary.LittleEndian, line.Padding)
	binary.Write(&w.b, binary.LittleEndian, line.BrushSize)
	binary.Write(&w.b, binary.LittleEndian, line.Unknown)

	w.writeNumber(len(line.Points))
	for _, point := range line.Points {
		binary.Write(&w.b, binary.LittleEndian, point)
	}
}

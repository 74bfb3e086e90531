package bmd

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Encode writes the model as an unencrypted version 10 BMD file with no bones
// or actions.
func Encode(m *Model) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	str := func(s string, n int) {
		b := make([]byte, n)
		copy(b, s)
		buf.Write(b)
	}
	i16 := func(v int) {
		var b [2]byte
		le.PutUint16(b[:], uint16(int16(v)))
		buf.Write(b[:])
	}
	f32 := func(v float32) {
		var b [4]byte
		le.PutUint32(b[:], math.Float32bits(v))
		buf.Write(b[:])
	}

	buf.WriteString("BMD")
	buf.WriteByte(10)
	str(m.Name, 32)
	i16(len(m.Meshes))
	i16(0) // bones
	i16(0) // actions

	for _, ms := range m.Meshes {
		i16(len(ms.Verts))
		i16(len(ms.Normals))
		i16(len(ms.UVs))
		i16(len(ms.Tris))
		i16(0) // texture index
		for _, v := range ms.Verts {
			i16(0)
			i16(0)
			f32(v[0])
			f32(v[1])
			f32(v[2])
		}
		for _, n := range ms.Normals {
			i16(0)
			i16(0)
			f32(n[0])
			f32(n[1])
			f32(n[2])
			i16(0)
			i16(0)
		}
		for _, uv := range ms.UVs {
			f32(uv[0])
			f32(uv[1])
		}
		for _, t := range ms.Tris {
			rec := make([]byte, triangleSize)
			rec[0] = byte(t.Polygon)
			for k := 0; k < 4; k++ {
				le.PutUint16(rec[2+k*2:], uint16(t.VI[k]))
				le.PutUint16(rec[10+k*2:], uint16(t.NI[k]))
				le.PutUint16(rec[18+k*2:], uint16(t.TI[k]))
			}
			buf.Write(rec)
		}
		str(clip(ms.TexPath, 31), 32)
	}
	return buf.Bytes()
}

// clip keeps room for the NUL terminator in fixed-size name fields.
func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

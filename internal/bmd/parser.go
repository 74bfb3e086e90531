package bmd

import (
	"encoding/binary"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	maxMeshes    = 100
	triangleSize = 64
)

// Parse reads a BMD file. Supports versions 10 (plain), 12 (XOR) and 15 (LEA-256 ECB).
func Parse(path string, keys Keys) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bmd: read %s", path)
	}
	m, err := Decode(raw, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "bmd: %s", path)
	}
	return m, nil
}

// Decode parses an in-memory BMD file.
func Decode(raw []byte, keys Keys) (*Model, error) {
	if len(raw) < 4 || string(raw[:3]) != "BMD" {
		return nil, errors.New("invalid header")
	}

	version := raw[3]
	var data []byte

	switch version {
	case 12, 15:
		if len(raw) < 8 {
			return nil, errors.Errorf("truncated v%d header", version)
		}
		size := binary.LittleEndian.Uint32(raw[4:8])
		if 8+int(size) > len(raw) {
			return nil, errors.Errorf("truncated v%d data", version)
		}
		if version == 15 {
			data = decryptLEA(raw[8:8+size], keys.LEA)
		} else {
			data = decryptXOR(raw[8:8+size], keys.XOR)
		}
	default:
		data = raw[4:]
	}

	r := &reader{data: data}
	m, err := r.model()
	if err != nil {
		return nil, err
	}
	m.Version = version
	return m, nil
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) readStr(n int) string {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return ""
	}
	s := r.data[r.off : r.off+n]
	r.off += n
	if i := strings.IndexByte(string(s), 0); i >= 0 {
		return string(s[:i])
	}
	return string(s)
}

func (r *reader) readI16() int16 {
	return int16(r.readU16())
}

func (r *reader) readU16() uint16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) readF32() float32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := math.Float32frombits(binary.LittleEndian.Uint32(r.data[r.off:]))
	r.off += 4
	return v
}

func (r *reader) model() (*Model, error) {
	name := r.readStr(32)
	meshCount := int(r.readU16())
	_ = r.readU16() // bone count
	_ = r.readU16() // action count

	if meshCount > maxMeshes {
		return nil, errors.Errorf("invalid mesh count %d", meshCount)
	}

	m := &Model{Name: name, Meshes: make([]Mesh, 0, meshCount)}
	for i := 0; i < meshCount; i++ {
		nv := int(r.readI16())
		nn := int(r.readI16())
		ntc := int(r.readI16())
		nt := int(r.readI16())
		_ = r.readI16() // texture index
		if nv < 0 || nn < 0 || ntc < 0 || nt < 0 {
			return nil, errors.Errorf("mesh %d: negative element count", i)
		}

		// Vertices: 16 bytes each (node:i16, pad:i16, x:f32, y:f32, z:f32)
		verts := make([][3]float32, nv)
		for j := range verts {
			_ = r.readI16() // node
			_ = r.readI16()
			verts[j] = [3]float32{r.readF32(), r.readF32(), r.readF32()}
		}

		// Normals: 20 bytes each (node:i16, pad:i16, n:3*f32, bind:i16, pad:i16)
		normals := make([][3]float32, nn)
		for j := range normals {
			_ = r.readI16()
			_ = r.readI16()
			normals[j] = [3]float32{r.readF32(), r.readF32(), r.readF32()}
			_ = r.readI16()
			_ = r.readI16()
		}

		uvs := make([][2]float32, ntc)
		for j := range uvs {
			uvs[j] = [2]float32{r.readF32(), r.readF32()}
		}

		tris := make([]Triangle, 0, nt)
		for j := 0; j < nt; j++ {
			base := r.off
			if base+triangleSize > len(r.data) {
				return nil, errors.Errorf("mesh %d: truncated triangle %d", i, j)
			}
			var t Triangle
			t.Polygon = int(r.data[base])
			for k := 0; k < 4; k++ {
				t.VI[k] = int16(binary.LittleEndian.Uint16(r.data[base+2+k*2:]))
				t.NI[k] = int16(binary.LittleEndian.Uint16(r.data[base+10+k*2:]))
				t.TI[k] = int16(binary.LittleEndian.Uint16(r.data[base+18+k*2:]))
			}
			tris = append(tris, t)
			r.off += triangleSize
		}

		texPath := strings.ReplaceAll(r.readStr(32), "\\", "/")

		m.Meshes = append(m.Meshes, Mesh{
			Verts:   verts,
			Normals: normals,
			UVs:     uvs,
			Tris:    tris,
			TexPath: texPath,
		})
	}

	return m, nil
}

package bmd

import (
	"encoding/binary"
	"math/bits"
)

// decryptXOR reverses the v12 chained XOR:
//
//	out[i] = (data[i] ^ key[i&15]) - chain
//	chain  = data[i] + 0x3D
func decryptXOR(data []byte, key [16]byte) []byte {
	out := make([]byte, len(data))
	chain := byte(0x5E)
	for i, b := range data {
		out[i] = (b ^ key[i&15]) - chain
		chain = b + 0x3D
	}
	return out
}

// leaRoundKeys expands a 32-byte key into 32 rounds of 6 words.
func leaRoundKeys(key [32]byte) [192]uint32 {
	var t [8]uint32
	for i := range t {
		t[i] = binary.LittleEndian.Uint32(key[i*4:])
	}

	shifts := [6]int{1, 3, 6, 11, 13, 17}
	var rk [192]uint32
	for i := uint32(0); i < 32; i++ {
		d := leaDelta[i&7]
		s := (i * 6) & 7
		for j := uint32(0); j < 6; j++ {
			idx := (s + j) & 7
			t[idx] = bits.RotateLeft32(t[idx]+bits.RotateLeft32(d, int(i+j)), shifts[j])
			rk[i*6+j] = t[idx]
		}
	}
	return rk
}

// decryptLEA decrypts whole 16-byte blocks in ECB mode. A trailing partial
// block is copied through unchanged.
func decryptLEA(data []byte, key [32]byte) []byte {
	rk := leaRoundKeys(key)
	out := make([]byte, len(data))
	full := len(data) &^ 15

	for off := 0; off < full; off += 16 {
		s0 := binary.LittleEndian.Uint32(data[off:])
		s1 := binary.LittleEndian.Uint32(data[off+4:])
		s2 := binary.LittleEndian.Uint32(data[off+8:])
		s3 := binary.LittleEndian.Uint32(data[off+12:])

		for r := 31; r >= 0; r-- {
			k := rk[r*6 : r*6+6]
			t0 := s3
			t1 := bits.RotateLeft32(s0, -9) - (t0 ^ k[0]) ^ k[1]
			t2 := bits.RotateLeft32(s1, 5) - (t1 ^ k[2]) ^ k[3]
			t3 := bits.RotateLeft32(s2, 3) - (t2 ^ k[4]) ^ k[5]
			s0, s1, s2, s3 = t0, t1, t2, t3
		}

		binary.LittleEndian.PutUint32(out[off:], s0)
		binary.LittleEndian.PutUint32(out[off+4:], s1)
		binary.LittleEndian.PutUint32(out[off+8:], s2)
		binary.LittleEndian.PutUint32(out[off+12:], s3)
	}
	copy(out[full:], data[full:])
	return out
}

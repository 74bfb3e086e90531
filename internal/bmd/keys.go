package bmd

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// Keys holds the decryption keys for encrypted BMD versions.
type Keys struct {
	XOR [16]byte // v12 chained XOR
	LEA [32]byte // v15 LEA-256
}

// DefaultKeys returns the keys shipped with the game client.
func DefaultKeys() Keys {
	return Keys{
		XOR: [16]byte{
			0xD1, 0x73, 0x52, 0xF6, 0xD2, 0x9A, 0xCB, 0x27,
			0x3E, 0xAF, 0x59, 0x31, 0x37, 0xB3, 0xE7, 0xA2,
		},
		LEA: [32]byte{
			0xCC, 0x50, 0x45, 0x13, 0xC2, 0xA6, 0x57, 0x4E,
			0xD6, 0x9A, 0x45, 0x89, 0xBF, 0x2F, 0xBC, 0xD9,
			0x39, 0xB3, 0xB3, 0xBD, 0x50, 0xBD, 0xCC, 0xB6,
			0x85, 0x46, 0xD1, 0xD6, 0x16, 0x54, 0xE0, 0x87,
		},
	}
}

// WithLEAHex replaces the LEA key with a 64-character hex string.
// An empty string keeps the current key.
func (k Keys) WithLEAHex(s string) (Keys, error) {
	if s == "" {
		return k, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return k, errors.Wrap(err, "bmd: lea key")
	}
	if len(raw) != len(k.LEA) {
		return k, errors.Errorf("bmd: lea key is %d bytes, want %d", len(raw), len(k.LEA))
	}
	copy(k.LEA[:], raw)
	return k, nil
}

// LEA-256 key schedule constants.
var leaDelta = [8]uint32{
	0xC3EFE9DB, 0x44626B02, 0x79E27C8A, 0x78DF30EC,
	0x715EA49E, 0xC785DA0A, 0xE04EF22A, 0xE5C40957,
}

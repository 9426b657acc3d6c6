package cryptonight

import "encoding/binary"

// Grøstl-256, final-round version. The 64-byte state is an 8x8 byte matrix
// stored column by column: row i, column j lives at index 8*j+i.

const (
	groestlBlock  = 64
	groestlRounds = 10
)

var (
	groestlShiftP = [8]int{0, 1, 2, 3, 4, 5, 6, 7}
	groestlShiftQ = [8]int{1, 3, 5, 7, 0, 2, 4, 6}
	groestlMix    = [8]byte{2, 2, 3, 4, 5, 3, 5, 7}
)

func gfMul(a, b byte) byte {
	var r byte
	for b != 0 {
		if b&1 != 0 {
			r ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return r
}

func groestlPermute(s *[groestlBlock]byte, q bool) {
	shift := &groestlShiftP
	if q {
		shift = &groestlShiftQ
	}

	var t [groestlBlock]byte
	for r := 0; r < groestlRounds; r++ {
		// AddRoundConstant
		for j := 0; j < 8; j++ {
			c := byte(j<<4) ^ byte(r)
			if q {
				for i := 0; i < 7; i++ {
					s[8*j+i] ^= 0xff
				}
				s[8*j+7] ^= 0xff ^ c
			} else {
				s[8*j] ^= c
			}
		}

		// SubBytes and ShiftBytes
		for i := 0; i < 8; i++ {
			for j := 0; j < 8; j++ {
				t[8*j+i] = sbox[s[8*((j+shift[i])%8)+i]]
			}
		}

		// MixBytes
		for j := 0; j < 8; j++ {
			col := t[8*j : 8*j+8]
			for i := 0; i < 8; i++ {
				var v byte
				for k := 0; k < 8; k++ {
					v ^= gfMul(col[k], groestlMix[(k-i+8)%8])
				}
				s[8*j+i] = v
			}
		}
	}
}

func groestlCompress(h *[groestlBlock]byte, m []byte) {
	var p, q [groestlBlock]byte
	for i := range p {
		p[i] = h[i] ^ m[i]
		q[i] = m[i]
	}
	groestlPermute(&p, false)
	groestlPermute(&q, true)
	for i := range h {
		h[i] ^= p[i] ^ q[i]
	}
}

// groestl256 returns the 32-byte Grøstl-256 digest of data.
func groestl256(data []byte) [32]byte {
	var h [groestlBlock]byte
	h[groestlBlock-2] = 0x01 // 256-bit output length, big-endian

	n := len(data)
	padded := (n + 1 + 8 + groestlBlock - 1) / groestlBlock * groestlBlock
	msg := make([]byte, padded)
	copy(msg, data)
	msg[n] = 0x80
	binary.BigEndian.PutUint64(msg[padded-8:], uint64(padded/groestlBlock))

	for off := 0; off < padded; off += groestlBlock {
		groestlCompress(&h, msg[off:off+groestlBlock])
	}

	x := h
	groestlPermute(&x, false)
	var out [32]byte
	for i := range out {
		out[i] = x[32+i] ^ h[32+i]
	}
	return out
}

package cryptonight

import (
	"encoding/binary"
	"math/bits"
)

// Skein-512-256, version 1.3, built on Threefish-512.

const (
	skeinBlock  = 64
	skeinWords  = 8
	skeinRounds = 72
	skeinC240   = 0x1BD11BDAA9FC1A22

	skeinTypeCfg = 4
	skeinTypeMsg = 48
	skeinTypeOut = 63

	skeinFirst = 1 << 62
	skeinFinal = 1 << 63
)

var skeinRotations = [8][4]int{
	{46, 36, 19, 37},
	{33, 27, 14, 42},
	{17, 49, 36, 39},
	{44, 9, 54, 56},
	{39, 30, 34, 24},
	{13, 50, 10, 17},
	{25, 29, 39, 43},
	{8, 35, 56, 22},
}

var skeinPermutation = [skeinWords]int{2, 1, 4, 7, 6, 5, 0, 3}

// skeinIV is the chaining value after the configuration block for a
// 256-bit output.
var skeinIV [skeinWords]uint64

func init() {
	var cfg [32]byte
	binary.LittleEndian.PutUint32(cfg[0:], 0x33414853) // "SHA3"
	binary.LittleEndian.PutUint16(cfg[4:], 1)
	binary.LittleEndian.PutUint64(cfg[8:], 256)
	skeinIV = skeinUBI(skeinIV, cfg[:], skeinTypeCfg)
}

func threefishInject(v *[skeinWords]uint64, k *[skeinWords + 1]uint64, t *[3]uint64, s int) {
	for i := range v {
		v[i] += k[(s+i)%(skeinWords+1)]
	}
	v[5] += t[s%3]
	v[6] += t[(s+1)%3]
	v[7] += uint64(s)
}

func threefish512(key [skeinWords]uint64, tweak [2]uint64, plain [skeinWords]uint64) [skeinWords]uint64 {
	var k [skeinWords + 1]uint64
	k[skeinWords] = skeinC240
	for i, w := range key {
		k[i] = w
		k[skeinWords] ^= w
	}
	t := [3]uint64{tweak[0], tweak[1], tweak[0] ^ tweak[1]}

	v := plain
	for d := 0; d < skeinRounds; d++ {
		if d%4 == 0 {
			threefishInject(&v, &k, &t, d/4)
		}
		rot := &skeinRotations[d%8]
		for j := 0; j < 4; j++ {
			v[2*j] += v[2*j+1]
			v[2*j+1] = bits.RotateLeft64(v[2*j+1], rot[j]) ^ v[2*j]
		}
		var p [skeinWords]uint64
		for i := range p {
			p[i] = v[skeinPermutation[i]]
		}
		v = p
	}
	threefishInject(&v, &k, &t, skeinRounds/4)
	return v
}

// skeinUBI chains msg through Threefish with the given block type. An empty
// message is processed as a single zero block.
func skeinUBI(chain [skeinWords]uint64, msg []byte, typ uint64) [skeinWords]uint64 {
	blocks := (len(msg) + skeinBlock - 1) / skeinBlock
	if blocks == 0 {
		blocks = 1
	}

	var pos uint64
	for b := 0; b < blocks; b++ {
		var buf [skeinBlock]byte
		end := (b + 1) * skeinBlock
		if end > len(msg) {
			end = len(msg)
		}
		n := copy(buf[:], msg[b*skeinBlock:end])
		pos += uint64(n)

		flags := typ << 56
		if b == 0 {
			flags |= skeinFirst
		}
		if b == blocks-1 {
			flags |= skeinFinal
		}

		var w [skeinWords]uint64
		for i := range w {
			w[i] = binary.LittleEndian.Uint64(buf[8*i:])
		}
		e := threefish512(chain, [2]uint64{pos, flags}, w)
		for i := range chain {
			chain[i] = e[i] ^ w[i]
		}
	}
	return chain
}

// skein512x256 returns the 32-byte Skein-512-256 digest of data.
func skein512x256(data []byte) [32]byte {
	chain := skeinUBI(skeinIV, data, skeinTypeMsg)
	var counter [8]byte
	chain = skeinUBI(chain, counter[:], skeinTypeOut)

	var out [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(out[8*i:], chain[i])
	}
	return out
}

package cryptonight

// JH-256 over 4-bit elements. This is the straightforward nibble-sliced
// form; it runs once per slow hash so speed is not a concern.

const (
	jhBlock  = 64
	jhRounds = 42
)

var jhSbox = [2][16]byte{
	{9, 0, 4, 11, 13, 12, 3, 15, 1, 10, 2, 6, 7, 5, 8, 14},
	{3, 12, 6, 13, 5, 7, 1, 9, 15, 2, 0, 4, 11, 10, 14, 8},
}

// Nibbles of the integer part of sqrt(2) as specified for round zero.
var jhRoundConstantZero = [64]byte{
	0x6, 0xa, 0x0, 0x9, 0xe, 0x6, 0x6, 0x7, 0xf, 0x3, 0xb, 0xc, 0xc, 0x9, 0x0, 0x8,
	0xb, 0x2, 0xf, 0xb, 0x1, 0x3, 0x6, 0x6, 0xe, 0xa, 0x9, 0x5, 0x7, 0xd, 0x3, 0xe,
	0x3, 0xa, 0xd, 0xe, 0xc, 0x1, 0x7, 0x5, 0x1, 0x2, 0x7, 0x7, 0x5, 0x0, 0x9, 0x9,
	0xd, 0xa, 0x2, 0xf, 0x5, 0x9, 0x0, 0xb, 0x0, 0x6, 0x6, 0x7, 0x3, 0x2, 0x2, 0xa,
}

// jhLinear is the MDS layer L on one pair of nibbles.
func jhLinear(a, b *byte) {
	*b ^= ((*a << 1) ^ (*a >> 3) ^ ((*a >> 2) & 2)) & 0xf
	*a ^= ((*b << 1) ^ (*b >> 3) ^ ((*b >> 2) & 2)) & 0xf
}

// jhPermuteLayer applies L, the swap Pi, the de-interleave P' and the swap
// Phi to tem, writing the result into out. Both slices have the same even
// length.
func jhPermuteLayer(tem, out []byte) {
	n := len(tem)
	for i := 0; i < n; i += 2 {
		jhLinear(&tem[i], &tem[i+1])
	}
	for i := 0; i < n; i += 4 {
		tem[i+2], tem[i+3] = tem[i+3], tem[i+2]
	}
	half := n / 2
	for i := 0; i < half; i++ {
		out[i] = tem[2*i]
		out[i+half] = tem[2*i+1]
	}
	for i := half; i < n; i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
}

type jhState struct {
	h  [128]byte
	a  [256]byte
	rc [64]byte
}

func (s *jhState) round() {
	var tem [256]byte
	for i := range tem {
		bit := (s.rc[i>>2] >> (3 - (i & 3))) & 1
		tem[i] = jhSbox[bit][s.a[i]]
	}
	jhPermuteLayer(tem[:], s.a[:])

	var rt [64]byte
	for i := range rt {
		rt[i] = jhSbox[0][s.rc[i]]
	}
	jhPermuteLayer(rt[:], s.rc[:])
}

func (s *jhState) e8() {
	s.rc = jhRoundConstantZero

	var tem [256]byte
	for i := 0; i < 256; i++ {
		shift := 7 - (i & 7)
		t0 := (s.h[i>>3] >> shift) & 1
		t1 := (s.h[(i+256)>>3] >> shift) & 1
		t2 := (s.h[(i+512)>>3] >> shift) & 1
		t3 := (s.h[(i+768)>>3] >> shift) & 1
		tem[i] = t0<<3 | t1<<2 | t2<<1 | t3
	}
	for i := 0; i < 128; i++ {
		s.a[2*i] = tem[i]
		s.a[2*i+1] = tem[i+128]
	}

	for r := 0; r < jhRounds; r++ {
		s.round()
	}

	for i := 0; i < 128; i++ {
		tem[i] = s.a[2*i]
		tem[i+128] = s.a[2*i+1]
	}
	s.h = [128]byte{}
	for i := 0; i < 256; i++ {
		shift := 7 - (i & 7)
		s.h[i>>3] |= ((tem[i] >> 3) & 1) << shift
		s.h[(i+256)>>3] |= ((tem[i] >> 2) & 1) << shift
		s.h[(i+512)>>3] |= ((tem[i] >> 1) & 1) << shift
		s.h[(i+768)>>3] |= (tem[i] & 1) << shift
	}
}

func (s *jhState) compress(m []byte) {
	for i := 0; i < jhBlock; i++ {
		s.h[i] ^= m[i]
	}
	s.e8()
	for i := 0; i < jhBlock; i++ {
		s.h[i+jhBlock] ^= m[i]
	}
}

// jh256 returns the 32-byte JH-256 digest of data.
func jh256(data []byte) [32]byte {
	var s jhState
	s.h[0] = 0x01 // 256-bit digest, big-endian
	var zero [jhBlock]byte
	s.compress(zero[:])

	n := len(data)
	total := n + jhBlock
	if n%jhBlock != 0 {
		total = (n+jhBlock-1)/jhBlock*jhBlock + jhBlock
	}
	msg := make([]byte, total)
	copy(msg, data)
	msg[n] = 0x80
	bitLen := uint64(n) * 8
	for i := 0; i < 8; i++ {
		msg[total-1-i] = byte(bitLen >> (8 * i))
	}

	for off := 0; off < total; off += jhBlock {
		s.compress(msg[off : off+jhBlock])
	}

	var out [32]byte
	copy(out[:], s.h[96:])
	return out
}

package cryptonight

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"github.com/decred/dcrd/crypto/blake256"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/cryptonote/keccak"
	"github.com/opd-ai/cryptonote/limits"
	"github.com/opd-ai/cryptonote/types"
)

// Variant selects the CryptoNight revision.
type Variant int

const (
	// V0 is the original algorithm.
	V0 Variant = 0
	// V1 adds the byte-11 and tweak XORs; inputs must be at least 43 bytes.
	V1 Variant = 1
)

func (v Variant) String() string {
	switch v {
	case V0:
		return "v0"
	case V1:
		return "v1"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ScratchpadSize 2 MiB scratchpad for memhard loop
const ScratchpadSize = 2 * 1024 * 1024

const (
	iterations = 1 << 20
	blockSize  = 16
	textBlocks = 8
	slots      = ScratchpadSize / blockSize
	slotMask   = slots - 1

	variant1Table = 0x75310
)

// ErrUnsupportedVariant is returned for any variant other than V0 or V1.
var ErrUnsupportedVariant = errors.New("cryptonight: unsupported variant")

// State holds the scratchpad for one hash at a time. A State must not be
// used by more than one goroutine concurrently.
type State struct {
	scratchpad [slots][2]uint64
}

// NewState allocates a State and its 2 MiB scratchpad.
func NewState() *State {
	return new(State)
}

var statePool = sync.Pool{
	New: func() any { return NewState() },
}

// Sum computes the slow hash of data using a pooled State.
func Sum(data []byte, variant Variant, prehashed bool) (types.Hash, error) {
	cn := statePool.Get().(*State)
	defer statePool.Put(cn)
	return cn.Sum(data, variant, prehashed)
}

func (b *block) setWords(w [2]uint64) {
	b[0] = uint32(w[0])
	b[1] = uint32(w[0] >> 32)
	b[2] = uint32(w[1])
	b[3] = uint32(w[1] >> 32)
}

func (b *block) words() [2]uint64 {
	return [2]uint64{
		uint64(b[0]) | uint64(b[1])<<32,
		uint64(b[2]) | uint64(b[3])<<32,
	}
}

func loadText(text *[textBlocks]block, src []byte) {
	for i := range text {
		for j := 0; j < 4; j++ {
			text[i][j] = binary.LittleEndian.Uint32(src[16*i+4*j:])
		}
	}
}

func storeText(text *[textBlocks]block, dst []byte) {
	for i := range text {
		for j := 0; j < 4; j++ {
			binary.LittleEndian.PutUint32(dst[16*i+4*j:], text[i][j])
		}
	}
}

// variant1Shuffle rewrites byte 11 of a stored slot, which is the top byte
// of the low 32 bits of the second word.
func variant1Shuffle(w uint64) uint64 {
	tmp := byte(w >> 24)
	idx := ((tmp>>3)&6 | tmp&1) << 1
	tmp ^= byte(uint32(variant1Table)>>idx) & 0x30
	return w&^(0xff<<24) | uint64(tmp)<<24
}

// Sum computes the slow hash of data. When prehashed is true, data must be
// a 200-byte Keccak state and the initial absorb is skipped.
func (cn *State) Sum(data []byte, variant Variant, prehashed bool) (types.Hash, error) {
	if variant != V0 && variant != V1 {
		logrus.WithFields(logrus.Fields{
			"function": "Sum",
			"variant":  int(variant),
		}).Error("Unsupported CryptoNight variant")
		return types.ZeroHash, fmt.Errorf("%w: %s", ErrUnsupportedVariant, variant)
	}
	if prehashed {
		if err := limits.ValidatePrehashedInput(data); err != nil {
			return types.ZeroHash, err
		}
	}
	if variant == V1 {
		if err := limits.ValidateVariant1Input(data); err != nil {
			return types.ZeroHash, err
		}
	}

	var st keccak.State
	if prehashed {
		st.SetBytes(data)
	} else {
		st.Absorb(data)
	}
	var raw [keccak.StateSize]byte
	st.PutBytes(raw[:])

	var tweak uint64
	if variant == V1 {
		tweak = binary.LittleEndian.Uint64(raw[192:]) ^
			binary.LittleEndian.Uint64(data[limits.Variant1TweakOffset:])
	}

	cn.fill(&raw)
	cn.mix(&raw, variant, tweak)
	cn.drain(&raw)

	st.SetBytes(raw[:])
	st.Permute()
	st.PutBytes(raw[:])

	return finalHash(&raw), nil
}

// fill expands state bytes 64..192 into the scratchpad with key 0..32.
func (cn *State) fill(raw *[keccak.StateSize]byte) {
	var keys roundKeys
	expandKey(raw[0:32], &keys)

	var text [textBlocks]block
	loadText(&text, raw[64:192])
	for i := 0; i < slots; i += textBlocks {
		for j := range text {
			pseudoRounds(&text[j], &keys)
			cn.scratchpad[i+j] = text[j].words()
		}
	}
}

func (cn *State) mix(raw *[keccak.StateSize]byte, variant Variant, tweak uint64) {
	le := binary.LittleEndian
	a := [2]uint64{
		le.Uint64(raw[0:]) ^ le.Uint64(raw[32:]),
		le.Uint64(raw[8:]) ^ le.Uint64(raw[40:]),
	}
	b := [2]uint64{
		le.Uint64(raw[16:]) ^ le.Uint64(raw[48:]),
		le.Uint64(raw[24:]) ^ le.Uint64(raw[56:]),
	}

	var c, k block
	for i := 0; i < iterations/2; i++ {
		j := (a[0] >> 4) & slotMask
		c.setWords(cn.scratchpad[j])
		k.setWords(a)
		aesRound(&c, &k)
		c1 := c.words()

		stored := [2]uint64{c1[0] ^ b[0], c1[1] ^ b[1]}
		if variant == V1 {
			stored[1] = variant1Shuffle(stored[1])
		}
		cn.scratchpad[j] = stored

		j = (c1[0] >> 4) & slotMask
		x := cn.scratchpad[j]
		hi, lo := bits.Mul64(c1[0], x[0])
		sum := [2]uint64{a[0] + hi, a[1] + lo}
		a = [2]uint64{x[0] ^ sum[0], x[1] ^ sum[1]}
		if variant == V1 {
			sum[1] ^= tweak
		}
		cn.scratchpad[j] = sum
		b = c1
	}
}

// drain folds the scratchpad back into state bytes 64..192 with key 32..64.
func (cn *State) drain(raw *[keccak.StateSize]byte) {
	var keys roundKeys
	expandKey(raw[32:64], &keys)

	var text [textBlocks]block
	var s block
	loadText(&text, raw[64:192])
	for i := 0; i < slots; i += textBlocks {
		for j := range text {
			s.setWords(cn.scratchpad[i+j])
			for w := range s {
				text[j][w] ^= s[w]
			}
			pseudoRounds(&text[j], &keys)
		}
	}
	storeText(&text, raw[64:192])
}

func finalHash(raw *[keccak.StateSize]byte) types.Hash {
	switch raw[0] & 3 {
	case 0:
		return blake256.Sum256(raw[:])
	case 1:
		return groestl256(raw[:])
	case 2:
		return jh256(raw[:])
	default:
		return skein512x256(raw[:])
	}
}

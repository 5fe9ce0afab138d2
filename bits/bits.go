// Package bits implements a packed, LSB-first bit vector with its own
// length-prefixed wire encoding, used by the canonical Huffman codec to
// store concatenated codewords.
package bits

import (
	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
)

// Bits is an ordered sequence of booleans packed LSB-first into bytes.
//
// Trailing bits in the final byte beyond ValidBits are always zero; every
// mutator restores that invariant before returning, so that two
// semantically-equal Bits compare and hash identically regardless of how
// many bytes their backing arrays happen to occupy.
type Bits struct {
	data      []byte
	validBits int
}

// New returns an empty Bits.
func New() *Bits {
	return &Bits{}
}

// Len returns the number of booleans currently stored.
func (b *Bits) Len() int {
	return b.validBits
}

// Push appends one boolean to the end of the sequence.
func (b *Bits) Push(v bool) {
	byteIdx := b.validBits / 8
	bitIdx := uint(b.validBits % 8)

	if byteIdx == len(b.data) {
		b.data = append(b.data, 0)
	}

	if v {
		b.data[byteIdx] |= 1 << bitIdx
	} else {
		b.data[byteIdx] &^= 1 << bitIdx
	}

	b.validBits++
}

// Pop removes and returns the last boolean in the sequence.
// The second return is false if the sequence was empty.
func (b *Bits) Pop() (bool, bool) {
	if b.validBits == 0 {
		return false, false
	}

	b.validBits--
	byteIdx := b.validBits / 8
	bitIdx := uint(b.validBits % 8)
	v := b.data[byteIdx]&(1<<bitIdx) != 0

	// Clear the now-trailing bit so the invariant holds.
	b.data[byteIdx] &^= 1 << bitIdx

	// Drop any now-unused trailing byte.
	if byteIdx+1 < len(b.data) {
		b.data = b.data[:byteIdx+1]
	}

	return v, true
}

// Index returns the boolean at position i.
func (b *Bits) Index(i int) (bool, bool) {
	if i < 0 || i >= b.validBits {
		return false, false
	}
	byteIdx := i / 8
	bitIdx := uint(i % 8)

	return b.data[byteIdx]&(1<<bitIdx) != 0, true
}

// Clear empties the sequence while retaining its backing array.
func (b *Bits) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.data = b.data[:0]
	b.validBits = 0
}

// Equal compares two Bits over their valid prefix only; backing array
// capacity and any zeroed-but-unused trailing bytes are not significant.
func (b *Bits) Equal(other *Bits) bool {
	if b.validBits != other.validBits {
		return false
	}
	n := (b.validBits + 7) / 8
	for i := 0; i < n; i++ {
		if b.data[i] != other.data[i] {
			return false
		}
	}

	return true
}

// Ser appends the wire form of b to dst: an Integer-encoded ValidBits count
// followed by ceil(ValidBits/8) payload bytes.
func (b *Bits) Ser(dst []byte) []byte {
	dst = varint.FromUint64(uint64(b.validBits)).Ser(dst)
	dst = append(dst, b.data...)

	return dst
}

// Deser reads a Bits from c, the inverse of Ser.
func Deser(c *cursor.Cursor) (*Bits, error) {
	n, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	validBits, err := n.Uint64()
	if err != nil {
		return nil, err
	}

	nBytes := (int(validBits) + 7) / 8
	data, err := c.Read(nBytes)
	if err != nil {
		return nil, errs.ErrNotEnoughBytes
	}

	out := make([]byte, nBytes)
	copy(out, data)

	return &Bits{data: out, validBits: int(validBits)}, nil
}

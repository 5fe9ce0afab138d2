package compress

import (
	"container/heap"
	"sort"

	"github.com/BurntNail/sourisdb/bits"
	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
)

// symbolCodec lets the Huffman implementation stay generic over its alphabet
// (raw bytes or Unicode scalar values), per the "Huffman over arbitrary
// alphabets" design note: the canonical table and the tree construction are
// identical either way, only the leaf symbol's own wire encoding differs.
type symbolCodec[T comparable] struct {
	ser   func(dst []byte, v T) []byte
	deser func(c *cursor.Cursor) (T, error)
}

var byteCodec = symbolCodec[byte]{
	ser: func(dst []byte, v byte) []byte { return append(dst, v) },
	deser: func(c *cursor.Cursor) (byte, error) {
		return c.ReadByte()
	},
}

var runeCodec = symbolCodec[rune]{
	ser: func(dst []byte, v rune) []byte {
		return varint.FromUint32(uint32(v)).Ser(dst)
	},
	deser: func(c *cursor.Cursor) (rune, error) {
		i, err := varint.Deser(c)
		if err != nil {
			return 0, err
		}
		n, err := i.Uint64()
		if err != nil {
			return 0, err
		}

		return rune(n), nil
	},
}

// EncodeBytes builds a canonical Huffman encoding of data, per §4.4.3.
func EncodeBytes(data []byte) []byte {
	return huffmanEncode(data, byteCodec)
}

// DecodeBytes reverses EncodeBytes.
func DecodeBytes(data []byte) ([]byte, error) {
	return huffmanDecode(data, byteCodec)
}

// EncodeRunes builds a canonical Huffman encoding over Unicode scalar values.
func EncodeRunes(data []rune) []byte {
	return huffmanEncode(data, runeCodec)
}

// DecodeRunes reverses EncodeRunes.
func DecodeRunes(data []byte) ([]rune, error) {
	return huffmanDecode(data, runeCodec)
}

type huffNode[T comparable] struct {
	freq        int
	symbol      T
	isLeaf      bool
	left, right *huffNode[T]
}

type huffHeap[T comparable] []*huffNode[T]

func (h huffHeap[T]) Len() int            { return len(h) }
func (h huffHeap[T]) Less(i, j int) bool  { return h[i].freq < h[j].freq }
func (h huffHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffHeap[T]) Push(x any)         { *h = append(*h, x.(*huffNode[T])) }
func (h *huffHeap[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

type leaf[T comparable] struct {
	symbol T
	length int
}

func huffmanEncode[T comparable](data []T, codec symbolCodec[T]) []byte {
	if len(data) == 0 {
		return []byte{0x00}
	}

	freqs := make(map[T]int)
	order := make([]T, 0)
	for _, s := range data {
		if _, ok := freqs[s]; !ok {
			order = append(order, s)
		}
		freqs[s]++
	}

	if len(freqs) == 1 {
		out := []byte{0x01}
		out = varint.FromUint64(uint64(len(data))).Ser(out)
		out = codec.ser(out, data[0])

		return out
	}

	lengths := codeLengths(freqs, order)

	leaves := make([]leaf[T], 0, len(lengths))
	for _, s := range order {
		leaves = append(leaves, leaf[T]{symbol: s, length: lengths[s]})
	}
	sortCanonical(leaves)

	codes := assignCanonicalCodes(leaves)

	out := []byte{0x02}
	out = varint.FromUint64(uint64(len(leaves))).Ser(out)
	for _, l := range leaves {
		out = codec.ser(out, l.symbol)
		out = varint.FromUint8(uint8(l.length)).Ser(out)
	}

	payload := bits.New()
	for _, s := range data {
		code := codes[s]
		for n := code.length - 1; n >= 0; n-- {
			payload.Push(code.bits&(1<<uint(n)) != 0)
		}
	}
	out = payload.Ser(out)

	return out
}

// codeLengths builds a standard Huffman tree (repeatedly merging the two
// lowest-frequency nodes of a single min-heap)
// and returns the resulting codeword bit-length per symbol.
func codeLengths[T comparable](freqs map[T]int, order []T) map[T]int {
	h := make(huffHeap[T], 0, len(order))
	for _, s := range order {
		h = append(h, &huffNode[T]{freq: freqs[s], symbol: s, isLeaf: true})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode[T])
		b := heap.Pop(&h).(*huffNode[T])
		heap.Push(&h, &huffNode[T]{freq: a.freq + b.freq, left: a, right: b})
	}

	lengths := make(map[T]int, len(order))
	var walk func(n *huffNode[T], depth int)
	walk = func(n *huffNode[T], depth int) {
		if n.isLeaf {
			if depth == 0 {
				depth = 1
			}
			lengths[n.symbol] = depth

			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	if h.Len() == 1 {
		walk(h[0], 0)
	}

	return lengths
}

// sortCanonical orders leaves by (codeword length, encounter order) — the
// canonical form the wire table is written in.
func sortCanonical[T comparable](leaves []leaf[T]) {
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].length < leaves[j].length
	})
}

type canonicalCode struct {
	bits   uint32
	length int
}

// assignCanonicalCodes deterministically reconstructs codewords from a
// length-sorted leaf list, the classic canonical-Huffman assignment: codes
// increment by one at each step and shift left whenever length increases.
func assignCanonicalCodes[T comparable](leaves []leaf[T]) map[T]canonicalCode {
	codes := make(map[T]canonicalCode, len(leaves))

	code := uint32(0)
	prevLen := leaves[0].length
	for _, l := range leaves {
		if l.length > prevLen {
			code <<= uint(l.length - prevLen)
			prevLen = l.length
		}
		codes[l.symbol] = canonicalCode{bits: code, length: l.length}
		code++
	}

	return codes
}

func huffmanDecode[T comparable](data []byte, codec symbolCodec[T]) ([]T, error) {
	c := cursor.New(data)
	tag, err := c.ReadByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case 0x00:
		return nil, nil
	case 0x01:
		countInt, err := varint.Deser(c)
		if err != nil {
			return nil, err
		}
		count, err := countInt.Uint64()
		if err != nil {
			return nil, err
		}
		sym, err := codec.deser(c)
		if err != nil {
			return nil, err
		}

		out := make([]T, count)
		for i := range out {
			out[i] = sym
		}

		return out, nil
	case 0x02:
		return huffmanDecodeGeneral(c, codec)
	default:
		return nil, errs.ErrHuffmanCorruptStream
	}
}

type decodeNode[T comparable] struct {
	symbol            T
	isLeaf            bool
	left, right       *decodeNode[T]
}

func huffmanDecodeGeneral[T comparable](c *cursor.Cursor, codec symbolCodec[T]) ([]T, error) {
	numLeavesInt, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	numLeaves, err := numLeavesInt.Uint64()
	if err != nil {
		return nil, err
	}

	leaves := make([]leaf[T], numLeaves)
	for i := range leaves {
		sym, err := codec.deser(c)
		if err != nil {
			return nil, err
		}
		lengthInt, err := varint.Deser(c)
		if err != nil {
			return nil, err
		}
		length, err := lengthInt.Uint64()
		if err != nil {
			return nil, err
		}
		leaves[i] = leaf[T]{symbol: sym, length: int(length)}
	}

	codes := assignCanonicalCodes(leaves)

	root := &decodeNode[T]{}
	for sym, code := range codes {
		n := root
		for bitIdx := code.length - 1; bitIdx >= 0; bitIdx-- {
			bit := code.bits&(1<<uint(bitIdx)) != 0
			if bit {
				if n.right == nil {
					n.right = &decodeNode[T]{}
				}
				n = n.right
			} else {
				if n.left == nil {
					n.left = &decodeNode[T]{}
				}
				n = n.left
			}
		}
		n.isLeaf = true
		n.symbol = sym
	}

	payload, err := bits.Deser(c)
	if err != nil {
		return nil, err
	}

	var out []T
	n := root
	for i := 0; i < payload.Len(); i++ {
		bit, _ := payload.Index(i)
		if bit {
			n = n.right
		} else {
			n = n.left
		}
		if n == nil {
			return nil, errs.ErrHuffmanCorruptTable
		}
		if n.isLeaf {
			out = append(out, n.symbol)
			n = root
		}
	}

	return out, nil
}

package compress

import (
	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
)

// RLEEncode run-length-encodes data as a flat sequence of (count:u8, byte:u8)
// pairs, prefixed by an Integer pair count. A run longer than 255 bytes is
// split across multiple pairs.
func RLEEncode(data []byte) []byte {
	pairs := make([]byte, 0, len(data)/4)
	pairCount := 0

	for i := 0; i < len(data); {
		run := data[i]
		j := i + 1
		for j < len(data) && data[j] == run && j-i < 255 {
			j++
		}
		pairs = append(pairs, byte(j-i), run)
		pairCount++
		i = j
	}

	out := varint.FromUint64(uint64(pairCount)).Ser(nil)
	out = append(out, pairs...)

	return out
}

// RLEDecode reverses RLEEncode.
func RLEDecode(data []byte) ([]byte, error) {
	c := cursor.New(data)

	pairCountInt, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	pairCount, err := pairCountInt.Uint64()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, pairCount*4)
	for i := uint64(0); i < pairCount; i++ {
		pair, err := c.Read(2)
		if err != nil {
			return nil, errs.ErrRLEPairCountMismatch
		}
		count, b := pair[0], pair[1]
		for n := byte(0); n < count; n++ {
			out = append(out, b)
		}
	}

	return out, nil
}

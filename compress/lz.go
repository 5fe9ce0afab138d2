package compress

import (
	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
)

// LZEncode wraps data in the LZ77-family block wrapper: an Integer original
// length, then (when nonzero) an Integer compressed length and the
// compressed bytes themselves. LZ4's block mode (rather than its streaming
// frame format) gives the compact, self-contained blocks this wrapper needs.
//
// It returns errs.ErrLZIncompressible when data is too short or otherwise
// incompressible for LZ4 to produce a block at all; callers (EncodeBinaryData)
// treat that as "this candidate does not apply" rather than a hard failure.
func LZEncode(data []byte) ([]byte, error) {
	out := varint.FromUint64(uint64(len(data))).Ser(nil)
	if len(data) == 0 {
		return out, nil
	}

	compressed, ok, err := lz4CompressBlock(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrLZIncompressible
	}

	out = varint.FromUint64(uint64(len(compressed))).Ser(out)
	out = append(out, compressed...)

	return out, nil
}

// LZDecode reverses LZEncode.
func LZDecode(data []byte) ([]byte, error) {
	c := cursor.New(data)

	originalLenInt, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	originalLen, err := originalLenInt.Uint64()
	if err != nil {
		return nil, err
	}
	if originalLen == 0 {
		return nil, nil
	}

	compressedLenInt, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	compressedLen, err := compressedLenInt.Uint64()
	if err != nil {
		return nil, err
	}

	compressed, err := c.Read(int(compressedLen))
	if err != nil {
		return nil, err
	}

	return lz4DecompressBlock(compressed, int(originalLen))
}

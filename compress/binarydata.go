package compress

import (
	"errors"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/format"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
)

// EncodeRaw wraps data as BinaryData's Raw candidate: a CompressionNone tag,
// an Integer length, then the bytes unmodified. Exposed so callers that need
// a guaranteed-infallible fallback (souris.Value's Binary variant, should
// EncodeBinaryData's LZ attempt ever error for a reason other than
// incompressibility) don't have to reimplement the framing.
func EncodeRaw(data []byte) []byte {
	raw := append([]byte{byte(format.CompressionNone)}, varint.FromUint64(uint64(len(data))).Ser(nil)...)
	return append(raw, data...)
}

// EncodeBinaryData encodes data as the shortest of three candidates — raw
// passthrough, RLE, and LZ — prefixed by a one-byte compression tag, per
// §4.4.4. Ties are broken in the order Raw > RLE > LZ (the earliest
// candidate wins on equal length).
func EncodeBinaryData(data []byte) ([]byte, error) {
	raw := EncodeRaw(data)

	rle := append([]byte{byte(format.CompressionRLE)}, RLEEncode(data)...)

	candidates := [][]byte{rle}

	lzBody, err := LZEncode(data)
	switch {
	case err == nil:
		candidates = append(candidates, append([]byte{byte(format.CompressionLZ4)}, lzBody...))
	case errors.Is(err, errs.ErrLZIncompressible):
		// LZ4 has nothing to offer here; Raw/RLE alone decide the winner.
	default:
		return nil, err
	}

	best := raw
	for _, candidate := range candidates {
		if len(candidate) < len(best) {
			best = candidate
		}
	}

	return best, nil
}

// DecodeBinaryData reverses EncodeBinaryData.
func DecodeBinaryData(data []byte) ([]byte, error) {
	c := cursor.New(data)
	tag, err := c.ReadByte()
	if err != nil {
		return nil, err
	}

	rest := c.ReadRemaining()

	switch format.CompressionType(tag) {
	case format.CompressionNone:
		rc := cursor.New(rest)
		lengthInt, err := varint.Deser(rc)
		if err != nil {
			return nil, err
		}
		length, err := lengthInt.Uint64()
		if err != nil {
			return nil, err
		}

		return rc.Read(int(length))
	case format.CompressionRLE:
		return RLEDecode(rest)
	case format.CompressionLZ4:
		return LZDecode(rest)
	default:
		return nil, errs.ErrNoCompressionTypeFound
	}
}

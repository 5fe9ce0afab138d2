package compress

import (
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor instances across LZEncode calls;
// the type carries internal match-finder state worth keeping warm rather
// than reallocating every time EncodeBinaryData tries the LZ candidate.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// lz4CompressBlock runs one LZ4 block compression, per §4.4.2's note that
// the source uses LZ4 framing. The result is nil for empty input.
//
// CompressBlock reports a zero-length result with a nil error when data is
// too short or incompressible for LZ4 to shrink at all; that is not a
// failure, so the second return reports whether compression actually
// produced a usable block. Callers must fall back to another candidate when
// it is false — there is no LZ4 block to decompress back into data.
func lz4CompressBlock(data []byte) ([]byte, bool, error) {
	if len(data) == 0 {
		return nil, true, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, false, err
	}
	if n == 0 {
		return nil, false, nil
	}

	return dst[:n], true, nil
}

// lz4DecompressBlock reverses lz4CompressBlock. Unlike a general-purpose LZ4
// reader, LZDecode always knows the exact original length up front (it is
// part of the wire wrapper), so the destination buffer is sized exactly
// instead of growing and retrying.
func lz4DecompressBlock(data []byte, originalLen int) ([]byte, error) {
	dst := make([]byte, originalLen)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Package errs centralises the sentinel errors shared across the codec and
// daemon packages, the way mebo's errs package centralises ErrInvalidMagicNumber,
// ErrHashMismatch, and friends instead of scattering errors.New calls at each
// call site.
//
// Callers wrap a sentinel with extra context via fmt.Errorf("...: %w", errs.ErrXxx)
// and unwrap it with errors.Is.
package errs

import "errors"

// Buffer/framing-level errors (Cursor, Bits, Integer, compression wrappers).
var (
	ErrNotEnoughBytes                 = errors.New("sourisdb: not enough bytes provided")
	ErrInvalidSignedStateDiscriminant = errors.New("sourisdb: invalid signed state discriminant")
	ErrInvalidIntegerSizeDiscriminant = errors.New("sourisdb: invalid integer size discriminant")
	ErrWrongType                      = errors.New("sourisdb: attempted to convert into a different type than was originally serialised from")
	ErrParseError                     = errors.New("sourisdb: error parsing integer from base-10 text")
	ErrNoCompressionTypeFound         = errors.New("sourisdb: invalid compression discriminant")
	ErrRLEPairCountMismatch           = errors.New("sourisdb: run-length-encoding pair count did not match announced count")
	ErrHuffmanCorruptStream           = errors.New("sourisdb: huffman stream began with an unknown case tag")
	ErrHuffmanCorruptTable            = errors.New("sourisdb: huffman table bytes did not describe a valid code assignment")
	ErrLZIncompressible               = errors.New("sourisdb: data too short or incompressible for an LZ4 block")
)

// Semantic-level errors (Value, Timestamp).
var (
	ErrInvalidType        = errors.New("sourisdb: invalid value type discriminant")
	ErrInvalidCharacter   = errors.New("sourisdb: integer does not correspond to a valid unicode scalar value")
	ErrNonUTF8String      = errors.New("sourisdb: string payload was not valid utf-8")
	ErrInvalidDateOrTime  = errors.New("sourisdb: year/month/day/hour/minute/second/nanosecond do not form a valid timestamp")
	ErrNotAStringKeyFound = errors.New("sourisdb: found a non-string value in the key position of a map")
	ErrSerdeJSON          = errors.New("sourisdb: JSON payload failed to parse")
)

// Higher-level errors (Store, DB manager).
var (
	ErrDatabaseNotFound    = errors.New("sourisdb: database not found")
	ErrKeyNotFound         = errors.New("sourisdb: key not found")
	ErrInvalidDatabaseName = errors.New("sourisdb: database names must be ascii and not equal to \"meta\"")
	ErrCorruptStoreHeader  = errors.New("sourisdb: store bytes did not begin with a valid header")
	ErrUnsupportedVersion  = errors.New("sourisdb: store was written by an unsupported format version")
	ErrNotAMapOrArray      = errors.New("sourisdb: store root value must be a map (a JSON object)")
	ErrCorruptStorePair    = errors.New("sourisdb: store key or value encoding had trailing bytes beyond its declared length")
)

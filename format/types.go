// Package format holds the small wire-level enums shared between the
// compress and souris packages, so a discriminant byte has one canonical
// String() instead of being re-described at every call site.
package format

// CompressionType is the BinaryData discriminant: which of the three
// candidate encodings (raw passthrough, run-length, LZ) a given payload was
// stored as.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x00 // CompressionNone stores the payload unmodified.
	CompressionRLE  CompressionType = 0x01 // CompressionRLE stores (count, byte) run pairs.
	CompressionLZ4  CompressionType = 0x02 // CompressionLZ4 stores an LZ4-framed block.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionRLE:
		return "RLE"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

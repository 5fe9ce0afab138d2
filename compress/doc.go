// Package compress implements the three interchangeable byte-stream
// compressors used inside the binary codec — Run-Length-Encoding, an
// LZ77-family block compressor, and canonical Huffman coding over an
// arbitrary symbol alphabet — plus BinaryData, which picks whichever of
// {Raw, RLE, LZ} produced the shortest wire form for a given payload.
//
// # Self-describing wrappers
//
// RLEEncode, LZEncode, and EncodeBytes/EncodeRunes (Huffman) each produce a
// wire form a matching decode function can parse on its own, with no
// external framing required. EncodeBinaryData adds one more layer on top of
// Raw/RLE/LZ: a single leading tag byte so a decoder can dispatch without
// trying every candidate.
//
//	encoded, err := compress.EncodeBinaryData(payload)
//	original, err := compress.DecodeBinaryData(encoded)
//
// Huffman is not one of BinaryData's three candidates, and unlike RLE/LZ it
// has no caller elsewhere in this module: the Value codec's String and JSON
// payloads are stored as plain length-prefixed UTF-8, uncompressed. Huffman
// is exposed as an independent, directly-tested primitive (EncodeBytes/
// DecodeBytes for byte alphabets, EncodeRunes/DecodeRunes for text) rather
// than wired into a caller that the wire format never asks for.
//
// # Algorithm selection
//
// EncodeBinaryData always tries all three candidates and keeps the
// shortest, breaking ties Raw > RLE > LZ. There is no heuristic shortcut:
// payload sizes in this format are small enough (Store values, not
// multi-megabyte blobs) that encoding all three and comparing lengths is
// cheap relative to a wrong choice bloating the stored bytes.
//
// # Memory management
//
// LZEncode uses a pooled lz4.Compressor (see lz4.go) to avoid repeated
// allocation of its internal match-finding state across calls; LZDecode
// needs no pooled state.
package compress

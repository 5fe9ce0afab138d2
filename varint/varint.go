// Package varint implements the two-discriminant variable-width integer
// codec shared by every other wire format in this module: the length
// prefixes in Bits, the RLE/LZ wrappers in compress, and every Integer-typed
// field of a Value.
//
// An Integer carries more than its numeric value: it remembers the
// "declared" width it was constructed with (OriginalSize) separately from
// the narrowest width actually needed to carry its current magnitude
// (StoredSize, computed at serialization time). Two Integers with the same
// numeric value but different OriginalSize are NOT interchangeable — a
// TryXxx conversion is a strict type check against OriginalSize, not a
// range check against the value.
package varint

import (
	"fmt"
	"math"
	"strconv"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
)

// SignedState is the sign discriminant of an Integer. The zero value is
// intentionally invalid (the wire reserves discriminant bits 00) so a
// zero-value Integer is visibly unconstructed.
type SignedState uint8

const (
	Unsigned       SignedState = 0b01
	SignedPositive SignedState = 0b10
	SignedNegative SignedState = 0b11
)

func (s SignedState) valid() bool {
	return s == Unsigned || s == SignedPositive || s == SignedNegative
}

// Size is the declared or stored byte-width discriminant.
type Size uint8

const (
	Small    Size = 0b001 // 1 byte
	Smedium  Size = 0b010 // 2 bytes
	Medium   Size = 0b011 // 4 bytes
	Large    Size = 0b100 // 8 bytes
)

// Bytes returns the byte width a Size discriminant represents.
func (s Size) Bytes() int {
	switch s {
	case Small:
		return 1
	case Smedium:
		return 2
	case Medium:
		return 4
	case Large:
		return 8
	default:
		return 0
	}
}

func (s Size) valid() bool {
	return s.Bytes() != 0
}

// sizeForWidth returns the Size discriminant for a byte width of 1, 2, 4, or 8.
func sizeForWidth(n int) Size {
	switch {
	case n <= 1:
		return Small
	case n <= 2:
		return Smedium
	case n <= 4:
		return Medium
	default:
		return Large
	}
}

// Integer is a variable-width signed or unsigned integer with an explicit
// declared width, per §3.1/§4.3 of the wire format.
type Integer struct {
	signedState  SignedState
	originalSize Size
	magnitude    uint64 // absolute value; sign lives in signedState, not two's complement
}

// SignedState returns the sign discriminant.
func (i Integer) SignedState() SignedState { return i.signedState }

// OriginalSize returns the declared construction width.
func (i Integer) OriginalSize() Size { return i.originalSize }

// storedSize computes the smallest width in {1,2,4,8} whose bytes can hold
// the nonzero magnitude prefix of the value, per §4.3's encoding rule: walk
// the original_size magnitude bytes from high to low, find the index of the
// highest nonzero byte, and pick the smallest width that strictly exceeds
// that index.
func (i Integer) storedSize() Size {
	highest := -1
	for idx := i.originalSize.Bytes() - 1; idx >= 0; idx-- {
		if byte(i.magnitude>>(uint(idx)*8)) != 0 {
			highest = idx
			break
		}
	}

	for _, w := range []int{1, 2, 4, 8} {
		if w > highest {
			return sizeForWidth(w)
		}
	}

	return Large
}

func fromUnsigned(v uint64, original Size) Integer {
	return Integer{signedState: Unsigned, originalSize: original, magnitude: v}
}

func fromSigned(v int64, original Size) Integer {
	if v < 0 {
		return Integer{signedState: SignedNegative, originalSize: original, magnitude: uint64(-v)}
	}

	return Integer{signedState: SignedPositive, originalSize: original, magnitude: uint64(v)}
}

func FromUint8(v uint8) Integer   { return fromUnsigned(uint64(v), Small) }
func FromUint16(v uint16) Integer { return fromUnsigned(uint64(v), Smedium) }
func FromUint32(v uint32) Integer { return fromUnsigned(uint64(v), Medium) }
func FromUint64(v uint64) Integer { return fromUnsigned(v, Large) }

func FromInt8(v int8) Integer   { return fromSigned(int64(v), Small) }
func FromInt16(v int16) Integer { return fromSigned(int64(v), Smedium) }
func FromInt32(v int32) Integer { return fromSigned(int64(v), Medium) }
func FromInt64(v int64) Integer { return fromSigned(v, Large) }

// ParseString parses s as a base-10 integer, per §4.3's parsing rule: parse
// the magnitude as u64, mark SignedNegative if s began with '-', and choose
// the smallest OriginalSize width that holds the magnitude (unlike the FromXxx
// constructors, which fix the width to match the source type).
func ParseString(s string) (Integer, error) {
	neg := false
	rest := s
	if len(s) > 0 && s[0] == '-' {
		neg = true
		rest = s[1:]
	}

	mag, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return Integer{}, fmt.Errorf("%w: %s", errs.ErrParseError, s)
	}

	width := 8
	switch {
	case mag <= 0xFF:
		width = 1
	case mag <= 0xFFFF:
		width = 2
	case mag <= 0xFFFFFFFF:
		width = 4
	}
	size := sizeForWidth(width)

	if neg {
		return Integer{signedState: SignedNegative, originalSize: size, magnitude: mag}, nil
	}

	return Integer{signedState: Unsigned, originalSize: size, magnitude: mag}, nil
}

// String renders the Integer in base-10, honoring its sign.
func (i Integer) String() string {
	if i.signedState == SignedNegative {
		return "-" + strconv.FormatUint(i.magnitude, 10)
	}

	return strconv.FormatUint(i.magnitude, 10)
}

// Ser appends the wire encoding of i to dst: one discriminant byte followed
// by storedSize() little-endian magnitude bytes.
func (i Integer) Ser(dst []byte) []byte {
	stored := i.storedSize()
	discriminant := byte(i.signedState)<<6 | byte(i.originalSize)<<3 | byte(stored)
	dst = append(dst, discriminant)

	n := stored.Bytes()
	for idx := 0; idx < n; idx++ {
		dst = append(dst, byte(i.magnitude>>(uint(idx)*8)))
	}

	return dst
}

// Deser reads an Integer from c, the inverse of Ser.
func Deser(c *cursor.Cursor) (Integer, error) {
	discByte, err := c.ReadByte()
	if err != nil {
		return Integer{}, err
	}

	signedState := SignedState(discByte >> 6)
	originalSize := Size(discByte >> 3 & 0b111)
	storedSize := Size(discByte & 0b111)

	if !signedState.valid() {
		return Integer{}, errs.ErrInvalidSignedStateDiscriminant
	}
	if !originalSize.valid() || !storedSize.valid() {
		return Integer{}, errs.ErrInvalidIntegerSizeDiscriminant
	}

	raw, err := c.Read(storedSize.Bytes())
	if err != nil {
		return Integer{}, err
	}

	var magnitude uint64
	for idx, b := range raw {
		magnitude |= uint64(b) << (uint(idx) * 8)
	}

	return Integer{signedState: signedState, originalSize: originalSize, magnitude: magnitude}, nil
}

// Uint64 returns the magnitude as a uint64. It fails with errs.ErrWrongType
// if the Integer is SignedNegative.
func (i Integer) Uint64() (uint64, error) {
	if i.signedState == SignedNegative {
		return 0, errs.ErrWrongType
	}

	return i.magnitude, nil
}

// Int64 returns the signed value as an int64. It fails with errs.ErrWrongType
// if the magnitude does not fit — an Unsigned or SignedPositive Integer above
// math.MaxInt64, or a SignedNegative one below math.MinInt64 — rather than
// silently reinterpreting it through a two's-complement wraparound.
func (i Integer) Int64() (int64, error) {
	if i.signedState == SignedNegative {
		if i.magnitude > uint64(math.MaxInt64)+1 {
			return 0, errs.ErrWrongType
		}

		return -int64(i.magnitude), nil
	}

	if i.magnitude > uint64(math.MaxInt64) {
		return 0, errs.ErrWrongType
	}

	return int64(i.magnitude), nil
}

// TryUint8 succeeds only if OriginalSize is Small and the Integer is not
// SignedNegative, mirroring the strict-width-check conversion in §4.3.
func (i Integer) TryUint8() (uint8, error) {
	if i.originalSize != Small || i.signedState == SignedNegative {
		return 0, errs.ErrWrongType
	}

	return uint8(i.magnitude), nil
}

func (i Integer) TryUint16() (uint16, error) {
	if i.originalSize != Smedium || i.signedState == SignedNegative {
		return 0, errs.ErrWrongType
	}

	return uint16(i.magnitude), nil
}

func (i Integer) TryUint32() (uint32, error) {
	if i.originalSize != Medium || i.signedState == SignedNegative {
		return 0, errs.ErrWrongType
	}

	return uint32(i.magnitude), nil
}

func (i Integer) TryUint64() (uint64, error) {
	if i.originalSize != Large || i.signedState == SignedNegative {
		return 0, errs.ErrWrongType
	}

	return i.magnitude, nil
}

func (i Integer) TryInt8() (int8, error) {
	if i.originalSize != Small {
		return 0, errs.ErrWrongType
	}

	return int8(i.signedMagnitude()), nil
}

func (i Integer) TryInt16() (int16, error) {
	if i.originalSize != Smedium {
		return 0, errs.ErrWrongType
	}

	return int16(i.signedMagnitude()), nil
}

func (i Integer) TryInt32() (int32, error) {
	if i.originalSize != Medium {
		return 0, errs.ErrWrongType
	}

	return int32(i.signedMagnitude()), nil
}

func (i Integer) TryInt64() (int64, error) {
	if i.originalSize != Large {
		return 0, errs.ErrWrongType
	}

	return i.signedMagnitude(), nil
}

func (i Integer) signedMagnitude() int64 {
	if i.signedState == SignedNegative {
		return -int64(i.magnitude)
	}

	return int64(i.magnitude)
}

// Equal compares two Integers by sign, declared width, and value — the same
// notion of equality the wire round-trip law in §8 requires.
func (i Integer) Equal(other Integer) bool {
	return i.signedState == other.signedState &&
		i.originalSize == other.originalSize &&
		i.magnitude == other.magnitude
}

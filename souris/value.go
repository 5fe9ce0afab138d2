package souris

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/BurntNail/sourisdb/compress"
	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind discriminates the variants of Value. Its numeric value is the ValueTy
// tag that occupies the top five bits of every encoded Value's type byte.
type Kind uint8

const (
	KindCharacter Kind = iota
	KindString
	KindBinary
	KindBoolean
	KindInteger
	KindImaginary
	KindTimestamp
	KindJSON
	KindMap
	KindNull
	KindFloat
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindCharacter:
		return "Character"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindImaginary:
		return "Imaginary"
	case KindTimestamp:
		return "Timestamp"
	case KindJSON:
		return "JSON"
	case KindMap:
		return "Map"
	case KindNull:
		return "Null"
	case KindFloat:
		return "Float"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

// Value is the recursive tagged union described in §3.3: every scalar and
// composite kind this format supports lives behind one flat struct rather
// than an interface, so the encoder stays a single non-virtual recursive
// descent (see the "Recursive tagged union" design note).
type Value struct {
	kind Kind

	char     rune
	str      string
	binary   []byte
	boolean  bool
	integer  varint.Integer
	imagReal varint.Integer
	imagImag varint.Integer
	ts       Timestamp
	jsonVal  any
	floatVal float64
	mapVal   map[string]Value
	arrVal   []Value
}

func NewCharacter(r rune) Value { return Value{kind: KindCharacter, char: r} }
func NewString(s string) Value  { return Value{kind: KindString, str: s} }
func NewBinary(b []byte) Value  { return Value{kind: KindBinary, binary: b} }
func NewBool(b bool) Value      { return Value{kind: KindBoolean, boolean: b} }
func NewInteger(i varint.Integer) Value {
	return Value{kind: KindInteger, integer: i}
}
func NewImaginary(re, im varint.Integer) Value {
	return Value{kind: KindImaginary, imagReal: re, imagImag: im}
}
func NewTimestampValue(t Timestamp) Value { return Value{kind: KindTimestamp, ts: t} }
func NewNull() Value                      { return Value{kind: KindNull} }
func NewFloat(f float64) Value            { return Value{kind: KindFloat, floatVal: f} }
func NewMap(m map[string]Value) Value     { return Value{kind: KindMap, mapVal: m} }
func NewArray(a []Value) Value            { return Value{kind: KindArray, arrVal: a} }

// NewJSON marshals v and stores its canonical parsed form, per §4.6's note
// that the JSON variant is "arbitrary JSON document, stored as its canonical
// string form": the round trip through Marshal/Unmarshal normalises field
// order (jsoniter, like encoding/json, sorts map keys) and number formatting.
func NewJSON(v any) (Value, error) {
	b, err := jsonAPI.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", errs.ErrSerdeJSON, err)
	}

	var canon any
	if err := jsonAPI.Unmarshal(b, &canon); err != nil {
		return Value{}, fmt.Errorf("%w: %w", errs.ErrSerdeJSON, err)
	}

	return Value{kind: KindJSON, jsonVal: canon}, nil
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

func (v Value) AsCharacter() (rune, bool) {
	return v.char, v.kind == KindCharacter
}

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsBinary() ([]byte, bool) {
	return v.binary, v.kind == KindBinary
}

func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

func (v Value) AsInteger() (varint.Integer, bool) {
	return v.integer, v.kind == KindInteger
}

func (v Value) AsImaginary() (varint.Integer, varint.Integer, bool) {
	return v.imagReal, v.imagImag, v.kind == KindImaginary
}

func (v Value) AsTimestamp() (Timestamp, bool) {
	return v.ts, v.kind == KindTimestamp
}

func (v Value) AsJSON() (any, bool) {
	return v.jsonVal, v.kind == KindJSON
}

func (v Value) AsFloat() (float64, bool) {
	return v.floatVal, v.kind == KindFloat
}

func (v Value) AsMap() (map[string]Value, bool) {
	return v.mapVal, v.kind == KindMap
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arrVal, v.kind == KindArray
}

func (v Value) IsNull() bool { return v.kind == KindNull }

// composeTypeByte packs a ValueTy tag and up to three niche bits into the
// single leading byte every encoded Value starts with, per the "bit-packed
// headers" design note's single-helper rule.
func composeTypeByte(kind Kind, niche byte) byte {
	return byte(kind)<<3 | niche&0b111
}

func signBit(s varint.SignedState) byte {
	if s == varint.SignedNegative {
		return 1
	}

	return 0
}

// Ser appends the wire encoding of v to dst, recursing into Map/Array
// elements. Encoding a Value tree built through the constructors above never
// fails, so unlike Deser, Ser reports no error.
func (v Value) Ser(dst []byte) []byte {
	switch v.kind {
	case KindCharacter:
		dst = append(dst, composeTypeByte(KindCharacter, 0))
		return varint.FromUint32(uint32(v.char)).Ser(dst)

	case KindString:
		dst = append(dst, composeTypeByte(KindString, 0))
		return serLengthPrefixed(dst, []byte(v.str))

	case KindBinary:
		dst = append(dst, composeTypeByte(KindBinary, 0))
		// §3.3: Binary is "compressed on the wire" — EncodeBinaryData picks
		// whichever of {Raw, RLE, LZ} is shortest for this particular payload.
		// Only the LZ4 library itself can fail here (never for in-memory
		// byte slices), so a failure just falls back to the Raw candidate.
		compressed, err := compress.EncodeBinaryData(v.binary)
		if err != nil {
			compressed = compress.EncodeRaw(v.binary)
		}
		return serLengthPrefixed(dst, compressed)

	case KindBoolean:
		var niche byte
		if v.boolean {
			niche = 0b100
		}
		return append(dst, composeTypeByte(KindBoolean, niche))

	case KindInteger:
		niche := byte(v.integer.SignedState())
		dst = append(dst, composeTypeByte(KindInteger, niche))
		return v.integer.Ser(dst)

	case KindImaginary:
		niche := signBit(v.imagReal.SignedState()) | signBit(v.imagImag.SignedState())<<1
		dst = append(dst, composeTypeByte(KindImaginary, niche))
		dst = v.imagReal.Ser(dst)
		return v.imagImag.Ser(dst)

	case KindTimestamp:
		niche := v.ts.yearSignedState()
		dst = append(dst, composeTypeByte(KindTimestamp, niche))
		return v.ts.ser(dst)

	case KindJSON:
		dst = append(dst, composeTypeByte(KindJSON, 0))
		b, _ := jsonAPI.Marshal(v.jsonVal)
		return serLengthPrefixed(dst, b)

	case KindNull:
		return append(dst, composeTypeByte(KindNull, 0))

	case KindFloat:
		dst = append(dst, composeTypeByte(KindFloat, 0))
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.floatVal))
		return append(dst, buf[:]...)

	case KindMap:
		dst = serLength(dst, KindMap, len(v.mapVal))
		for k, sub := range v.mapVal {
			dst = NewString(k).Ser(dst)
			dst = sub.Ser(dst)
		}
		return dst

	case KindArray:
		dst = serLength(dst, KindArray, len(v.arrVal))
		for _, elem := range v.arrVal {
			dst = elem.Ser(dst)
		}
		return dst

	default:
		return dst
	}
}

func serLengthPrefixed(dst []byte, data []byte) []byte {
	dst = varint.FromUint64(uint64(len(data))).Ser(dst)
	return append(dst, data...)
}

// serLength writes Map/Array's type byte per §4.5: a length under 3 is
// packed straight into the niche bits (bit 0 clear), otherwise bit 0 is set
// and an Integer length follows.
func serLength(dst []byte, kind Kind, n int) []byte {
	if n < 3 {
		return append(dst, composeTypeByte(kind, byte(n)<<1))
	}

	dst = append(dst, composeTypeByte(kind, 0b001))
	return varint.FromUint64(uint64(n)).Ser(dst)
}

// Deser reads one Value (recursively, for Map/Array) from c.
func Deser(c *cursor.Cursor) (Value, error) {
	typeByte, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}

	tag := typeByte >> 3
	niche := typeByte & 0b111

	if tag > byte(KindArray) {
		return Value{}, fmt.Errorf("%w: %#b", errs.ErrInvalidType, tag)
	}
	kind := Kind(tag)

	switch kind {
	case KindCharacter:
		codepointInt, err := varint.Deser(c)
		if err != nil {
			return Value{}, err
		}
		codepoint, err := codepointInt.Uint64()
		if err != nil {
			return Value{}, err
		}
		r := rune(codepoint)
		if codepoint > utf8.MaxRune || !utf8.ValidRune(r) {
			return Value{}, errs.ErrInvalidCharacter
		}
		return NewCharacter(r), nil

	case KindString:
		s, err := deserLengthPrefixedString(c)
		if err != nil {
			return Value{}, err
		}
		return NewString(s), nil

	case KindBinary:
		compressed, err := deserLengthPrefixedBytes(c)
		if err != nil {
			return Value{}, err
		}
		b, err := compress.DecodeBinaryData(compressed)
		if err != nil {
			return Value{}, err
		}
		return NewBinary(b), nil

	case KindBoolean:
		return NewBool(niche&0b100 != 0), nil

	case KindInteger:
		i, err := varint.Deser(c)
		if err != nil {
			return Value{}, err
		}
		return NewInteger(i), nil

	case KindImaginary:
		re, err := varint.Deser(c)
		if err != nil {
			return Value{}, err
		}
		im, err := varint.Deser(c)
		if err != nil {
			return Value{}, err
		}
		return NewImaginary(re, im), nil

	case KindTimestamp:
		ts, err := deserTimestamp(c)
		if err != nil {
			return Value{}, err
		}
		return NewTimestampValue(ts), nil

	case KindJSON:
		b, err := deserLengthPrefixedBytes(c)
		if err != nil {
			return Value{}, err
		}
		var parsed any
		if err := jsonAPI.Unmarshal(b, &parsed); err != nil {
			return Value{}, fmt.Errorf("%w: %w", errs.ErrSerdeJSON, err)
		}
		return Value{kind: KindJSON, jsonVal: parsed}, nil

	case KindNull:
		return NewNull(), nil

	case KindFloat:
		raw, err := c.Read(8)
		if err != nil {
			return Value{}, err
		}
		bits := binary.LittleEndian.Uint64(raw)
		return NewFloat(math.Float64frombits(bits)), nil

	case KindMap:
		n, err := deserLength(c, niche)
		if err != nil {
			return Value{}, err
		}
		m := make(map[string]Value, n)
		for i := 0; i < n; i++ {
			key, err := Deser(c)
			if err != nil {
				return Value{}, err
			}
			keyStr, ok := key.AsString()
			if !ok {
				return Value{}, errs.ErrNotAStringKeyFound
			}
			val, err := Deser(c)
			if err != nil {
				return Value{}, err
			}
			m[keyStr] = val
		}
		return NewMap(m), nil

	case KindArray:
		n, err := deserLength(c, niche)
		if err != nil {
			return Value{}, err
		}
		a := make([]Value, n)
		for i := 0; i < n; i++ {
			elem, err := Deser(c)
			if err != nil {
				return Value{}, err
			}
			a[i] = elem
		}
		return NewArray(a), nil

	default:
		return Value{}, fmt.Errorf("%w: %#b", errs.ErrInvalidType, tag)
	}
}

func deserLengthPrefixedBytes(c *cursor.Cursor) ([]byte, error) {
	lenInt, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	n, err := lenInt.Uint64()
	if err != nil {
		return nil, err
	}
	raw, err := c.Read(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func deserLengthPrefixedString(c *cursor.Cursor) (string, error) {
	raw, err := deserLengthPrefixedBytes(c)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errs.ErrNonUTF8String
	}
	return string(raw), nil
}

func deserLength(c *cursor.Cursor, niche byte) (int, error) {
	if niche&0b001 != 0 {
		lenInt, err := varint.Deser(c)
		if err != nil {
			return 0, err
		}
		n, err := lenInt.Uint64()
		if err != nil {
			return 0, err
		}
		return int(n), nil
	}

	return int((niche >> 1) & 0b11), nil
}

// Equal compares two Values by the rules §3.3/§8 require: Float is bitwise
// (so two identical NaN payloads compare equal), Map ignores iteration
// order, everything else is structural equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindCharacter:
		return v.char == other.char
	case KindString:
		return v.str == other.str
	case KindBinary:
		return bytes.Equal(v.binary, other.binary)
	case KindBoolean:
		return v.boolean == other.boolean
	case KindInteger:
		return v.integer.Equal(other.integer)
	case KindImaginary:
		return v.imagReal.Equal(other.imagReal) && v.imagImag.Equal(other.imagImag)
	case KindTimestamp:
		return v.ts.Equal(other.ts)
	case KindJSON:
		return reflect.DeepEqual(v.jsonVal, other.jsonVal)
	case KindNull:
		return true
	case KindFloat:
		return math.Float64bits(v.floatVal) == math.Float64bits(other.floatVal)
	case KindMap:
		if len(v.mapVal) != len(other.mapVal) {
			return false
		}
		for k, sub := range v.mapVal {
			o, ok := other.mapVal[k]
			if !ok || !sub.Equal(o) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.arrVal) != len(other.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(other.arrVal[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash mixes v's discriminant and payload with xxHash64, the way the
// original implementation's Hash impl mixes core::mem::discriminant with
// each variant's bytes. Map hashes each key/value pair independently and
// XORs the results together so that iteration order never affects the
// output; Float mixes its FP classification with its raw bytes so that
// distinct NaN payloads can still collide only when bit-identical.
func (v Value) Hash() uint64 {
	h := xxhash.New()
	v.writeHash(h)
	return h.Sum64()
}

func (v Value) writeHash(h *xxhash.Digest) {
	_, _ = h.Write([]byte{byte(v.kind)})

	switch v.kind {
	case KindCharacter:
		var buf [4]byte
		n := utf8.EncodeRune(buf[:], v.char)
		_, _ = h.Write(buf[:n])
	case KindString:
		_, _ = h.Write([]byte(v.str))
	case KindBinary:
		_, _ = h.Write(v.binary)
	case KindBoolean:
		if v.boolean {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	case KindInteger:
		_, _ = h.Write(v.integer.Ser(nil))
	case KindImaginary:
		_, _ = h.Write(v.imagReal.Ser(nil))
		_, _ = h.Write(v.imagImag.Ser(nil))
	case KindTimestamp:
		_, _ = h.Write(v.ts.ser(nil))
	case KindJSON:
		b, _ := jsonAPI.Marshal(v.jsonVal)
		_, _ = h.Write(b)
	case KindNull:
		// no payload to mix in
	case KindFloat:
		_, _ = h.Write([]byte{floatCategory(v.floatVal)})
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.floatVal))
		_, _ = h.Write(buf[:])
	case KindMap:
		var acc uint64
		for k, sub := range v.mapVal {
			eh := xxhash.New()
			_, _ = eh.Write([]byte(k))
			sub.writeHash(eh)
			acc ^= eh.Sum64()
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], acc)
		_, _ = h.Write(buf[:])
	case KindArray:
		for _, elem := range v.arrVal {
			elem.writeHash(h)
		}
	}
}

// floatCategory mirrors core::num::FpCategory: NaN, Infinite, Zero,
// Subnormal, Normal, in that numeric order.
func floatCategory(f float64) byte {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 0):
		return 1
	case f == 0:
		return 2
	}

	bits := math.Float64bits(f)
	if (bits>>52)&0x7FF == 0 {
		return 3 // subnormal
	}

	return 4
}

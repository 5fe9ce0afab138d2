package store

import (
	"fmt"
	"sort"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/varint"
)

const (
	headerMagic = "DADDYSTORE"
	// Version is the on-disk format version this package reads and writes.
	Version     = "V0_1_0"
	sizeLiteral = "SIZE"
)

// Store is a named, ordered set of String-keyed Values: Version plus a root
// that is always effectively a Map, per §3.4's "pair (Version, root Value)"
// with "only String keys supported by the top-level Store".
type Store struct {
	pairs map[string]souris.Value
}

// New returns an empty Store.
func New() *Store {
	return &Store{pairs: make(map[string]souris.Value)}
}

// FromPairs wraps an existing map as a Store. A nil map is treated as empty.
func FromPairs(pairs map[string]souris.Value) *Store {
	if pairs == nil {
		pairs = make(map[string]souris.Value)
	}

	return &Store{pairs: pairs}
}

// Get looks up key.
func (s *Store) Get(key string) (souris.Value, bool) {
	v, ok := s.pairs[key]
	return v, ok
}

// Set inserts or overwrites key.
func (s *Store) Set(key string, v souris.Value) {
	s.pairs[key] = v
}

// Delete removes key, reporting whether it was present.
func (s *Store) Delete(key string) bool {
	_, ok := s.pairs[key]
	delete(s.pairs, key)
	return ok
}

// Len reports the number of pairs held.
func (s *Store) Len() int { return len(s.pairs) }

// Pairs exposes the underlying map directly; callers that need to iterate
// without mutating should treat it as read-only.
func (s *Store) Pairs() map[string]souris.Value { return s.pairs }

// Merge copies every pair of other into s, overwriting existing keys.
func (s *Store) Merge(other *Store) {
	for k, v := range other.pairs {
		s.pairs[k] = v
	}
}

func (s *Store) sortedKeys() []string {
	keys := make([]string, 0, len(s.pairs))
	for k := range s.pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Ser appends the wire encoding described in §4.6: the fixed "DADDYSTORE"
// header, then the pair count, then a keys section (each preceded by its own
// and its partner value's byte length) followed by a values section in the
// same order. Keys are written in sorted order so that two Stores holding the
// same pairs always serialise identically.
func (s *Store) Ser(dst []byte) []byte {
	dst = append(dst, headerMagic...)
	dst = append(dst, 0)
	dst = append(dst, Version...)
	dst = append(dst, 0)
	dst = append(dst, sizeLiteral...)
	dst = append(dst, 0)
	dst = varint.FromUint64(uint64(len(s.pairs))).Ser(dst)
	dst = append(dst, 0)

	keys := s.sortedKeys()
	keyEnc := make([][]byte, len(keys))
	valEnc := make([][]byte, len(keys))
	for i, k := range keys {
		keyEnc[i] = souris.NewString(k).Ser(nil)
		valEnc[i] = s.pairs[k].Ser(nil)
	}

	for i := range keys {
		dst = varint.FromUint64(uint64(len(keyEnc[i]))).Ser(dst)
		dst = varint.FromUint64(uint64(len(valEnc[i]))).Ser(dst)
		dst = append(dst, keyEnc[i]...)
	}
	for i := range keys {
		dst = append(dst, valEnc[i]...)
	}

	return dst
}

func expectLiteral(c *cursor.Cursor, literal string) error {
	got, err := c.Read(len(literal))
	if err != nil {
		return err
	}
	if string(got) != literal {
		return errs.ErrCorruptStoreHeader
	}

	b, err := c.ReadByte()
	if err != nil {
		return err
	}
	if b != 0 {
		return errs.ErrCorruptStoreHeader
	}

	return nil
}

// Deser reverses Ser, reading one Store off c.
func Deser(c *cursor.Cursor) (*Store, error) {
	if err := expectLiteral(c, headerMagic); err != nil {
		return nil, fmt.Errorf("store magic: %w", err)
	}

	version, err := c.Read(len(Version))
	if err != nil {
		return nil, err
	}
	if string(version) != Version {
		return nil, errs.ErrUnsupportedVersion
	}
	if b, err := c.ReadByte(); err != nil {
		return nil, err
	} else if b != 0 {
		return nil, errs.ErrCorruptStoreHeader
	}

	if err := expectLiteral(c, sizeLiteral); err != nil {
		return nil, fmt.Errorf("store size literal: %w", err)
	}

	countInt, err := varint.Deser(c)
	if err != nil {
		return nil, err
	}
	count, err := countInt.Uint64()
	if err != nil {
		return nil, err
	}
	if b, err := c.ReadByte(); err != nil {
		return nil, err
	} else if b != 0 {
		return nil, errs.ErrCorruptStoreHeader
	}

	type pending struct {
		key    string
		valLen int
	}
	metas := make([]pending, count)

	for i := range metas {
		keyLenInt, err := varint.Deser(c)
		if err != nil {
			return nil, err
		}
		keyLen, err := keyLenInt.Uint64()
		if err != nil {
			return nil, err
		}

		valLenInt, err := varint.Deser(c)
		if err != nil {
			return nil, err
		}
		valLen, err := valLenInt.Uint64()
		if err != nil {
			return nil, err
		}

		keyBytes, err := c.Read(int(keyLen))
		if err != nil {
			return nil, err
		}
		keyCursor := cursor.New(keyBytes)
		keyVal, err := souris.Deser(keyCursor)
		if err != nil {
			return nil, fmt.Errorf("store key %d: %w", i, err)
		}
		if !keyCursor.IsFinished() {
			return nil, fmt.Errorf("store key %d: %w", i, errs.ErrCorruptStorePair)
		}
		keyStr, ok := keyVal.AsString()
		if !ok {
			return nil, fmt.Errorf("store key %d: %w", i, errs.ErrNotAStringKeyFound)
		}

		metas[i] = pending{key: keyStr, valLen: int(valLen)}
	}

	pairs := make(map[string]souris.Value, count)
	for i, m := range metas {
		valBytes, err := c.Read(m.valLen)
		if err != nil {
			return nil, err
		}
		valCursor := cursor.New(valBytes)
		val, err := souris.Deser(valCursor)
		if err != nil {
			return nil, fmt.Errorf("store value %d (%q): %w", i, m.key, err)
		}
		if !valCursor.IsFinished() {
			return nil, fmt.Errorf("store value %d (%q): %w", i, m.key, errs.ErrCorruptStorePair)
		}

		pairs[m.key] = val
	}

	return &Store{pairs: pairs}, nil
}

package db

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/internal/obs"
	"github.com/BurntNail/sourisdb/internal/pool"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/store"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	cacheCapacity  = 200
	reservedDBName = "meta"
)

// serBufPool holds scratch buffers for GetDB's Store.Ser pass. A plain
// sync.Pool of *bytes.Buffer is enough: the buffer is only ever appended to
// and read back once via Bytes(), so there's no need for a dedicated buffer
// type beyond what bytes.Buffer already gives for free.
var serBufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Manager owns every named Store the daemon serves. Registry access is
// serialised by mu; the response cache has its own internal locking and is
// always invalidated before mu is taken on a write path, so a reader that
// misses the cache and then reads the registry never observes stale bytes
// for a store concurrently being replaced.
type Manager struct {
	baseLocation string

	mu  sync.Mutex
	dbs map[string]*store.Store

	cache *lru.Cache[string, []byte]
	log   *obs.Logger
}

// New builds an empty Manager rooted at baseLocation. Use Load to populate it
// from disk. A nil logger is replaced with a no-op one.
func New(baseLocation string, log *obs.Logger) (*Manager, error) {
	cache, err := lru.New[string, []byte](cacheCapacity)
	if err != nil {
		return nil, fmt.Errorf("building response cache: %w", err)
	}

	if log == nil {
		log = obs.NewNop()
	}

	return &Manager{
		baseLocation: baseLocation,
		dbs:          make(map[string]*store.Store),
		cache:        cache,
		log:          log.Named("db"),
	}, nil
}

func validateName(name string) error {
	if name == reservedDBName || !isASCII(name) {
		return errs.ErrInvalidDatabaseName
	}

	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}

	return true
}

// Created reports whether NewDB/NewDBWithContents made a fresh entry (true)
// or overwrote/merged into an existing one (false) — the source of the
// 201-vs-200 split in §6.2's route table.
type Created bool

// NewDB creates an empty database, honouring overwriteExisting the way the
// original state machine does: a name collision with overwrite disabled is a
// no-op success rather than an error.
func (m *Manager) NewDB(name string, overwriteExisting bool) (Created, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	m.cache.Remove(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.dbs[name]
	if exists && !overwriteExisting {
		return false, nil
	}

	m.dbs[name] = store.New()

	return !exists, nil
}

// NewDBWithContents creates or replaces a database with contents. When
// overwriteExisting is false the contents are merged key-wise into any
// existing store instead of replacing it outright.
func (m *Manager) NewDBWithContents(name string, overwriteExisting bool, contents *store.Store) (Created, error) {
	if err := validateName(name); err != nil {
		return false, err
	}

	m.cache.Remove(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.dbs[name]
	if !ok {
		m.dbs[name] = contents
		return true, nil
	}

	if overwriteExisting {
		m.dbs[name] = contents
	} else {
		existing.Merge(contents)
	}

	return false, nil
}

// ClearDB replaces name's contents with an empty Store.
func (m *Manager) ClearDB(name string) error {
	m.cache.Remove(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dbs[name]; !ok {
		return errs.ErrDatabaseNotFound
	}

	m.dbs[name] = store.New()
	return nil
}

// RemoveDB deletes name from the registry and, if present, its on-disk file.
func (m *Manager) RemoveDB(name string) error {
	m.cache.Remove(name)

	m.mu.Lock()
	if _, ok := m.dbs[name]; !ok {
		m.mu.Unlock()
		return errs.ErrDatabaseNotFound
	}
	delete(m.dbs, name)
	m.mu.Unlock()

	if err := removeDBFile(m.baseLocation, name); err != nil {
		return fmt.Errorf("removing %q's file: %w", name, err)
	}

	return nil
}

// GetDB serialises name's Store, serving the cached bytes when available.
func (m *Manager) GetDB(name string) ([]byte, error) {
	if b, ok := m.cache.Get(name); ok {
		return b, nil
	}

	m.mu.Lock()
	s, ok := m.dbs[name]
	if !ok {
		m.mu.Unlock()
		return nil, errs.ErrDatabaseNotFound
	}

	buf, _ := serBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Write(s.Ser(buf.AvailableBuffer()))
	b := append([]byte(nil), buf.Bytes()...)
	serBufPool.Put(buf)
	m.mu.Unlock()

	m.cache.Add(name, b)

	return b, nil
}

// AddKV upserts a key/value pair, creating the database if it did not exist.
func (m *Manager) AddKV(dbName, key string, v souris.Value) (Created, error) {
	if err := validateName(dbName); err != nil {
		return false, err
	}

	m.cache.Remove(dbName)

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.dbs[dbName]
	if !ok {
		s = store.New()
		m.dbs[dbName] = s
	}

	_, hadKey := s.Get(key)
	s.Set(key, v)

	return !hadKey, nil
}

// RemoveKey deletes key from dbName.
func (m *Manager) RemoveKey(dbName, key string) error {
	m.cache.Remove(dbName)

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.dbs[dbName]
	if !ok {
		return errs.ErrDatabaseNotFound
	}

	if !s.Delete(key) {
		return errs.ErrKeyNotFound
	}

	return nil
}

// GetValue looks up key in dbName.
func (m *Manager) GetValue(dbName, key string) (souris.Value, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.dbs[dbName]
	if !ok {
		return souris.Value{}, errs.ErrDatabaseNotFound
	}

	v, ok := s.Get(key)
	if !ok {
		return souris.Value{}, errs.ErrKeyNotFound
	}

	return v, nil
}

// GetAllDBNames lists every registered database name.
func (m *Manager) GetAllDBNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	scratch, cleanup := pool.GetStringSlice(len(m.dbs))
	defer cleanup()

	i := 0
	for name := range m.dbs {
		scratch[i] = name
		i++
	}

	names := make([]string, len(scratch))
	copy(names, scratch)

	return names
}

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/store"
	"github.com/gofrs/flock"
)

const (
	metaFileName     = "meta.sdb"
	existingDBsKey   = "existing_dbs"
	baseLocationEnv  = "BASE_LOCATION"
	userDataDirChild = "souris"
)

// ResolveBaseLocation implements the startup precedence: $BASE_LOCATION env
// var first, then (only when running as root) /etc/souris/, else the OS user
// data directory joined with "souris/".
func ResolveBaseLocation() (string, error) {
	if loc, ok := os.LookupEnv(baseLocationEnv); ok {
		if err := os.MkdirAll(loc, 0o755); err != nil {
			return "", fmt.Errorf("creating custom base location: %w", err)
		}
		return loc, nil
	}

	if runningAsRoot() {
		return "/etc/souris/", nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user data directory: %w", err)
	}
	// os.UserConfigDir is the data directory on Windows and macOS; on Linux
	// the data directory is $XDG_DATA_HOME, defaulting to ~/.local/share.
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dir = xdg
		} else if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(dir, userDataDirChild), nil
}

func runningAsRoot() bool {
	if runtime.GOOS == "windows" {
		return false
	}

	return os.Geteuid() == 0
}

func dbFilePath(baseLocation, name string) string {
	return filepath.Join(baseLocation, name+".sdb")
}

func removeDBFile(baseLocation, name string) error {
	err := os.Remove(dbFilePath(baseLocation, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// Load populates m from meta.sdb and each listed database file under
// baseLocation. A missing meta.sdb, or a missing/corrupt per-database file,
// is treated as an empty registry/store rather than an error — this mirrors
// the daemon's "best effort, never abort on one bad file" startup policy.
func (m *Manager) Load() error {
	metaPath := filepath.Join(m.baseLocation, metaFileName)

	meta, err := readStoreFile(metaPath)
	if err != nil {
		m.log.Debugw("no usable meta file, starting with an empty registry", "path", metaPath, "error", err)
		return nil
	}

	namesVal, ok := meta.Get(existingDBsKey)
	if !ok {
		return nil
	}
	names, ok := namesVal.AsArray()
	if !ok {
		m.log.Warnw("existing_dbs in meta.sdb was not an array, ignoring", "path", metaPath)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range names {
		name, ok := n.AsString()
		if !ok {
			m.log.Warnw("non-string entry in existing_dbs, skipping")
			continue
		}

		s, err := readStoreFile(dbFilePath(m.baseLocation, name))
		if err != nil {
			m.log.Debugw("failed to load database, starting empty", "name", name, "error", err)
			s = store.New()
		}

		m.dbs[name] = s
	}

	return nil
}

func readStoreFile(path string) (*store.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return store.Deser(cursor.New(data))
}

// Save writes every in-memory Store to disk as "<name>.sdb" and rewrites
// meta.sdb to list only the names that were written successfully — a
// per-database write failure is logged and excluded from meta rather than
// aborting the whole save.
func (m *Manager) Save() error {
	if err := os.MkdirAll(m.baseLocation, 0o755); err != nil {
		return fmt.Errorf("creating base location: %w", err)
	}

	lock := flock.New(filepath.Join(m.baseLocation, ".sourisdb.lock"))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquiring save lock: %w", err)
	}
	defer lock.Unlock()

	m.mu.Lock()
	snapshot := make(map[string]*store.Store, len(m.dbs))
	for name, s := range m.dbs {
		snapshot[name] = s
	}
	m.mu.Unlock()

	written := make([]souris.Value, 0, len(snapshot))
	for name, s := range snapshot {
		if err := os.WriteFile(dbFilePath(m.baseLocation, name), s.Ser(nil), 0o644); err != nil {
			m.log.Errorw("failed to write database file", "name", name, "error", err)
			continue
		}
		written = append(written, souris.NewString(name))
	}

	meta := store.New()
	meta.Set(existingDBsKey, souris.NewArray(written))

	metaPath := filepath.Join(m.baseLocation, metaFileName)
	if err := os.WriteFile(metaPath, meta.Ser(nil), 0o644); err != nil {
		return fmt.Errorf("writing meta file: %w", err)
	}

	return nil
}

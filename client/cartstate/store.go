package cartstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SnapshotKey is the key the cart is persisted under.
const SnapshotKey = "cart"

// ErrCorruptSnapshot is returned when persisted state cannot be decoded.
var ErrCorruptSnapshot = errors.New("cart snapshot is corrupt")

// Store persists the cart between runs.
type Store interface {
	// Load returns the stored cart; ok is false when nothing is stored.
	Load() (cart Cart, ok bool, err error)
	Save(cart Cart) error
}

// FileStore keeps a JSON document {"cart": ...} at Path.
type FileStore struct {
	Path string
}

// Load reads the snapshot file.
func (s FileStore) Load() (Cart, bool, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Cart{}, false, nil
	}
	if err != nil {
		return Cart{}, false, fmt.Errorf("failed to read snapshot %s: %w", s.Path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Cart{}, false, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	entry, ok := doc[SnapshotKey]
	if !ok || string(entry) == "null" {
		return Cart{}, false, nil
	}
	var cart Cart
	if err := json.Unmarshal(entry, &cart); err != nil {
		return Cart{}, false, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return cart, true, nil
}

// Save writes the snapshot through a temp file and rename.
func (s FileStore) Save(cart Cart) error {
	raw, err := json.Marshal(map[string]Cart{SnapshotKey: cart})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cart-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// MemoryStore keeps the snapshot in process.
type MemoryStore struct {
	mu    sync.Mutex
	raw   []byte
	saved bool
}

func (s *MemoryStore) Load() (Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return Cart{}, false, nil
	}
	var cart Cart
	if err := json.Unmarshal(s.raw, &cart); err != nil {
		return Cart{}, false, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return cart, true, nil
}

func (s *MemoryStore) Save(cart Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	s.mu.Lock()
	s.raw, s.saved = raw, true
	s.mu.Unlock()
	return nil
}

// =============================================================================
// Bill Generator - Invoice Numberer
// =============================================================================
//
// The Numberer owns the invoice counter. It is created once at startup with
// an injected CounterStore and passed explicitly to whoever needs it; there
// is no package-level counter.
//
// RULES:
//   - Current() formats the counter as "<PREFIX>-NNNN" (at least 4 digits).
//   - Advance() persists counter+1 before updating memory, so a failed save
//     leaves both the file and the in-memory counter unchanged.
//   - A missing or unreadable counter starts at 1 (fail-open).
//   - Saving a bill never advances the counter; only a form reset does.
//
// =============================================================================

package invoice

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godopgaming/bill-genertor/internal/logging"
	"github.com/godopgaming/bill-genertor/internal/types"
	"github.com/godopgaming/bill-genertor/pkg/utils"
)

// =============================================================================
// COUNTER STORE
// =============================================================================

// ErrNoCounter is returned by CounterStore.Load when nothing has been saved.
var ErrNoCounter = errors.New("no invoice counter saved")

// CounterStore persists the invoice counter.
type CounterStore interface {
	// Load returns the saved counter, ErrNoCounter if there is none, or
	// another error if it cannot be read.
	Load() (int, error)

	// Save durably stores the counter.
	Save(counter int) error
}

// counterRecord is the on-disk shape: {"counter": 7}.
type counterRecord struct {
	Counter int `json:"counter"`
}

// FileCounterStore keeps the counter in a small JSON file.
type FileCounterStore struct {
	path string
}

// NewFileCounterStore returns a store backed by path.
func NewFileCounterStore(path string) *FileCounterStore {
	return &FileCounterStore{path: path}
}

// Path returns the backing file path.
func (s *FileCounterStore) Path() string { return s.path }

// Load reads the counter file.
func (s *FileCounterStore) Load() (int, error) {
	data, ok, err := utils.ReadFileIfExists(s.path)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNoCounter
	}

	var rec counterRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, &types.CorruptStoreError{Store: types.StoreCounter, Path: s.path, Err: err}
	}
	return rec.Counter, nil
}

// Save atomically rewrites the counter file.
func (s *FileCounterStore) Save(counter int) error {
	data, err := json.Marshal(counterRecord{Counter: counter})
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(s.path, data, 0644); err != nil {
		return &types.StorageWriteError{Store: types.StoreCounter, Path: s.path, Err: err}
	}
	return nil
}

// =============================================================================
// NUMBERER
// =============================================================================

// Numberer issues invoice numbers from a persisted counter.
type Numberer struct {
	store   CounterStore
	prefix  string
	counter int
	logger  logging.Logger
}

// NewNumberer loads the counter from store. Any load failure, and any value
// below 1, starts the counter at 1 and is logged rather than returned.
func NewNumberer(store CounterStore, prefix string, logger logging.Logger) *Numberer {
	n := &Numberer{store: store, prefix: prefix, counter: 1, logger: logger}

	counter, err := store.Load()
	switch {
	case errors.Is(err, ErrNoCounter):
		logger.Info("no invoice counter found, starting at 1")
	case err != nil:
		logger.Warn("invoice counter unreadable, starting at 1", "error", err)
	case counter < 1:
		logger.Warn("invoice counter out of range, starting at 1", "counter", counter)
	default:
		n.counter = counter
	}

	return n
}

// Current returns the number shown on the open form, e.g. "SS-0007".
func (n *Numberer) Current() string {
	return Format(n.prefix, n.counter)
}

// Advance persists counter+1 and returns the new invoice number. If the save
// fails the counter is not changed.
func (n *Numberer) Advance() (string, error) {
	next := n.counter + 1
	if err := n.store.Save(next); err != nil {
		return "", fmt.Errorf("failed to advance invoice counter: %w", err)
	}
	n.counter = next

	n.logger.Debug("invoice counter advanced", "counter", next)
	return n.Current(), nil
}

// Format renders prefix and counter as "<PREFIX>-NNNN".
func Format(prefix string, counter int) string {
	return fmt.Sprintf("%s-%04d", prefix, counter)
}

// compile-time check
var _ CounterStore = (*FileCounterStore)(nil)

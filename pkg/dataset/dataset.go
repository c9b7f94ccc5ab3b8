// Package dataset persists labeled annotations as a JSON file mapping
// image filenames to ordered person label lists. Only images with at
// least one person carrying at least one label are ever written; the
// session controller enforces that invariant at flush time.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/golflab/poselabel/pkg/label"
)

// ErrKeyNotFound is returned when removing an image key that is absent.
var ErrKeyNotFound = errors.New("image key not found")

// PersistenceError wraps a file I/O failure during Load or Save. The
// surrounding application decides whether to retry or abort; the
// dataset itself never retries.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("dataset %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Dataset maps image filenames to their persisted PersonSets.
type Dataset struct {
	entries map[string]*label.PersonSet
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{entries: make(map[string]*label.PersonSet)}
}

// Len returns the number of labeled images.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Contains reports whether key has a persisted entry.
func (d *Dataset) Contains(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Put stores persons under key, overwriting any existing entry.
func (d *Dataset) Put(key string, persons *label.PersonSet) {
	d.entries[key] = persons
}

// Get returns the PersonSet for key. Absence is a normal outcome (an
// image never labeled), reported through ok rather than an error.
func (d *Dataset) Get(key string) (*label.PersonSet, bool) {
	ps, ok := d.entries[key]
	return ps, ok
}

// Remove deletes the entry for key. Returns ErrKeyNotFound if absent;
// callers removing speculatively should ignore that case.
func (d *Dataset) Remove(key string) error {
	if _, ok := d.entries[key]; !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	delete(d.entries, key)
	return nil
}

// Keys returns the labeled image filenames in sorted order.
func (d *Dataset) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the dataset as {filename: [person, ...], ...}.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.entries)
}

// UnmarshalJSON decodes the persisted object form.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var entries map[string]*label.PersonSet
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode dataset: %w", err)
	}
	if entries == nil {
		entries = make(map[string]*label.PersonSet)
	}
	d.entries = entries
	return nil
}

// Save writes the dataset to path as JSON. The write goes through a
// temporary file renamed into place, so a failed save never leaves a
// truncated dataset on disk.
func (d *Dataset) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Load reads a dataset from path. A missing file yields an empty
// dataset so a first run bootstraps cleanly.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}

	d := New()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	return d, nil
}

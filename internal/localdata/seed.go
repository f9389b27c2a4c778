package localdata

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// SeedFile is the bundled JSON file served by /internal and /internal-async.
const SeedFile = "data.json"

var (
	ErrRead  = errors.New("read failed")
	ErrParse = errors.New("invalid JSON on disk")
)

// Error ties a failure class (ErrRead or ErrParse) to its cause.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string   { return e.Kind.Error() + ": " + e.Err.Error() }
func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

func readJSON(path string) (interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrRead, Err: err}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &Error{Kind: ErrParse, Err: err}
	}
	return v, nil
}

// Seed reads one JSON file either fresh on every call or memoized for the
// lifetime of the value.
type Seed struct {
	path string

	mu     sync.Mutex
	loaded bool
	value  interface{}
}

func NewSeed(path string) *Seed {
	return &Seed{path: path}
}

// Path is the file the seed reads.
func (s *Seed) Path() string { return s.path }

// Cached returns the parsed file, loading it on the first successful call.
// Later edits to the file are not observed. Failed loads are not memoized.
func (s *Seed) Cached() (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.value, nil
	}
	v, err := readJSON(s.path)
	if err != nil {
		return nil, err
	}
	s.value, s.loaded = v, true
	return v, nil
}

// Fresh reads and parses the file on every call.
func (s *Seed) Fresh() (interface{}, error) {
	return readJSON(s.path)
}

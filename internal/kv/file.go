package kv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// File keeps every key in a single JSON object on disk. Each Set rewrites
// the whole file.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a store backed by the JSON file at path. The parent
// directory is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path
func (f *File) Path() string {
	return f.path
}

// Get implements Store
func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set implements Store
func (f *File) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data[key] = value
	return f.save(data)
}

func (f *File) load() (map[string]string, error) {
	data := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", f.path)
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		// Start over; the unreadable file is kept next to the new one.
		bad := f.path + ".bad"
		if rerr := os.Rename(f.path, bad); rerr != nil {
			log.Warn().Err(rerr).Str("file", f.path).Msg("failed to move aside unreadable storage file")
		}
		log.Warn().Err(err).Str("file", f.path).Str("saved", bad).Msg("storage file is not a string map, starting empty")
		return make(map[string]string), nil
	}
	return data, nil
}

func (f *File) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "create storage directory")
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode storage")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	return errors.Wrap(os.Rename(tmp, f.path), "replace storage file")
}

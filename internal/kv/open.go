package kv

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
)

// Storage drivers accepted by Open
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the Store selected by driver. dir is the data directory the
// file and sqlite backends keep their data in.
func Open(driver, dir string) (Store, io.Closer, error) {
	switch driver {
	case DriverFile, "":
		return NewFile(filepath.Join(dir, "storage.json")), nopCloser{}, nil
	case DriverSQLite:
		s, err := OpenSQLite(filepath.Join(dir, "cloudreader.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverMemory:
		return NewMemory(), nopCloser{}, nil
	default:
		return nil, nil, errors.Wrap(ErrUnknownDriver, driver)
	}
}

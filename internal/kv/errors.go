package kv

import "errors"

var (
	// ErrKeyEmpty is returned when attempting to store a value under an empty key.
	ErrKeyEmpty = errors.New("kv key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUnknownDriver is returned by Open for an unsupported storage driver.
	ErrUnknownDriver = errors.New("unknown storage driver")
)

package hive

import "errors"

var (
	// ErrNotHive indicates the data lacks a valid "regf" header.
	ErrNotHive = errors.New("hive: not a registry hive (bad regf header)")

	// ErrKeyNotFound is returned when a subkey lookup has no match.
	ErrKeyNotFound = errors.New("hive: key not found")

	// ErrValueNotFound is returned when a value lookup has no match.
	ErrValueNotFound = errors.New("hive: value not found")

	// ErrTypeMismatch is returned when a value cannot be decoded as requested.
	ErrTypeMismatch = errors.New("hive: value has different type")

	// ErrClosed is returned by accessors used after Close.
	ErrClosed = errors.New("hive: closed")
)

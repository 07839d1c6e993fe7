// Package store defines the directory and file handles that every output
// writer goes through. Implementations live in the fs and s3 subpackages.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrClosed is returned by any operation on a handle whose Store was closed.
var ErrClosed = errors.New("store is closed")

// File is a single readable and writable object. Write replaces the
// whole content.
type File interface {
	Path() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Dir is a directory-like location. Dir creates the child directory if it
// does not exist yet; File only resolves the path and never touches the
// underlying storage.
type Dir interface {
	Path() string
	Dir(ctx context.Context, name string) (Dir, error)
	File(name string) (File, error)
}

// Store is an opened root location. The root is either used as a directory
// or as a single file. Close releases the store; handles obtained from it
// must not be used afterwards.
type Store interface {
	AsDir() (Dir, error)
	AsFile() (File, error)
	Close() error
}

// Error describes a failed store operation together with the path it
// targeted.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err unless it is nil.
func NewError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

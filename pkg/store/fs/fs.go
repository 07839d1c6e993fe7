// Package fs implements the store interfaces on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/OFFIS-RIT/statnl/pkg/store"
)

// Store is a local filesystem store rooted at an absolute path.
type Store struct {
	root   string
	closed atomic.Bool
}

// Open creates a store rooted at path. The path does not need to exist;
// directories are created lazily when written to.
func Open(path string) (*Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, store.NewError("open", path, err)
	}
	return &Store{root: abs}, nil
}

// AsDir returns the root as a directory, creating it if needed.
func (s *Store) AsDir() (store.Dir, error) {
	if s.closed.Load() {
		return nil, store.NewError("open", s.root, store.ErrClosed)
	}
	if info, err := os.Stat(s.root); err == nil && !info.IsDir() {
		return nil, store.NewError("open", s.root, fmt.Errorf("not a directory"))
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, store.NewError("mkdir", s.root, err)
	}
	return &dir{store: s, path: s.root}, nil
}

// AsFile returns the root as a single file.
func (s *Store) AsFile() (store.File, error) {
	if s.closed.Load() {
		return nil, store.NewError("open", s.root, store.ErrClosed)
	}
	if info, err := os.Stat(s.root); err == nil && info.IsDir() {
		return nil, store.NewError("open", s.root, fmt.Errorf("is a directory"))
	}
	return &file{store: s, path: s.root}, nil
}

// Close marks the store closed. Files are written synchronously, so there
// is nothing to flush.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

type dir struct {
	store *Store
	path  string
}

func (d *dir) Path() string {
	return d.path
}

func (d *dir) Dir(ctx context.Context, name string) (store.Dir, error) {
	if d.store.closed.Load() {
		return nil, store.NewError("mkdir", d.path, store.ErrClosed)
	}
	cleaned, err := store.CleanName(name)
	if err != nil {
		return nil, store.NewError("mkdir", d.path, err)
	}
	p := filepath.Join(d.path, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(p, 0o755); err != nil {
		return nil, store.NewError("mkdir", p, err)
	}
	return &dir{store: d.store, path: p}, nil
}

func (d *dir) File(name string) (store.File, error) {
	cleaned, err := store.CleanName(name)
	if err != nil {
		return nil, store.NewError("open", d.path, err)
	}
	return &file{store: d.store, path: filepath.Join(d.path, filepath.FromSlash(cleaned))}, nil
}

type file struct {
	store *Store
	path  string
}

func (f *file) Path() string {
	return f.path
}

func (f *file) Read(ctx context.Context) ([]byte, error) {
	if f.store.closed.Load() {
		return nil, store.NewError("read", f.path, store.ErrClosed)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, store.NewError("read", f.path, err)
	}
	return data, nil
}

func (f *file) Write(ctx context.Context, data []byte) error {
	if f.store.closed.Load() {
		return store.NewError("write", f.path, store.ErrClosed)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return store.NewError("mkdir", filepath.Dir(f.path), err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return store.NewError("write", f.path, err)
	}
	return nil
}

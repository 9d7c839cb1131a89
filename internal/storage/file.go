package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSlot stores the blob in a single file. Writes go through a temp file
// and a rename so a crash never leaves a half-written ledger behind.
type FileSlot struct {
	name string
	path string
}

func NewFileSlot(name, path string) (*FileSlot, error) {
	if path == "" {
		return nil, errors.New("file slot path cannot be empty")
	}
	if name == "" {
		name = DefaultSlotName
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create slot directory: %w", err)
	}
	return &FileSlot{name: name, path: path}, nil
}

func (s *FileSlot) Name() string { return s.name }

// Path returns the file backing the slot.
func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return data, nil
}

func (s *FileSlot) Write(_ context.Context, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", s.name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace slot %s: %w", s.name, err)
	}
	return nil
}

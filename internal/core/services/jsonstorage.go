package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/typedstore/internal/core/domain"
	"github.com/custodia-labs/typedstore/internal/core/ports/driven"
	"github.com/custodia-labs/typedstore/internal/core/ports/driving"
	"github.com/custodia-labs/typedstore/internal/logger"
)

// Ensure JSONStorage implements the interface.
var _ driving.Storage[struct{}] = (*JSONStorage[struct{}])(nil)

// utf8BOM may lead files written by Windows editors.
var utf8BOM = []byte("\xef\xbb\xbf")

// emptyDocument decodes to the shape's defaults.
var emptyDocument = []byte("{}")

const (
	defaultFileMode os.FileMode = 0600
	defaultDirMode  os.FileMode = 0700
)

// StorageOption configures a JSONStorage.
type StorageOption func(*storageOptions)

type storageOptions struct {
	now  func() time.Time
	mode os.FileMode
}

// WithClock sets the clock used to timestamp backups.
func WithClock(now func() time.Time) StorageOption {
	return func(o *storageOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithFileMode sets the permissions of written files. Defaults to 0600.
func WithFileMode(mode os.FileMode) StorageOption {
	return func(o *storageOptions) {
		o.mode = mode
	}
}

// JSONStorage persists a single value of shape T as a JSON file.
//
// Load falls back to the shape's defaults when the file is missing, blank,
// corrupt or written by an incompatible version, backing up any discarded
// content first. Save never fails because of I/O: write errors are logged
// and remain available from LastSaveError.
type JSONStorage[T any] struct {
	mu           sync.Mutex
	filePath     string
	serializer   driven.Serializer[T]
	gate         driven.VersionGate
	handle       driven.VersionGateHandle
	handleClosed bool
	data         *T
	lastSaveErr  error
	opts         storageOptions
}

// NewJSONStorage creates a storage for filePath. No I/O happens until Load.
func NewJSONStorage[T any](
	filePath string,
	serializer driven.Serializer[T],
	gate driven.VersionGate,
	opts ...StorageOption,
) *JSONStorage[T] {
	o := storageOptions{now: time.Now, mode: defaultFileMode}
	for _, opt := range opts {
		opt(&o)
	}
	return &JSONStorage[T]{
		filePath:   filePath,
		serializer: serializer,
		gate:       gate,
		opts:       o,
	}
}

// Path returns the storage file path.
func (s *JSONStorage[T]) Path() string {
	return s.filePath
}

// DirectoryPath returns the directory holding the storage file.
func (s *JSONStorage[T]) DirectoryPath() string {
	return filepath.Dir(s.filePath)
}

// Value returns the current in-memory value, or nil before Load.
func (s *JSONStorage[T]) Value() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Set replaces the in-memory value. Nil is ignored.
func (s *JSONStorage[T]) Set(v *T) {
	if v == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = v
}

// LastSaveError returns the error of the most recent failed save, or nil if
// the most recent save succeeded.
func (s *JSONStorage[T]) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Load reads the stored value.
//
// Errors reading the file, backing it up or opening the version gate are
// returned. Corrupt content is not an error: it is backed up and replaced
// with defaults.
func (s *JSONStorage[T]) Load() (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, err := s.gate.Open(s.filePath, domain.CacheKindJSON)
	if err != nil {
		return nil, fmt.Errorf("opening version gate: %w", err)
	}
	s.handle = handle
	s.handleClosed = false

	if handle.ClearCache() {
		if err := s.clearCache(); err != nil {
			return nil, err
		}
	}

	serialized, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		err = s.loadDefault()
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", s.filePath, err)
	case len(bytes.TrimSpace(bytes.TrimPrefix(serialized, utf8BOM))) == 0:
		err = s.loadDefault()
	default:
		err = s.deserialize(serialized)
	}
	if err != nil {
		return nil, err
	}

	if s.data == nil {
		return nil, domain.ErrNilValue
	}
	return s.data, nil
}

// Save writes the current value to the storage file.
// It returns domain.ErrNotLoaded if called before Load; I/O failures are
// logged and swallowed.
func (s *JSONStorage[T]) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return domain.ErrNotLoaded
	}
	s.save()
	return nil
}

// clearCache deletes the storage file without backing it up.
func (s *JSONStorage[T]) clearCache() error {
	err := os.Remove(s.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("deleting stale cache %s: %w", s.filePath, err)
	}
	logger.Info("Deleting cached data at <%s>", s.filePath)
	return nil
}

func (s *JSONStorage[T]) deserialize(serialized []byte) error {
	v, err := s.serializer.Decode(serialized)
	if err != nil {
		if !errors.Is(err, domain.ErrDecode) {
			return fmt.Errorf("decoding %s: %w", s.filePath, err)
		}
		if err := s.loadDefault(); err != nil {
			return err
		}
		logger.Error(err, "Deserialize error for json <%s>", s.filePath)
		return nil
	}

	if v == nil {
		return s.loadDefault()
	}
	s.data = v
	return nil
}

// loadDefault backs up any existing file, resets the value to the shape's
// defaults and writes them out.
func (s *JSONStorage[T]) loadDefault() error {
	exists, err := fileExists(s.filePath)
	if err != nil {
		return err
	}
	if exists {
		if err := s.backupOriginFile(); err != nil {
			return err
		}
	}

	v, err := s.serializer.Decode(emptyDocument)
	if err != nil {
		return fmt.Errorf("decoding defaults: %w", err)
	}
	if v == nil {
		return domain.ErrNilValue
	}
	s.data = v
	s.save()
	return nil
}

// backupOriginFile copies the storage file to a timestamped sibling,
// overwriting any previous copy with the same name.
func (s *JSONStorage[T]) backupOriginFile() error {
	backupPath := domain.BackupPath(s.filePath, s.opts.now())
	if err := copyFile(s.filePath, backupPath, s.opts.mode); err != nil {
		return fmt.Errorf("backing up %s: %w", s.filePath, err)
	}
	logger.Info("Backed up <%s> to <%s>", s.filePath, backupPath)
	return nil
}

// save writes the value and finalizes the version marker (caller must hold lock).
func (s *JSONStorage[T]) save() {
	if err := s.write(); err != nil {
		s.lastSaveErr = err
		logger.Error(err, "Error in saving data at <%s>", s.filePath)
		return
	}
	s.lastSaveErr = nil
	logger.Info("Saving cached data at <%s>", s.filePath)
}

func (s *JSONStorage[T]) write() error {
	serialized, err := s.serializer.Encode(s.data)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if err := os.MkdirAll(s.DirectoryPath(), defaultDirMode); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(s.filePath, serialized, s.opts.mode); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	// The marker is finalized once per Load.
	if !s.handleClosed {
		if err := s.handle.Close(); err != nil {
			return fmt.Errorf("closing version marker: %w", err)
		}
		s.handleClosed = true
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

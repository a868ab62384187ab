// Package credstore provides credential.Store implementations: a durable
// JSON file store, a sqlite store, and an in-memory store for tests.
package credstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/quillpress/quillctl/internal/domain/credential"
)

// FileStore persists the credential pair as a JSON file.
// It provides atomic writes (write-tmp-fsync-rename), file locking (flock
// for cross-process, mutex for in-process), and 0600 permissions so other
// local users cannot read the tokens.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// credentialFile is the on-disk layout.
type credentialFile struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// NewFileStore creates a FileStore for the given file path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Get reads the stored credential pair.
// Returns credential.ErrNoCredentials if the file does not exist.
// Warns if the existing file has permissions more open than 0600.
func (s *FileStore) Get() (credential.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return credential.Pair{}, credential.ErrNoCredentials
		}
		return credential.Pair{}, fmt.Errorf("read credential file: %w", err)
	}

	// Skip the permission check on Windows where Unix permission bits are
	// not supported.
	if runtime.GOOS != "windows" {
		if info, statErr := os.Stat(s.path); statErr == nil {
			mode := info.Mode().Perm()
			if mode&0077 != 0 { // group or other has access
				s.logger.Warn("credential file has too-open permissions, should be 0600",
					"path", s.path, "current_mode", fmt.Sprintf("%04o", mode))
			}
		}
	}

	var file credentialFile
	if err := json.Unmarshal(data, &file); err != nil {
		return credential.Pair{}, fmt.Errorf("parse credential file: %w", err)
	}
	if file.Access == "" && file.Refresh == "" {
		return credential.Pair{}, credential.ErrNoCredentials
	}

	return credential.Pair{Access: file.Access, Refresh: file.Refresh}, nil
}

// Set writes the credential pair to disk atomically.
//
// The write sequence is:
//  1. Acquire in-process mutex
//  2. Acquire flock on path+".lock"
//  3. Marshal the pair as JSON
//  4. Write to path+".tmp" with 0600 permissions
//  5. Fsync the temp file
//  6. Rename path+".tmp" -> path
//  7. Release flock
//  8. Release mutex
func (s *FileStore) Set(pair credential.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := json.Marshal(credentialFile{Access: pair.Access, Refresh: pair.Refresh})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	// Explicitly ensure 0600 permissions after rename as a safety net.
	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("failed to set permissions on credential file", "error", err)
	}

	s.logger.Debug("credentials saved", "path", s.path)
	return nil
}

// Clear removes the credential file. A missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	s.logger.Debug("credentials cleared", "path", s.path)
	return nil
}

// lock acquires the cross-process file lock and returns its release func.
func (s *FileStore) lock() (func(), error) {
	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := flockLock(lockFile.Fd()); err != nil {
		_ = lockFile.Close()
		return nil, fmt.Errorf("acquire file lock: %w", err)
	}
	return func() {
		flockUnlock(lockFile.Fd()) //nolint:errcheck
		_ = lockFile.Close()
	}, nil
}

// writeAtomic writes data to a temp file, fsyncs it, and renames it over
// the target path. On any error the temp file is cleaned up.
func (s *FileStore) writeAtomic(data []byte) error {
	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	// cleanup closes and removes the temp file on error.
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp to credential file: %w", err)
	}
	return nil
}

// Path returns the configured file path.
func (s *FileStore) Path() string {
	return s.path
}

package credstore

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/quillpress/quillctl/internal/domain/credential"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ---------------------------------------------------------------------------
// FileStore tests
// ---------------------------------------------------------------------------

func TestFileStore_Get_NoFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"), testLogger())

	_, err := s.Get()
	if !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials, got %v", err)
	}
}

func TestFileStore_SetGet_RoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"), testLogger())

	want := credential.Pair{Access: "AT1", Refresh: "RT1"}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestFileStore_Set_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
	s := NewFileStore(path, testLogger())

	if err := s.Set(credential.Pair{Access: "AT1", Refresh: "RT1"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected credential file to exist: %v", err)
	}
}

func TestFileStore_Set_Permissions0600(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewFileStore(path, testLogger())

	if err := s.Set(credential.Pair{Access: "AT1", Refresh: "RT1"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("expected mode 0600, got %04o", mode)
	}
}

func TestFileStore_Get_WarnsOnOpenPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	if err := os.WriteFile(path, []byte(`{"access":"AT1","refresh":"RT1"}`), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s := NewFileStore(path, logger)

	if _, err := s.Get(); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !strings.Contains(buf.String(), "too-open permissions") {
		t.Errorf("expected permission warning in log, got: %s", buf.String())
	}
}

func TestFileStore_Get_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	s := NewFileStore(path, testLogger())
	if _, err := s.Get(); err == nil {
		t.Error("expected error for corrupt credential file")
	}
}

func TestFileStore_Get_EmptyPair(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte(`{"access":"","refresh":""}`), 0600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	s := NewFileStore(path, testLogger())
	if _, err := s.Get(); !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials for empty pair, got %v", err)
	}
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewFileStore(path, testLogger())

	if err := s.Set(credential.Pair{Access: "AT1", Refresh: "RT1"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := s.Get(); !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials after Clear, got %v", err)
	}
}

func TestFileStore_Clear_NoFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"), testLogger())
	if err := s.Clear(); err != nil {
		t.Errorf("Clear() on missing file should not error, got %v", err)
	}
}

func TestFileStore_Set_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "credentials.json"), testLogger())

	if err := s.Set(credential.Pair{Access: "AT1", Refresh: "RT1"}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "credentials.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file left behind after Set")
	}
}

func TestFileStore_ConcurrentWrites(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"), testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Set(credential.Pair{Access: "AT1", Refresh: "RT1"}); err != nil {
				t.Errorf("Set() error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Whatever write landed last, the file must contain a complete pair.
	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Access != "AT1" || got.Refresh != "RT1" {
		t.Errorf("Get() = %+v, want complete pair", got)
	}
}

// ---------------------------------------------------------------------------
// MemoryStore tests
// ---------------------------------------------------------------------------

func TestMemoryStore_Lifecycle(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get(); !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials on fresh store, got %v", err)
	}

	want := credential.Pair{Access: "AT1", Refresh: "RT1"}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := s.Get(); !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials after Clear, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SQLiteStore tests
// ---------------------------------------------------------------------------

func TestSQLiteStore_Lifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")
	s, err := OpenSQLiteStore(path, testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(); !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials on fresh store, got %v", err)
	}

	want := credential.Pair{Access: "AT1", Refresh: "RT1"}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	// Set overwrites the single row.
	want2 := credential.Pair{Access: "AT2", Refresh: "RT1"}
	if err := s.Set(want2); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err = s.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != want2 {
		t.Errorf("Get() = %+v, want %+v", got, want2)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, err := s.Get(); !errors.Is(err, credential.ErrNoCredentials) {
		t.Errorf("expected ErrNoCredentials after Clear, got %v", err)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	s, err := OpenSQLiteStore(path, testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error: %v", err)
	}
	want := credential.Pair{Access: "AT1", Refresh: "RT1"}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	s2, err := OpenSQLiteStore(path, testLogger())
	if err != nil {
		t.Fatalf("OpenSQLiteStore() reopen error: %v", err)
	}
	defer s2.Close()

	got, err := s2.Get()
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != want {
		t.Errorf("Get() after reopen = %+v, want %+v", got, want)
	}
}

package fileops

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestAtomicWrite_Success(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "test-file.txt")

	testData := []byte("Hello, atomic write!")
	testMode := os.FileMode(0644)

	if err := AtomicWrite(targetPath, testData, testMode); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	content, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(testData) {
		t.Errorf("File content mismatch: got %q, want %q", string(content), string(testData))
	}

	if runtime.GOOS != "windows" {
		fileInfo, err := os.Stat(targetPath)
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}
		if fileInfo.Mode().Perm() != testMode {
			t.Errorf("File permissions mismatch: got %v, want %v", fileInfo.Mode().Perm(), testMode)
		}
	}
}

func TestAtomicWriteFrom_OverwriteExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "Player.prefab")

	if err := os.WriteFile(targetPath, []byte("current working copy"), 0644); err != nil {
		t.Fatalf("Failed to create initial file: %v", err)
	}

	historical := "historical blob content"
	if err := AtomicWriteFrom(targetPath, strings.NewReader(historical), 0644); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}

	content, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != historical {
		t.Errorf("content after overwrite: got %q, want %q", string(content), historical)
	}
}

type failingReader struct{ sent bool }

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "partial"), nil
	}
	return 0, errors.New("blob stream broken")
}

func TestAtomicWriteFrom_ReaderErrorKeepsOriginal(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "scene.unity")
	original := []byte("original content")
	if err := os.WriteFile(targetPath, original, 0644); err != nil {
		t.Fatalf("Failed to create initial file: %v", err)
	}

	err := AtomicWriteFrom(targetPath, &failingReader{}, 0644)
	if err == nil {
		t.Fatal("expected error from failing reader")
	}

	content, err := os.ReadFile(targetPath)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(original) {
		t.Errorf("partial write observable: got %q", string(content))
	}
	assertNoTempFiles(t, tmpDir)
}

func TestAtomicWrite_EmptyData(t *testing.T) {
	targetPath := filepath.Join(t.TempDir(), "empty.txt")

	if err := AtomicWriteFrom(targetPath, io.LimitReader(strings.NewReader("x"), 0), 0644); err != nil {
		t.Fatalf("AtomicWriteFrom failed: %v", err)
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("expected empty file, got %d bytes", info.Size())
	}
}

func TestAtomicWrite_InvalidDirectory(t *testing.T) {
	invalidPath := filepath.Join(t.TempDir(), "non-existent-dir-12345", "file.txt")

	if err := AtomicWrite(invalidPath, []byte("test data"), 0644); err == nil {
		t.Fatal("Expected error when writing to non-existent directory, got nil")
	}
}

func TestAtomicWrite_NoTempFileLeftBehind(t *testing.T) {
	tmpDir := t.TempDir()
	targetPath := filepath.Join(tmpDir, "cleanup-test.txt")

	if err := AtomicWrite(targetPath, []byte("test cleanup"), 0644); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 file in directory, found %d", len(entries))
	}
	assertNoTempFiles(t, tmpDir)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".tmp-") {
			t.Errorf("Temporary file left behind: %s", entry.Name())
		}
	}
}

package fileops

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to a file atomically by using a temporary file and rename.
// This ensures that the file is never in a partial state.
func AtomicWrite(targetPath string, data []byte, mode os.FileMode) error {
	return AtomicWriteFrom(targetPath, bytes.NewReader(data), mode)
}

// AtomicWriteFrom copies r completely into a temporary file next to
// targetPath and renames it over the target. Readers of targetPath see either
// the previous content or all of r, never a prefix of it.
func AtomicWriteFrom(targetPath string, r io.Reader, mode os.FileMode) error {
	dir := filepath.Dir(targetPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if err := writeTempFile(r, tmpFile); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	return renameTempFile(tmpFile.Name(), targetPath, mode)
}

// writeTempFile streams r into tmpFile, fsyncs and closes it.
func writeTempFile(r io.Reader, tmpFile *os.File) error {
	if _, err := io.Copy(tmpFile, r); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// renameTempFile applies mode to the temp file and renames it over targetPath.
func renameTempFile(tmpPath string, targetPath string, mode os.FileMode) error {
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	if err := os.Rename(tmpPath, targetPath); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

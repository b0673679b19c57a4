package util

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func CreateTempFile(t *testing.T) (string, func()) {
	t.Helper()
	tempDir := t.TempDir()
	tempFile := filepath.Join(tempDir, fmt.Sprintf("pagecache-test-%d.dat", rand.Intn(100)+10))
	return tempFile, func() {
		os.Remove(tempFile)
	}
}

// TestingOptions returns options for a small pool with a silent logger
func TestingOptions(poolSize int, pageSize int) Options {
	opts := DefaultOptions()
	opts.BufferPoolSize = poolSize
	opts.PageSize = pageSize
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

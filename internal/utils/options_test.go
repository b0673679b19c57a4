package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagecache.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedErr error
		check       func(t *testing.T, opts Options)
	}{
		{
			name: "Overrides defaults",
			body: "path: /tmp/data.db\nbuffer_pool_size: 16\npage_size: 512\nsync_writes: true\nlog_level: debug\n",
			check: func(t *testing.T, opts Options) {
				assert.Equal(t, "/tmp/data.db", opts.Path)
				assert.Equal(t, 16, opts.BufferPoolSize)
				assert.Equal(t, 512, opts.PageSize)
				assert.True(t, opts.SyncWrites)
				assert.Equal(t, "debug", opts.LogLevel)
			},
		},
		{
			name: "Keeps unspecified defaults",
			body: "buffer_pool_size: 3\n",
			check: func(t *testing.T, opts Options) {
				assert.Equal(t, PageSize, opts.PageSize)
				assert.Equal(t, 3, opts.BufferPoolSize)
				assert.Equal(t, "info", opts.LogLevel)
			},
		},
		{
			name:        "Zero pool size",
			body:        "buffer_pool_size: 0\n",
			expectedErr: ErrInvalidPoolSize,
		},
		{
			name:        "Negative page size",
			body:        "page_size: -1\n",
			expectedErr: ErrInvalidPageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadOptions(writeConfig(t, tt.body))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, opts)
		})
	}

	t.Run("Unknown key", func(t *testing.T) {
		_, err := LoadOptions(writeConfig(t, "frames: 3\n"))
		assert.Error(t, err)
	})

	t.Run("Bad log level", func(t *testing.T) {
		_, err := LoadOptions(writeConfig(t, "log_level: loud\n"))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestNewLogger(t *testing.T) {
	opts := TestingOptions(1, 64)
	assert.Same(t, opts.Logger, opts.NewLogger(), "explicit logger wins")

	opts.Logger = nil
	assert.NotNil(t, opts.NewLogger())
}

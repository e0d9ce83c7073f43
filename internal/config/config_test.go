package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 1048576, cfg.BufferSize)
	assert.Equal(t, 1<<28, cfg.MaxSectionSize)
	assert.True(t, cfg.SyntaxCheck)
	assert.Equal(t, "grib2.bin", cfg.FileSuffix)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("WGPV_BUFFER_SIZE", "4096")
	t.Setenv("WGPV_MAX_SECTION_SIZE", "65536")
	t.Setenv("WGPV_SYNTAX_CHECK", "false")
	t.Setenv("WGPV_FILE_SUFFIX", ".grib2")
	t.Setenv("METRICS_ADDR", ":9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, 65536, cfg.MaxSectionSize)
	assert.False(t, cfg.SyntaxCheck)
	assert.Equal(t, ".grib2", cfg.FileSuffix)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"WGPV_BUFFER_SIZE", "lots", "WGPV_BUFFER_SIZE"},
		{"WGPV_BUFFER_SIZE", "16", "WGPV_BUFFER_SIZE"},
		{"WGPV_MAX_SECTION_SIZE", "huge", "WGPV_MAX_SECTION_SIZE"},
		{"WGPV_MAX_SECTION_SIZE", "0", "WGPV_MAX_SECTION_SIZE"},
		{"WGPV_SYNTAX_CHECK", "maybe", "WGPV_SYNTAX_CHECK"},
		{"LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"LOG_FORMAT", "xml", "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_Overlay(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "wgpv.yaml")
	doc := "log_format: json\nbuffer_size: 2048\nsyntax_check: false\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2048, cfg.BufferSize)
	assert.False(t, cfg.SyntaxCheck)
	assert.Equal(t, DefaultFileSuffix, cfg.FileSuffix)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buffer_size: [1, 2"), 0o600))
	_, err = LoadFile(path)
	require.Error(t, err)

	path = filepath.Join(t.TempDir(), "small.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buffer_size: 8\n"), 0o600))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "WGPV_BUFFER_SIZE")
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilawal010/Clerk/internal/memo"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CLERK_DATA_DIR", "CLERK_DB", "CLERK_NUMBER_PREFIX", "CLERK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "NITT/DG", cfg.NumberPrefix)
	assert.Equal(t, memo.DefaultDepartments, cfg.Departments)
	assert.True(t, cfg.StampPDFs)
	require.NoError(t, cfg.Validate())
}

func TestDefaultConfig_DepartmentsAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Departments[0] = "changed"
	assert.NotEqual(t, "changed", memo.DefaultDepartments[0])
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "clerk.yaml")

	cfg := DefaultConfig()
	cfg.DataDir = "/srv/clerk"
	cfg.NumberPrefix = "ACME/HQ"
	cfg.Departments = []string{"Front Desk", "Finance"}
	cfg.StampPDFs = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "clerk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /tmp/x\nlogging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "NITT/DG", cfg.NumberPrefix)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clerk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLERK_DATA_DIR", "/env/data")
	t.Setenv("CLERK_DB", "/env/memos.db")
	t.Setenv("CLERK_NUMBER_PREFIX", "ENV/P")
	t.Setenv("CLERK_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/env/data", cfg.DataDir)
	assert.Equal(t, "/env/memos.db", cfg.DatabaseFile())
	assert.Equal(t, "ENV/P", cfg.NumberPrefix)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestDatabaseFile_DefaultsUnderDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	assert.Equal(t, filepath.Join("/data", "memos", "records", "memos.db"), cfg.DatabaseFile())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = " " }, "data_dir"},
		{"empty prefix", func(c *Config) { c.NumberPrefix = "/" }, "number_prefix"},
		{"duplicate department", func(c *Config) { c.Departments = []string{"A", "a"} }, "duplicate"},
		{"blank department", func(c *Config) { c.Departments = []string{"A", ""} }, "empty name"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

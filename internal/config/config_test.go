package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskpanel/internal/errors"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	content := `
page_size = 10
appearance = "dark"

[keys]
quit = "x"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, AppearanceDark, cfg.Appearance)
	assert.Equal(t, "x", cfg.Keys.Quit)
	assert.Equal(t, "a", cfg.Keys.Add, "unset keys keep their defaults")
	assert.Equal(t, 100, cfg.BatchLimit)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, DefaultDBName, cfg.DBPath)
}

func TestLoadOrCreateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "page_size = ["},
		{"bad driver", `db_driver = "postgres"`},
		{"bad appearance", `appearance = "neon"`},
		{"mysql without dsn", `db_driver = "mysql"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadOrCreate(path)
			require.Error(t, err)
			assert.Equal(t, apperrors.CategoryConfiguration, apperrors.CategoryOf(err))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	cfg := defaultConfig()
	cfg.Appearance = AppearanceLight
	cfg.RemoteURL = "http://localhost:8000"

	require.NoError(t, Save(path, cfg))
	got, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", ResolveConfigPath())

	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", AppName, DefaultConfigFileName), ResolveConfigPath())
}

func TestDatabaseSource(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, filepath.Join("/etc/taskpanel", DefaultDBName), cfg.DatabaseSource("/etc/taskpanel/config.toml"))

	cfg.DBPath = "/var/lib/tasks.db"
	assert.Equal(t, "/var/lib/tasks.db", cfg.DatabaseSource("/etc/taskpanel/config.toml"))

	cfg.DBDriver = "mysql"
	cfg.DBDSN = "user:pw@tcp(localhost:3306)/tasks"
	assert.Equal(t, cfg.DBDSN, cfg.DatabaseSource("/etc/taskpanel/config.toml"))
}

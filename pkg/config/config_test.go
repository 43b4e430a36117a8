package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corvidlabs/negamax/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "negamax.toml")
	require.NoError(t, os.WriteFile(path, []byte("workers = 3\nmax_depth = 12\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 12, cfg.MaxDepth)
	assert.Equal(t, config.Default().SearchBudgetMillis, cfg.SearchBudgetMillis)
	assert.Equal(t, config.Default().BookPath, cfg.BookPath)
}

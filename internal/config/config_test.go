package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcke/bytesafe/pad"
)

// isolateGlobalConfig points BYTESAFE_CONFIG_DIR at an empty temp dir so
// a developer's real global config cannot leak into tests.
func isolateGlobalConfig(t *testing.T) {
	t.Helper()
	t.Setenv("BYTESAFE_CONFIG_DIR", t.TempDir())
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "lsb", d.Padding)
	assert.True(t, d.VerifyErase)
	assert.False(t, d.StrictErase)
	assert.True(t, d.Audit)
	assert.NoError(t, d.Validate())
}

func TestDirection(t *testing.T) {
	tests := []struct {
		padding string
		want    pad.Direction
	}{
		{padding: "lsb", want: pad.LSB},
		{padding: "msb", want: pad.MSB},
		{padding: "MSB", want: pad.MSB},
		{padding: "", want: pad.LSB},
	}
	for _, tt := range tests {
		c := Config{Padding: tt.padding}
		assert.Equal(t, tt.want, c.Direction())
	}
}

func TestValidate(t *testing.T) {
	t.Run("bad padding value", func(t *testing.T) {
		c := Config{Padding: "middle"}
		err := c.Validate()
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Len(t, verr.Problems, 1)
	})

	t.Run("strict without verify", func(t *testing.T) {
		c := Config{Padding: "lsb", StrictErase: true, VerifyErase: false}
		err := c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strict_erase requires verify_erase")
	})
}

func TestLoad(t *testing.T) {
	t.Run("no config file returns defaults", func(t *testing.T) {
		isolateGlobalConfig(t)
		dir := t.TempDir()

		cfg, projectDir, err := Load(dir)
		require.NoError(t, err)
		assert.Empty(t, projectDir)
		assert.Equal(t, Defaults(), *cfg)
	})

	t.Run("project file overrides defaults", func(t *testing.T) {
		isolateGlobalConfig(t)
		dir := t.TempDir()
		content := "padding: msb\nverify_erase: false\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, FullFileName), []byte(content), 0o644))

		cfg, projectDir, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, projectDir)
		assert.Equal(t, "msb", cfg.Padding)
		assert.False(t, cfg.VerifyErase)
		// Untouched keys keep defaults.
		assert.True(t, cfg.Audit)
	})

	t.Run("config is found in a parent directory", func(t *testing.T) {
		isolateGlobalConfig(t)
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, FullFileName), []byte("padding: msb\n"), 0o644))
		nested := filepath.Join(root, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		cfg, projectDir, err := Load(nested)
		require.NoError(t, err)
		assert.Equal(t, root, projectDir)
		assert.Equal(t, pad.MSB, cfg.Direction())
	})

	t.Run("global config applies beneath the project file", func(t *testing.T) {
		globalDir := t.TempDir()
		t.Setenv("BYTESAFE_CONFIG_DIR", globalDir)
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, GlobalFileName), []byte("padding: msb\naudit: false\n"), 0o644))

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, FullFileName), []byte("padding: lsb\n"), 0o644))

		cfg, _, err := Load(dir)
		require.NoError(t, err)
		// Project wins where set, global fills the rest.
		assert.Equal(t, "lsb", cfg.Padding)
		assert.False(t, cfg.Audit)
	})

	t.Run("invalid value surfaces a validation error", func(t *testing.T) {
		isolateGlobalConfig(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, FullFileName), []byte("padding: sideways\n"), 0o644))

		_, _, err := Load(dir)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads a specific path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("strict_erase: true\nverify_erase: true\n"), 0o644))

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.True(t, cfg.StrictErase)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestGlobalConfigDir(t *testing.T) {
	t.Run("env override wins", func(t *testing.T) {
		t.Setenv("BYTESAFE_CONFIG_DIR", "/custom/dir")
		assert.Equal(t, "/custom/dir", GlobalConfigDir())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("BYTESAFE_CONFIG_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		assert.Equal(t, filepath.Join("/xdg", "bytesafe"), GlobalConfigDir())
	})
}

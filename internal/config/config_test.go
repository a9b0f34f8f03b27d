package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umer200/ivy/internal/backend/sim"
	"github.com/umer200/ivy/internal/tensor"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cpu", c.Backend)
	assert.Equal(t, "", c.BackendVersion)
	assert.Empty(t, c.Devices)
	assert.Equal(t, "float32", c.DefaultFloat)

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "ivy.yaml", `
backend: sim
backend_version: 2.5.0
devices: [cpu, "gpu:0", "gpu:1"]
default_device: "gpu:1"
default_float: float64
log_level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sim", c.Backend)
	assert.Equal(t, "2.5.0", c.BackendVersion)
	assert.Equal(t, []string{"cpu", "gpu:0", "gpu:1"}, c.Devices)
	assert.Equal(t, "gpu:1", c.DefaultDevice)

	ctx, err := c.Open(nil)
	require.NoError(t, err)
	assert.Equal(t, "2.5.0", ctx.Backend().Version())
	assert.Equal(t, tensor.GPU(1), ctx.DefaultDevice())
	assert.Equal(t, tensor.Float64, ctx.DefaultFloat())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("IVY_BACKEND", "sim")
	t.Setenv("IVY_DEFAULT_FLOAT", "float16")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sim", c.Backend)

	ctx, err := c.Open(nil)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultVersion, ctx.Backend().Version())
	assert.Equal(t, tensor.Float16, ctx.DefaultFloat())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "bad.yaml", "default_float: float8\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "level.yaml", "log_level: chatty\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "empty.yaml", "backend: \"\"\n"))
	require.Error(t, err)
}

func TestOpenErrors(t *testing.T) {
	c, err := Load(writeConfig(t, "tpu.yaml", "backend: tpu\n"))
	require.NoError(t, err)
	_, err = c.Open(nil)
	require.Error(t, err)

	c, err = Load(writeConfig(t, "device.yaml", "default_device: \"gpu:0\"\n"))
	require.NoError(t, err)
	_, err = c.Open(nil)
	require.Error(t, err)

	c, err = Load(writeConfig(t, "nightly.yaml", "backend: sim\nbackend_version: nightly\n"))
	require.NoError(t, err)
	_, err = c.Open(nil)
	require.Error(t, err)

	c, err = Load(writeConfig(t, "post.yaml", "backend: sim\nbackend_version: \"2.4.1.post1\"\n"))
	require.NoError(t, err)
	ctx, err := c.Open(nil)
	require.NoError(t, err)
	assert.Equal(t, "2.4.1.post1", ctx.Backend().Version())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	c := &Config{LogLevel: "info"}
	logger := c.Logger(&buf)
	logger.Debug("hidden")
	logger.Info("shown", "op", "zeros")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "op=zeros")

	buf.Reset()
	bad := &Config{LogLevel: "chatty"}
	bad.Logger(&buf).Info("dropped")
	assert.Empty(t, buf.String())
}

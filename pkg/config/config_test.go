package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rectile/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32, cfg.Tiling.CX)
	assert.Equal(t, 28, cfg.Tiling.GridWidth)
	assert.Equal(t, DefaultScale, cfg.Render.Scale)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFile_TOML(t *testing.T) {
	path := writeFile(t, "rectile.toml", `
[tiling]
cx = 16
grid_width = 12
label = true

[render]
formats = ["svg", "png"]

[cache]
ttl = "1h30m"

[server]
addr = "127.0.0.1:9000"
`)
	cfg := Default()
	require.NoError(t, LoadFile(&cfg, path))

	assert.Equal(t, 16, cfg.Tiling.CX)
	assert.Equal(t, 12, cfg.Tiling.GridWidth)
	assert.True(t, cfg.Tiling.Label)
	assert.True(t, cfg.Tiling.Colorize, "keys absent from the file keep defaults")
	assert.Equal(t, []string{"svg", "png"}, cfg.Render.Formats)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "rectile.yaml", `
tiling:
  cx: 24
  max_side: 30
cache:
  redis_url: redis://localhost:6379/0
`)
	cfg := Default()
	require.NoError(t, LoadFile(&cfg, path))
	assert.Equal(t, 24, cfg.Tiling.CX)
	assert.Equal(t, 30.0, cfg.Tiling.MaxSide)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, 28, cfg.Tiling.GridWidth)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		code errors.Code
	}{
		{"unknown key", "a.toml", "[tiling]\ncxx = 3\n", errors.ErrCodeInvalidConfiguration},
		{"bad toml", "b.toml", "[tiling\n", errors.ErrCodeInvalidConfiguration},
		{"bad yaml", "c.yaml", "tiling: [", errors.ErrCodeInvalidConfiguration},
		{"bad extension", "d.ini", "cx=1", errors.ErrCodeInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := LoadFile(&cfg, writeFile(t, tt.file, tt.body))
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}

	cfg := Default()
	err := LoadFile(&cfg, filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{
		"RECTILE_CX":         "16",
		"RECTILE_GRID_WIDTH": "12",
		"RECTILE_COLORIZE":   "false",
		"RECTILE_CONFLICTS":  "fail",
		"RECTILE_FORMATS":    "svg, png ,",
		"RECTILE_CACHE_TTL":  "5m",
		"RECTILE_REDIS_URL":  "redis://cache:6379",
		"RECTILE_ADDR":       " :9090 ",
		"RECTILE_LABEL":      "",
	}))
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Tiling.CX)
	assert.Equal(t, 12, cfg.Tiling.GridWidth)
	assert.False(t, cfg.Tiling.Colorize)
	assert.False(t, cfg.Tiling.Label)
	assert.Equal(t, "fail", cfg.Tiling.Conflicts)
	assert.Equal(t, []string{"svg", "png"}, cfg.Render.Formats)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis://cache:6379", cfg.Cache.RedisURL)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"RECTILE_CX":        "thirty-two",
		"RECTILE_MAX_SIDE":  "big",
		"RECTILE_COLORIZE":  "maybe",
		"RECTILE_CACHE_TTL": "soon",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			cfg := Default()
			err := ApplyEnv(&cfg, mapLookup(map[string]string{k: v}))
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration), "got %v", err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "RECTILE_TEST_DOTENV_MAX_SIDE"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, ".env", key+"=42\n")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "42", os.Getenv(key))

	// missing files are skipped
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoad_Layering(t *testing.T) {
	path := writeFile(t, "rectile.toml", "[tiling]\ncx = 16\ngrid_width = 12\n")
	t.Setenv("RECTILE_GRID_WIDTH", "8")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Tiling.CX)
	assert.Equal(t, 8, cfg.Tiling.GridWidth, "environment overrides the file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiling", func(c *Config) { c.Tiling.CX = 7 }},
		{"scale", func(c *Config) { c.Render.Scale = 0 }},
		{"ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"addr", func(c *Config) { c.Server.Addr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.True(t, errors.Is(cfg.Validate(), errors.ErrCodeInvalidConfiguration))
		})
	}
}

func TestLoadFile_Example(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFile(&cfg, filepath.Join("..", "..", "examples", "rectile.toml")))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Default().Tiling, cfg.Tiling)
	assert.Equal(t, []string{"svg", "png"}, cfg.Render.Formats)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
}

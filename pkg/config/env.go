package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matzehuels/rectile/pkg/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RECTILE_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from the given files (default ".env") into the
// process environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "load %s", strings.Join(existing, ", "))
	}
	return nil
}

// ApplyEnv overlays RECTILE_* variables onto cfg.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	e := envReader{lookup: lookup}

	e.integer("CX", &cfg.Tiling.CX)
	e.integer("GRID_WIDTH", &cfg.Tiling.GridWidth)
	e.float("MAX_SIDE", &cfg.Tiling.MaxSide)
	e.float("EDGE_WIDTH", &cfg.Tiling.EdgeWidth)
	e.boolean("COLORIZE", &cfg.Tiling.Colorize)
	e.boolean("LABEL", &cfg.Tiling.Label)
	e.integer("MAX_ITERATIONS", &cfg.Tiling.MaxIterations)
	e.integer("CANVAS_SIZE", &cfg.Tiling.CanvasSize)
	e.str("CONFLICTS", &cfg.Tiling.Conflicts)

	e.float("SCALE", &cfg.Render.Scale)
	e.list("FORMATS", &cfg.Render.Formats)
	e.str("OUTPUT_DIR", &cfg.Render.OutputDir)

	e.boolean("NO_CACHE", &cfg.Cache.Disabled)
	e.str("CACHE_DIR", &cfg.Cache.Dir)
	e.str("REDIS_URL", &cfg.Cache.RedisURL)
	e.duration("CACHE_TTL", &cfg.Cache.TTL)

	e.str("ADDR", &cfg.Server.Addr)

	return e.err
}

// envReader records the first parse failure and ignores later variables.
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(name string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := e.lookup(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e *envReader) fail(name, value string, err error) {
	e.err = errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "%s%s=%q", EnvPrefix, name, value)
}

func (e *envReader) str(name string, dst *string) {
	if v, ok := e.get(name); ok {
		*dst = v
	}
}

func (e *envReader) integer(name string, dst *int) {
	if v, ok := e.get(name); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) float(name string, dst *float64) {
	if v, ok := e.get(name); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) boolean(name string, dst *bool) {
	if v, ok := e.get(name); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) duration(name string, dst *time.Duration) {
	if v, ok := e.get(name); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(name, v, err)
			return
		}
		*dst = d
	}
}

func (e *envReader) list(name string, dst *[]string) {
	if v, ok := e.get(name); ok {
		var out []string
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}

package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "dev", "none"
	if got := CacheScope(); got != "dev:" {
		t.Errorf("CacheScope() = %q, want %q", got, "dev:")
	}

	Version, Commit = "v1.2.0", "0123456789abcdef"
	if got := CacheScope(); got != "v1.2.0@0123456:" {
		t.Errorf("CacheScope() = %q, want %q", got, "v1.2.0@0123456:")
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), Version) {
		t.Errorf("Template() should mention version %q", Version)
	}
	if got := Current(); got.Version != Version || got.Commit != Commit {
		t.Errorf("Current() = %+v", got)
	}
}

package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache keeps one file per entry under a directory. Each file holds a
// one-line JSON header followed by the raw bytes, so large PNG artifacts are
// stored without re-encoding.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates dir if needed and returns a cache rooted there.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

func (c *FileCache) Dir() string { return c.dir }

// entryHeader precedes the data in every entry file. Key guards against
// hash collisions; Expires is Unix nanoseconds, zero for no expiry.
type entryHeader struct {
	Key     string `json:"key"`
	Expires int64  `json:"expires,omitempty"`
}

// Get returns the entry for key. Expired, corrupt and colliding entries are
// removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, ok := c.decode(key, raw)
	if !ok {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

func (c *FileCache) decode(key string, raw []byte) ([]byte, bool) {
	head, data, found := bytes.Cut(raw, []byte{'\n'})
	if !found {
		return nil, false
	}
	var h entryHeader
	if err := json.Unmarshal(head, &h); err != nil || h.Key != key {
		return nil, false
	}
	if h.Expires != 0 && c.now().UnixNano() > h.Expires {
		return nil, false
	}
	return data, true
}

// Set writes the entry to a temporary file and renames it into place, so
// concurrent readers see either the old entry or the new one.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	h := entryHeader{Key: key}
	if ttl > 0 {
		h.Expires = c.now().Add(ttl).UnixNano()
	}
	head, err := json.Marshal(h)
	if err != nil {
		return err
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	buf := make([]byte, 0, len(head)+1+len(data))
	buf = append(append(append(buf, head...), '\n'), data...)
	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes the directory's contents and leaves it empty.
func (c *FileCache) Clear(ctx context.Context) error {
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func (c *FileCache) Close() error { return nil }

// path spreads entries over 256 subdirectories by the key's hash.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:])
}

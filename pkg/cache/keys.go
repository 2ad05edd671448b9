package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys.
type Keyer interface {
	// TilingKey identifies a generated tiling by the hash of its inputs.
	TilingKey(inputHash string) string
	// ArtifactKey identifies one rendered output of a tiling.
	ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	View       string  `json:"view"`
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	CanvasSize int     `json:"canvas_size"`
	EdgeWidth  float64 `json:"edge_width"`
	Colorize   bool    `json:"colorize"`
	Label      bool    `json:"label"`
}

// DefaultKeyer produces unprefixed keys: "tiling:<hash>" and
// "artifact:<sha256 of hash and options>".
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) TilingKey(inputHash string) string {
	return "tiling:" + inputHash
}

func (DefaultKeyer) ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string {
	h, err := HashJSON(struct {
		Tiling string          `json:"tiling"`
		Opts   ArtifactKeyOpts `json:"opts"`
	}{tilingHash, opts})
	if err != nil {
		// ArtifactKeyOpts holds only plain fields; encoding cannot fail.
		panic(err)
	}
	return "artifact:" + h
}

// ScopedKeyer prepends a fixed prefix to every key of an inner Keyer.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0@abc1234:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) TilingKey(inputHash string) string {
	return k.prefix + k.inner.TilingKey(inputHash)
}

func (k *ScopedKeyer) ArtifactKey(tilingHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tilingHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Struct fields encode in
// declaration order and map keys sorted, so equal values hash equally.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling"
)

// Format is a seed file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var extFormats = map[string]Format{
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
}

// SeedFile is a named list of seed rectangles.
type SeedFile struct {
	Name        string        `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Description string        `json:"description,omitempty" toml:"description" yaml:"description,omitempty"`
	Seeds       []tiling.Seed `json:"seeds" toml:"seeds" yaml:"seeds"`
}

// DetectFormat picks the encoding from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported seed file extension %q (use .toml, .yaml, .yml or .json)", ext)
}

// ReadSeeds decodes a seed file from r. TOML input with keys that do not map
// to a field is rejected so typos are not silently ignored.
func ReadSeeds(r io.Reader, format Format) (*SeedFile, error) {
	var sf SeedFile
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&sf)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys in seed file: %v", undecoded)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&sf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported seed format %q", format)
	}

	if err := tiling.ValidateSeeds(sf.Seeds); err != nil {
		return nil, err
	}
	return &sf, nil
}

// ImportSeeds reads the seed file at path. The file name without extension
// is used as the name when the file does not set one.
func ImportSeeds(path string) (*SeedFile, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "seed file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	sf, err := ReadSeeds(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sf, nil
}

// WriteSeeds encodes sf in the given format.
func WriteSeeds(sf *SeedFile, w io.Writer, format Format) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(sf)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(sf); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(sf)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported seed format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return nil
}

// ExportSeeds writes sf to path in the format implied by its extension.
func ExportSeeds(sf *SeedFile, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteSeeds(sf, f, format)
}

package io

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/render/sink"
)

// WriteArtifact writes data to path, creating parent directories.
func WriteArtifact(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// ExportDocument writes doc as JSON to path.
func ExportDocument(doc sink.Document, path string) error {
	data, err := sink.RenderJSON(doc)
	if err != nil {
		return err
	}
	return WriteArtifact(path, data)
}

// ImportDocument reads a document written by ExportDocument.
func ImportDocument(path string) (sink.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sink.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return sink.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return sink.ParseJSON(data)
}

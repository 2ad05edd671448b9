package sink

import (
	"encoding/json"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/propagate"
)

// Document is the JSON form of a generation result. It carries enough to
// re-render the tiling without regenerating it.
type Document struct {
	Preset     string               `json:"preset,omitempty"`
	Config     tiling.Config        `json:"config"`
	Iterations int                  `json:"iterations"`
	Converged  bool                 `json:"converged"`
	Conflicts  []propagate.Conflict `json:"conflicts,omitempty"`
	Rectangles []tiling.Rectangle   `json:"rectangles"`
	Edges      []tiling.Edge        `json:"edges,omitempty"`
}

// NewDocument packages a result with the configuration that produced it.
func NewDocument(preset string, cfg tiling.Config, res *tiling.Result) Document {
	return Document{
		Preset:     preset,
		Config:     cfg,
		Iterations: res.Iterations,
		Converged:  res.Converged,
		Conflicts:  res.Conflicts,
		Rectangles: res.Rectangles,
		Edges:      res.Edges,
	}
}

// RenderJSON encodes doc as indented JSON.
func RenderJSON(doc Document) ([]byte, error) {
	if doc.Rectangles == nil {
		doc.Rectangles = []tiling.Rectangle{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return append(data, '\n'), nil
}

// ParseJSON decodes a document written by RenderJSON.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tiling document")
	}
	if len(doc.Rectangles) == 0 {
		return Document{}, errors.New(errors.ErrCodeEmptyResult, "tiling document has no rectangles")
	}
	return doc, nil
}

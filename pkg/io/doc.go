// Package io reads seed files and writes generated artifacts.
//
// # Seed files
//
// A seed file names a set of initial rectangles placed at offsets from the
// grid center. TOML, YAML and JSON are accepted; the format is chosen by file
// extension.
//
//	name = "corner"
//	description = "three seeds around the center"
//
//	[[seeds]]
//	x = 0
//	y = 0
//	width = 9
//	height = 14
//
//	[[seeds]]
//	x = 1
//	y = 0
//	width = 13
//	height = 13
//
// The same document in YAML:
//
//	name: corner
//	seeds:
//	  - {x: 0, y: 0, width: 9, height: 14}
//	  - {x: 1, y: 0, width: 13, height: 13}
//
// Use [ImportSeeds] to read from a path or [ReadSeeds] to read from any
// io.Reader. Both reject unknown formats, empty seed lists and seeds with
// non-positive dimensions.
//
// # Documents
//
// [ExportDocument] and [ImportDocument] store a generation result as JSON
// (see [sink.Document]) so it can be re-rendered later without regenerating.
// [WriteArtifact] writes any rendered output, creating parent directories.
//
// [sink.Document]: github.com/matzehuels/rectile/pkg/render/sink.Document
package io

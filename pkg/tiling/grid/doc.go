// Package grid holds the per-run state of a tiling generation: a finite
// square array of cells addressed by physical index, with a fixed center.
//
// Logical coordinates are offsets from the center; physical indices are
// center + offset. Lookups outside [0, Dim()) return nil, which the rule and
// traversal code treat as "no cell".
//
// A Grid is owned by a single generation run and is not safe for concurrent
// use.
package grid

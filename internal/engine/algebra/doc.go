// Package algebra implements the selection-set algorithms built on the
// geometry primitives of package selection.
//
// Every function here is pure: it receives selection data already fetched
// from the editor and returns the new selection data. Fetching, applying and
// reporting are the caller's job.
//
// Geometry:
//
//   - Box: per-row rectangles clipped to line content.
//   - Invert: the complement of a selection set within the document.
//   - Join: the bounding envelope of every selection.
//   - KeepEvery: the first selection of each fixed-size chunk.
//
// Content:
//
//   - Set algebra over two keyed frequency maps (intersect, subtract, union, compare).
//   - Dedup: first occurrence of each key.
//   - Lookup: replace each selection with its value in a key/value table.
package algebra

// Package geometry provides handlers that reshape selections by position
// alone, without looking at their content:
//   - box: clip each selection to the rectangle of its columns
//   - invert: select everything that is not selected
//   - join: merge all selections into their bounding selection
//   - keep-every N: keep the first of every N selections
package geometry

// Package selection provides the coordinate model and geometry of editor
// selections.
//
// A selection is described by two positions on the document's (row, column)
// grid. Neither endpoint is privileged: the anchor may come before or after
// the cursor depending on the direction the user extended the selection.
//
// The package therefore separates two types:
//
//   - Desc: the raw descriptor as reported by the editor, endpoints in any order.
//   - Span: a normalized descriptor with Start <= End.
//
// All geometric operations (containment, intersection, partial union,
// subtraction, bounding box) are defined on Span, so a raw Desc cannot be
// compared geometrically without going through Sort first. Desc keeps thin
// wrappers that normalize both operands.
//
// Rows and columns are 0-based. Column arithmetic saturates at zero. The
// primitives know nothing about line lengths, so "end of line" and "column N"
// on adjacent rows are not recognized as touching.
//
// Reconcile pairs the content list (document order) with the descriptor list
// (rotated so the primary selection comes first) into a single ordered list.
package selection

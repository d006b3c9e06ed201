// Package setop provides handlers that compare selections by content.
//
// Every selection is reduced to a key before comparison: optionally trimmed,
// narrowed by a regular expression's first capture group, passed through a
// configured key script and case folded. Handlers:
//   - set: intersect, subtract, union or compare two selection lists
//   - uniq: drop selections whose key was already seen
//   - xlookup: replace each selection with its value in a key/value register
package setop

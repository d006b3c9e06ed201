// Package pipe provides the pipe handler, which replaces every selection
// with the corresponding record produced by an external command.
//
// Selections are written to the command's stdin as null-terminated records
// and its stdout is read back the same way. The command must return exactly
// one record per selection.
package pipe

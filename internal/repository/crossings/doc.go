// Package crossings reads and writes the border-crossing log.
//
// The log is plain text, one record per line: a date in the configured
// layout followed by "in" or "out". FileRepository exposes the log through
// the Repository interface the services depend on.
package crossings

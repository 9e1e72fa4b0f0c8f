// Package query evaluates crossings on a remote residency server.
package query

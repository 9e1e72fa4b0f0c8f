// Package server runs the gRPC evaluation service.
//
// Requests either carry their own crossings or are evaluated against the
// server's crossing log. Outcomes are counted in Prometheus metrics served on
// a separate HTTP endpoint when one is configured.
package server

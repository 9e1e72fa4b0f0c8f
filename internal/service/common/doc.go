// Package common holds helpers shared by several services.
//
// It provides a gRPC client for the remote evaluation service and detects
// the current system actor (hostname/username) sent along with requests.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

// Package config defines the settings shared by the residency commands and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type points to the crossing log, describes its date layout and
// carries the addresses and schedule used by the serve, query and watch commands.
package config

// Package check evaluates the local crossing log and prints the verdict.
package check

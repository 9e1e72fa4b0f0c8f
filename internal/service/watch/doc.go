// Package watch re-evaluates the crossing log on a cron schedule and warns
// when the residency verdict changes between runs.
package watch

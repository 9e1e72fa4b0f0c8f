// Package record appends border crossings to the local log.
package record

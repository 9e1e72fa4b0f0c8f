// Package residency contains the day-accounting rules of the 183-day tax
// residency test.
//
// A crossing log is a list of Enter and Exit events. Evaluation sorts and
// validates the log, clips it to the rolling 12-month window ending on the
// evaluation date, pairs entries with exits and sums the days spent inside
// the country. Every function takes the evaluation date explicitly and never
// mutates its input, so one log can be evaluated for many dates concurrently.
package residency

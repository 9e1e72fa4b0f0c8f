// Package logger wraps zap for the residency binaries:
//   - a global sugared logger writing a console format to stderr,
//     so command output on stdout stays clean,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and switching,
//   - leveled helpers (Infof, WarnKV, ErrorKV, ...) that take a context.
//
// Services put a named logger into the context once and every helper
// below picks it up from there.
package logger

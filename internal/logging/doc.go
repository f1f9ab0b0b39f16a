// Package logging wires log/slog with the console and JSON handlers used by
// every reelid surface. The console handler prints one line per record with a
// component prefix; the JSON handler emits lowercase level names and RFC3339
// UTC timestamps. Attr helpers mirror the slog constructors so call sites stay
// terse.
package logging

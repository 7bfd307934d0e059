// Package faults defines the tagged error type shared by the parser,
// renderer, output sinks, and CLI.
//
// Every failure carries a Kind (input access, parse, missing field,
// configuration, output access, invalid field) plus the operation that
// raised it. Callers branch with KindOf or errors.Is against the exported
// markers; the CLI maps kinds to exit codes with ExitCode.
package faults

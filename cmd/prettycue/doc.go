// Package main hosts the prettycue CLI entrypoint and command graph.
//
// The root command reads one cue sheet, normalizes it, and writes the result
// to stdout, to --output, or back over the source with --overwrite. The
// inspect and config subcommands share the same configuration and logging
// setup through commandContext.
package main

// Package msf converts between absolute CD frame counts and the
// minutes:seconds:frames timecodes used by cue sheet INDEX lines.
//
// All arithmetic is integer division and modulo over a fixed rate of 75
// frames per second, so long discs never accumulate rounding drift. There is
// no hour field: a 120 minute position renders as 120:00:00.
package msf

// Package render serializes a cuesheet.Disc into the normalized cue layout:
// disc header lines, a single FILE line, then one TRACK block per track with
// two and four space indentation.
//
// Tracks are numbered by position, not by the numbers in the source. Track 1
// only carries INDEX 01; later tracks add INDEX 00 whenever the source
// defines a pre-gap. Required fields are never defaulted: a missing one
// fails the whole render with a faults.KindMissingField error and nothing is
// written to the sink.
package render

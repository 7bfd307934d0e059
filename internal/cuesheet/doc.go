// Package cuesheet parses CD cue sheets into an immutable disc model.
//
// Parse accepts the single-FILE sheets written by common rippers: disc
// CD-TEXT fields, REM remarks, and TRACK blocks with INDEX, PREGAP,
// POSTGAP, ISRC and FLAGS entries. Each track stores its start as the
// absolute frame of INDEX 00 when present (otherwise INDEX 01) and every
// index as an offset from that start.
//
// The Disc and TrackInfo interfaces are the read-only view consumed by the
// renderer; Sheet and Track implement them. Decode turns raw file bytes in
// legacy code pages into UTF-8 before parsing.
package cuesheet

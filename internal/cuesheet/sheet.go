package cuesheet

import "sort"

// Field names a CD-TEXT style command that carries a text value.
type Field string

const (
	FieldPerformer  Field = "PERFORMER"
	FieldTitle      Field = "TITLE"
	FieldSongwriter Field = "SONGWRITER"
	FieldGenre      Field = "GENRE"
	FieldCatalog    Field = "CATALOG"
	FieldCDTextFile Field = "CDTEXTFILE"
	FieldISRC       Field = "ISRC"
	FieldFlags      Field = "FLAGS"
	FieldPregap     Field = "PREGAP"
	FieldPostgap    Field = "POSTGAP"
)

// RemType is the first word of a REM line, upper-cased.
type RemType string

const (
	RemDate    RemType = "DATE"
	RemGenre   RemType = "GENRE"
	RemComment RemType = "COMMENT"
)

// Disc is the read-only query surface the renderer consumes. *Sheet is the
// parser-backed implementation; any other source of disc data can stand in.
type Disc interface {
	Text(field Field) (string, bool)
	Remark(kind RemType) (string, bool)
	Tracks() []TrackInfo
}

// TrackInfo is the per-track half of Disc.
type TrackInfo interface {
	Text(field Field) (string, bool)
	Filename() string
	// Start is the absolute frame of the track's earliest index.
	Start() int64
	// Index returns the offset of index n relative to Start.
	Index(n int) (int64, bool)
}

// File is a FILE directive: the referenced audio file and its type keyword.
type File struct {
	Name string
	Type string
}

// Sheet is a parsed cue sheet.
type Sheet struct {
	text    map[Field]string
	remarks map[RemType]string
	remKeys []RemType
	file    *File
	tracks  []*Track
}

func newSheet() *Sheet {
	return &Sheet{
		text:    make(map[Field]string),
		remarks: make(map[RemType]string),
	}
}

// Text returns a disc-level text field.
func (s *Sheet) Text(field Field) (string, bool) {
	v, ok := s.text[field]
	return v, ok
}

// Remark returns the value of a disc-level REM line.
func (s *Sheet) Remark(kind RemType) (string, bool) {
	v, ok := s.remarks[kind]
	return v, ok
}

// RemarkTypes lists REM types in source order.
func (s *Sheet) RemarkTypes() []RemType {
	out := make([]RemType, len(s.remKeys))
	copy(out, s.remKeys)
	return out
}

// File returns the sheet's FILE directive, if any.
func (s *Sheet) File() (File, bool) {
	if s.file == nil {
		return File{}, false
	}
	return *s.file, true
}

// Tracks implements Disc.
func (s *Sheet) Tracks() []TrackInfo {
	out := make([]TrackInfo, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t
	}
	return out
}

// TrackList returns the concrete tracks in disc order.
func (s *Sheet) TrackList() []*Track {
	out := make([]*Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Track is one TRACK block of a sheet.
type Track struct {
	// Number is the track number as written in the source, which the
	// renderer ignores in favor of position.
	Number int
	// DataType is the TRACK mode keyword, usually AUDIO.
	DataType string

	file    File
	text    map[Field]string
	remarks map[RemType]string
	remKeys []RemType
	start   int64
	indexes map[int]int64
}

// Text returns a track-level field.
func (t *Track) Text(field Field) (string, bool) {
	v, ok := t.text[field]
	return v, ok
}

// Remark returns a REM line written inside this track's block. Track
// remarks never stand in for disc-level ones.
func (t *Track) Remark(kind RemType) (string, bool) {
	v, ok := t.remarks[kind]
	return v, ok
}

// RemarkTypes returns the track's REM types in source order.
func (t *Track) RemarkTypes() []RemType {
	out := make([]RemType, len(t.remKeys))
	copy(out, t.remKeys)
	return out
}

// Filename returns the audio file the track lives in.
func (t *Track) Filename() string {
	return t.file.Name
}

// FileType returns the FILE type keyword (WAVE, MP3, BINARY, ...).
func (t *Track) FileType() string {
	return t.file.Type
}

// Start implements TrackInfo.
func (t *Track) Start() int64 {
	return t.start
}

// Index implements TrackInfo.
func (t *Track) Index(n int) (int64, bool) {
	v, ok := t.indexes[n]
	return v, ok
}

// IndexNumbers returns the defined index numbers in ascending order.
func (t *Track) IndexNumbers() []int {
	out := make([]int, 0, len(t.indexes))
	for n := range t.indexes {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

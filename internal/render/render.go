package render

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"prettycue/internal/cuesheet"
	"prettycue/internal/faults"
	"prettycue/internal/logging"
	"prettycue/internal/msf"
)

// Option configures a render call.
type Option func(*renderer)

// WithLogger routes render diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *renderer) {
		r.logger = logger
	}
}

type renderer struct {
	logger *slog.Logger
	buf    bytes.Buffer
}

// Render writes the normalized cue sheet for disc to w. The sheet is built
// in memory first; w receives a single write only after every field has
// been validated, so a failed render never leaves partial output behind.
func Render(w io.Writer, disc cuesheet.Disc, opts ...Option) error {
	r := &renderer{}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "render")

	if err := r.renderDisc(disc); err != nil {
		return err
	}
	if _, err := w.Write(r.buf.Bytes()); err != nil {
		return faults.Wrap(faults.KindOutputAccess, "write output", "", err)
	}
	return nil
}

// Bytes renders disc into a new byte slice.
func Bytes(disc cuesheet.Disc, opts ...Option) ([]byte, error) {
	var out bytes.Buffer
	if err := Render(&out, disc, opts...); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (r *renderer) renderDisc(disc cuesheet.Disc) error {
	performer, ok := disc.Text(cuesheet.FieldPerformer)
	if !ok {
		return faults.MissingField("performer")
	}
	title, ok := disc.Text(cuesheet.FieldTitle)
	if !ok {
		return faults.MissingField("title")
	}
	date, ok := disc.Remark(cuesheet.RemDate)
	if !ok {
		return faults.MissingField("date")
	}
	genre, ok := disc.Text(cuesheet.FieldGenre)
	if !ok {
		if genre, ok = disc.Remark(cuesheet.RemGenre); !ok {
			return faults.MissingField("genre")
		}
	}
	tracks := disc.Tracks()
	if len(tracks) == 0 {
		return faults.MissingField("track")
	}
	filename := tracks[0].Filename()
	if filename == "" {
		return faults.MissingField("file")
	}

	if err := r.line("", "PERFORMER", "performer", performer, ""); err != nil {
		return err
	}
	if err := r.line("", "TITLE", "title", title, ""); err != nil {
		return err
	}
	if err := r.line("", "REM DATE", "date", date, ""); err != nil {
		return err
	}
	if err := r.line("", "GENRE", "genre", genre, ""); err != nil {
		return err
	}
	if err := r.line("", "FILE", "file", filename, " WAVE"); err != nil {
		return err
	}
	r.noteDroppedDiscFields(disc, tracks[0])

	for i, track := range tracks {
		if err := r.renderTrack(i, track); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderTrack(position int, track cuesheet.TrackInfo) error {
	number := position + 1
	label := fmt.Sprintf("track %02d", number)

	title, ok := track.Text(cuesheet.FieldTitle)
	if !ok {
		return faults.MissingField(label + " title")
	}
	performer, ok := track.Text(cuesheet.FieldPerformer)
	if !ok {
		return faults.MissingField(label + " performer")
	}
	index1, ok := track.Index(1)
	if !ok {
		return faults.MissingField(label + " index 01")
	}

	fmt.Fprintf(&r.buf, "  TRACK %02d AUDIO\n", number)
	if err := r.line("    ", "TITLE", label+" title", title, ""); err != nil {
		return err
	}
	if err := r.line("    ", "PERFORMER", label+" performer", performer, ""); err != nil {
		return err
	}

	start := track.Start()
	if _, hasPregap := track.Index(0); hasPregap && position > 0 {
		fmt.Fprintf(&r.buf, "    INDEX 00 %s\n", msf.Format(start))
	}
	fmt.Fprintf(&r.buf, "    INDEX 01 %s\n", msf.Format(start+index1))

	r.logger.Debug("track rendered",
		logging.Int(logging.FieldTrack, number),
		logging.String("index_01", msf.Format(start+index1)),
	)
	r.noteDroppedTrackFields(number, track)
	return nil
}

// line appends `<indent><keyword> "<value>"<suffix>`.
func (r *renderer) line(indent, keyword, field, value, suffix string) error {
	if strings.ContainsRune(value, '"') {
		return faults.InvalidField(field, "contains a double quote")
	}
	if strings.ContainsAny(value, "\r\n") {
		return faults.InvalidField(field, "contains a line break")
	}
	r.buf.WriteString(indent)
	r.buf.WriteString(keyword)
	r.buf.WriteString(" \"")
	r.buf.WriteString(value)
	r.buf.WriteByte('"')
	r.buf.WriteString(suffix)
	r.buf.WriteByte('\n')
	return nil
}

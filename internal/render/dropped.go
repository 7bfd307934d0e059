package render

import (
	"fmt"
	"strings"

	"prettycue/internal/cuesheet"
	"prettycue/internal/logging"
)

type remarkLister interface {
	RemarkTypes() []cuesheet.RemType
}

type indexLister interface {
	IndexNumbers() []int
}

type fileTyper interface {
	FileType() string
}

var droppedDiscFields = []cuesheet.Field{
	cuesheet.FieldSongwriter,
	cuesheet.FieldCatalog,
	cuesheet.FieldCDTextFile,
}

var droppedTrackFields = []cuesheet.Field{
	cuesheet.FieldSongwriter,
	cuesheet.FieldISRC,
	cuesheet.FieldFlags,
	cuesheet.FieldPregap,
	cuesheet.FieldPostgap,
}

// noteDroppedDiscFields logs source data the normalized layout has no line for.
func (r *renderer) noteDroppedDiscFields(disc cuesheet.Disc, first cuesheet.TrackInfo) {
	var dropped []string
	if typer, ok := first.(fileTyper); ok {
		if kind := typer.FileType(); kind != "" && kind != "WAVE" {
			dropped = append(dropped, "FILE type "+kind)
		}
	}
	for _, field := range droppedDiscFields {
		if _, ok := disc.Text(field); ok {
			dropped = append(dropped, string(field))
		}
	}
	if lister, ok := disc.(remarkLister); ok {
		_, hasGenre := disc.Text(cuesheet.FieldGenre)
		for _, kind := range lister.RemarkTypes() {
			switch {
			case kind == cuesheet.RemDate:
			case kind == cuesheet.RemGenre && !hasGenre:
			default:
				dropped = append(dropped, "REM "+string(kind))
			}
		}
	}
	if len(dropped) == 0 {
		return
	}
	r.logger.Info("disc fields not carried into output",
		logging.String("fields", strings.Join(dropped, ", ")),
	)
}

func (r *renderer) noteDroppedTrackFields(number int, track cuesheet.TrackInfo) {
	var dropped []string
	for _, field := range droppedTrackFields {
		if _, ok := track.Text(field); ok {
			dropped = append(dropped, string(field))
		}
	}
	if lister, ok := track.(remarkLister); ok {
		for _, kind := range lister.RemarkTypes() {
			dropped = append(dropped, "REM "+string(kind))
		}
	}
	if lister, ok := track.(indexLister); ok {
		for _, n := range lister.IndexNumbers() {
			if n > 1 {
				dropped = append(dropped, fmt.Sprintf("INDEX %02d", n))
			}
		}
	}
	if len(dropped) == 0 {
		return
	}
	r.logger.Info("track fields not carried into output",
		logging.Int(logging.FieldTrack, number),
		logging.String("fields", strings.Join(dropped, ", ")),
	)
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prettycue/internal/cuesheet"
	"prettycue/internal/logging"
	"prettycue/internal/msf"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var encodingFlag string

	cmd := &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Show the disc fields and track layout of a cue sheet",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := requireInput(args); err != nil {
				return err
			}
			return validateEncodingLabel(encodingFlag)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base, closeLog, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			sheet, err := loadSheet(args[0], inputEncoding(cfg, encodingFlag), logging.NewComponentLogger(base, "inspect"))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writeDiscSummary(out, sheet)
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Source", "Title", "Performer", "INDEX 00", "INDEX 01", "Length"},
				trackRows(sheet.TrackList()),
				[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				isTerminal(out),
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&encodingFlag, "encoding", "", "Input encoding: auto or a WHATWG label such as shift_jis")
	return cmd
}

func writeDiscSummary(out io.Writer, sheet *cuesheet.Sheet) {
	value := func(v string, ok bool) string {
		if !ok {
			return "(missing)"
		}
		return v
	}
	genre, ok := sheet.Text(cuesheet.FieldGenre)
	if !ok {
		genre, ok = sheet.Remark(cuesheet.RemGenre)
	}
	file := "(missing)"
	if f, ok := sheet.File(); ok {
		file = f.Name
		if f.Type != "" {
			file += " (" + f.Type + ")"
		}
	}

	fmt.Fprintf(out, "Performer: %s\n", value(sheet.Text(cuesheet.FieldPerformer)))
	fmt.Fprintf(out, "Title:     %s\n", value(sheet.Text(cuesheet.FieldTitle)))
	fmt.Fprintf(out, "Date:      %s\n", value(sheet.Remark(cuesheet.RemDate)))
	fmt.Fprintf(out, "Genre:     %s\n", value(genre, ok))
	fmt.Fprintf(out, "File:      %s\n", file)
	fmt.Fprintf(out, "Tracks:    %d\n", len(sheet.TrackList()))
}

// trackRows lists tracks by position. Length runs from a track's INDEX 01
// to the next track's INDEX 01 and is unknown for the last track.
func trackRows(tracks []*cuesheet.Track) [][]string {
	rows := make([][]string, 0, len(tracks))
	for i, track := range tracks {
		title, _ := track.Text(cuesheet.FieldTitle)
		performer, _ := track.Text(cuesheet.FieldPerformer)

		pregap := "-"
		if _, ok := track.Index(0); ok {
			pregap = msf.Format(track.Start())
		}
		start := "-"
		length := "-"
		if offset, ok := track.Index(1); ok {
			position := track.Start() + offset
			start = msf.Format(position)
			if i+1 < len(tracks) {
				next := tracks[i+1]
				if nextOffset, ok := next.Index(1); ok {
					length = msf.Format(next.Start() + nextOffset - position)
				}
			}
		}

		source := strconv.Itoa(track.Number)
		if dataType := track.DataType; dataType != "" && !strings.EqualFold(dataType, "AUDIO") {
			source += " " + dataType
		}
		rows = append(rows, []string{
			fmt.Sprintf("%02d", i+1),
			source,
			title,
			performer,
			pregap,
			start,
			length,
		})
	}
	return rows
}

package main

import (
	"path/filepath"
	"strings"
	"testing"

	"prettycue/internal/faults"
	"prettycue/internal/fileutil"
	"prettycue/internal/testsupport"
)

const sourceSheet = `REM GENRE Rock
REM DATE 2020
PERFORMER "Artist"
TITLE "Album"
CATALOG 0000000000000
FILE "album.wav" WAVE
TRACK 01 AUDIO
  TITLE "One"
  PERFORMER "Artist"
  INDEX 01 00:00:00
TRACK 02 AUDIO
  TITLE "Two"
  PERFORMER "Artist"
  INDEX 00 03:00:00
  INDEX 01 03:02:00
`

const normalizedSheet = `PERFORMER "Artist"
TITLE "Album"
REM DATE "2020"
GENRE "Rock"
FILE "album.wav" WAVE
  TRACK 01 AUDIO
    TITLE "One"
    PERFORMER "Artist"
    INDEX 01 00:00:00
  TRACK 02 AUDIO
    TITLE "Two"
    PERFORMER "Artist"
    INDEX 00 03:00:00
    INDEX 01 03:02:00
`

func TestFormatToStdout(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	out, _, err := runCLI(t, input)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != normalizedSheet {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, normalizedSheet)
	}
	if testsupport.ReadFile(t, input) != sourceSheet {
		t.Fatal("stdout mode must not modify the input")
	}
}

func TestFormatSingleTrackScenario(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "single.cue")
	testsupport.WriteFile(t, input, "PERFORMER \"A\"\nTITLE \"B\"\nREM DATE \"2020-01-01\"\nGENRE \"Rock\"\nFILE \"album.wav\" WAVE\nTRACK 1 AUDIO\nTITLE \"T1\"\nPERFORMER \"A\"\nINDEX 01 00:00:00\n")

	out, _, err := runCLI(t, input)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "PERFORMER \"A\"\nTITLE \"B\"\nREM DATE \"2020-01-01\"\nGENRE \"Rock\"\nFILE \"album.wav\" WAVE\n" +
		"  TRACK 01 AUDIO\n    TITLE \"T1\"\n    PERFORMER \"A\"\n    INDEX 01 00:00:00\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatToOutputPath(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	target := filepath.Join(dir, "clean.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	out, _, err := runCLI(t, input, "--output", target)
	if err != nil {
		t.Fatalf("format --output: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty stdout, got %q", out)
	}
	if got := testsupport.ReadFile(t, target); got != normalizedSheet {
		t.Fatalf("unexpected file content:\n%s", got)
	}
	if names := testsupport.ListDir(t, dir); strings.Join(names, ",") != "album.cue,clean.cue" {
		t.Fatalf("unexpected directory contents: %v", names)
	}
}

func TestFormatOverwriteWithBackup(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	if _, _, err := runCLI(t, input, "--overwrite", "--backup"); err != nil {
		t.Fatalf("format --overwrite: %v", err)
	}
	if got := testsupport.ReadFile(t, input); got != normalizedSheet {
		t.Fatalf("unexpected overwritten content:\n%s", got)
	}
	if got := testsupport.ReadFile(t, input+".bak"); got != sourceSheet {
		t.Fatalf("backup does not match the original:\n%s", got)
	}
	if names := testsupport.ListDir(t, dir); strings.Join(names, ",") != "album.cue,album.cue.bak" {
		t.Fatalf("unexpected directory contents: %v", names)
	}
}

func TestFormatOverwriteIsIdempotent(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	for i := range 2 {
		if _, _, err := runCLI(t, input, "--overwrite"); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
		if got := testsupport.ReadFile(t, input); got != normalizedSheet {
			t.Fatalf("run %d produced:\n%s", i+1, got)
		}
	}
}

func TestFormatMissingGenreLeavesSourceUntouched(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	source := strings.Replace(sourceSheet, "REM GENRE Rock\n", "", 1)
	testsupport.WriteFile(t, input, source)

	_, _, err := runCLI(t, input, "--overwrite")
	if faults.KindOf(err) != faults.KindMissingField {
		t.Fatalf("expected missing-field error, got %v", err)
	}
	requireContains(t, err.Error(), "genre is not found")
	if faults.ExitCode(err) != 1 {
		t.Fatalf("exit code: got %d want 1", faults.ExitCode(err))
	}
	if testsupport.ReadFile(t, input) != source {
		t.Fatal("input modified after a failed render")
	}
	if names := testsupport.ListDir(t, dir); strings.Join(names, ",") != "album.cue" {
		t.Fatalf("expected no leftover files, got %v", names)
	}
}

func TestFormatConflictingOutputFlags(t *testing.T) {
	dir := testsupport.Isolate(t)
	// The input does not exist: the conflict must be reported before any read.
	input := filepath.Join(dir, "missing.cue")
	target := filepath.Join(dir, "out.cue")

	_, _, err := runCLI(t, input, "--output", target, "--overwrite")
	if faults.KindOf(err) != faults.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if faults.ExitCode(err) != 2 {
		t.Fatalf("exit code: got %d want 2", faults.ExitCode(err))
	}
	if names := testsupport.ListDir(t, dir); len(names) != 0 {
		t.Fatalf("expected no files created, got %v", names)
	}
}

func TestFormatArgumentErrors(t *testing.T) {
	testsupport.Isolate(t)
	tests := []struct {
		name string
		args []string
		kind faults.Kind
	}{
		{name: "no input", args: nil, kind: faults.KindConfiguration},
		{name: "two inputs", args: []string{"a.cue", "b.cue"}, kind: faults.KindConfiguration},
		{name: "backup without overwrite", args: []string{"a.cue", "--backup"}, kind: faults.KindConfiguration},
		{name: "unknown encoding", args: []string{"a.cue", "--encoding", "klingon"}, kind: faults.KindConfiguration},
		{name: "bad log level", args: []string{"a.cue", "--log-level", "loud"}, kind: faults.KindConfiguration},
		{name: "missing input", args: []string{"a.cue"}, kind: faults.KindInputAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if got := faults.KindOf(err); got != tt.kind {
				t.Fatalf("kind: got %v want %v (err %v)", got, tt.kind, err)
			}
		})
	}
}

func TestFormatParseError(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "broken.cue")
	testsupport.WriteFile(t, input, "PERFORMER \"A\"\nFILE \"a.wav\" WAVE\nTRACK 01 AUDIO\nINDEX 01 00:61:00\n")

	_, _, err := runCLI(t, input)
	if faults.KindOf(err) != faults.KindParse {
		t.Fatalf("expected parse error, got %v", err)
	}
	requireContains(t, err.Error(), "line 4")
}

func TestFormatDecodesLegacyEncoding(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "latin.cue")
	source := strings.Replace(sourceSheet, `TITLE "Album"`, "TITLE \"Caf\xe9\"", 1)
	testsupport.WriteFile(t, input, source)

	out, _, err := runCLI(t, input)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	requireContains(t, out, "TITLE \"Café\"\n")

	out, _, err = runCLI(t, input, "--encoding", "iso-8859-1")
	if err != nil {
		t.Fatalf("format --encoding: %v", err)
	}
	requireContains(t, out, "TITLE \"Café\"\n")
}

func TestFormatLockedDestination(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	lock, err := fileutil.AcquireLock(input)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer lock.Release()

	_, stderr, err := runCLI(t, input, "--overwrite", "--log-level", "debug")
	if faults.KindOf(err) != faults.KindOutputAccess {
		t.Fatalf("expected output-access error, got %v", err)
	}
	if testsupport.ReadFile(t, input) != sourceSheet {
		t.Fatal("input modified while locked")
	}
	requireContains(t, stderr, "[cli] – commit failed")
	requireContains(t, stderr, "- error: ")
}

func TestFormatLogsToStderr(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	out, stderr, err := runCLI(t, input, "--log-level", "debug")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != normalizedSheet {
		t.Fatalf("diagnostics leaked into stdout:\n%s", out)
	}
	requireContains(t, stderr, "DEBUG [render] – track rendered")
	requireContains(t, stderr, "INFO [render] – disc fields not carried into output")
	requireContains(t, stderr, "- fields: CATALOG")
}

func TestFormatLogsDroppedFileTypeAndTrackRemarks(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	source := strings.Replace(sourceSheet, `FILE "album.wav" WAVE`, `FILE "album.wav" MP3`, 1)
	source = strings.Replace(source, "  TITLE \"One\"\n", "  TITLE \"One\"\n  REM DATE 1999\n", 1)
	testsupport.WriteFile(t, input, source)

	out, stderr, err := runCLI(t, input, "--log-level", "info")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != normalizedSheet {
		t.Fatalf("unexpected output:\n%s", out)
	}
	requireContains(t, stderr, "- fields: FILE type MP3, CATALOG")
	requireContains(t, stderr, "- fields: REM DATE")
}

func TestFormatUsesConfigFile(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	logPath := filepath.Join(dir, "logs", "prettycue.log")
	testsupport.WriteFile(t, input, sourceSheet)
	cfgPath := testsupport.WriteConfig(t, t.TempDir(),
		testsupport.WithBackup(),
		testsupport.WithLogLevel("info"),
		testsupport.WithLogFile(logPath),
	)

	if _, _, err := runCLI(t, "--config", cfgPath, input, "--overwrite"); err != nil {
		t.Fatalf("format: %v", err)
	}
	if got := testsupport.ReadFile(t, input+".bak"); got != sourceSheet {
		t.Fatalf("expected backup from config, got:\n%s", got)
	}
	requireContains(t, testsupport.ReadFile(t, logPath), "[cli] – sheet written")
}

func TestFormatInvalidConfigFile(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	cfgPath := filepath.Join(dir, "bad.toml")
	testsupport.WriteFile(t, input, sourceSheet)
	testsupport.WriteFile(t, cfgPath, "[logging]\nformat = \"xml\"\n")

	_, _, err := runCLI(t, "--config", cfgPath, input)
	if faults.ExitCode(err) != 2 {
		t.Fatalf("expected configuration exit code, got %d (%v)", faults.ExitCode(err), err)
	}
}

func TestInspectPrintsTrackTable(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, sourceSheet)

	out, _, err := runCLI(t, "inspect", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Performer: Artist")
	requireContains(t, out, "Genre:     Rock")
	requireContains(t, out, "Tracks:    2")
	requireContains(t, out, "Two")
	requireContains(t, out, "03:02:00")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes when stdout is not a terminal, got %q", out)
	}
}

func TestInspectReportsMissingFieldsWithoutFailing(t *testing.T) {
	dir := testsupport.Isolate(t)
	input := filepath.Join(dir, "album.cue")
	testsupport.WriteFile(t, input, strings.Replace(sourceSheet, "REM DATE 2020\n", "", 1))

	out, _, err := runCLI(t, "inspect", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Date:      (missing)")
}

func TestVersionFlag(t *testing.T) {
	testsupport.Isolate(t)
	out, _, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	requireContains(t, out, "prettycue version "+version)
}

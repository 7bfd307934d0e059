package cuesheet

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"prettycue/internal/faults"
	"prettycue/internal/msf"
)

// Parse reads a complete cue sheet. Syntax problems are reported as
// faults.KindParse errors carrying the line number.
func Parse(r io.Reader) (*Sheet, error) {
	p := &parser{sheet: newSheet()}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		text := scanner.Text()
		if p.line == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if err := p.readCommand(text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, faults.Wrap(faults.KindParse, "read cue sheet", "", err)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.sheet, nil
}

// ParseString is Parse over an in-memory sheet.
func ParseString(text string) (*Sheet, error) {
	return Parse(strings.NewReader(text))
}

type parser struct {
	sheet *Sheet
	line  int
	track *Track
	// absolute index positions per track, resolved in finish
	abs []map[int]int64
}

func (p *parser) errorf(format string, args ...any) error {
	return faults.Wrap(faults.KindParse, fmt.Sprintf("line %d", p.line), fmt.Sprintf(format, args...), nil)
}

func (p *parser) readCommand(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	tokens, err := tokenize(line)
	if err != nil {
		return p.errorf("%v", err)
	}
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch cmd {
	case "REM":
		return p.readRemark(args)
	case "FILE":
		return p.readFile(args)
	case "TRACK":
		return p.readTrack(args)
	case "INDEX":
		return p.readIndex(args)
	case "PREGAP", "POSTGAP":
		return p.readGap(Field(cmd), args)
	case "TITLE", "PERFORMER", "SONGWRITER":
		return p.readText(Field(cmd), args)
	case "GENRE", "CATALOG", "CDTEXTFILE":
		if p.track != nil {
			return p.errorf("%s is only valid before the first TRACK", cmd)
		}
		return p.readText(Field(cmd), args)
	case "ISRC", "FLAGS":
		if p.track == nil {
			return p.errorf("%s outside of a TRACK", cmd)
		}
		return p.readText(Field(cmd), args)
	default:
		return p.errorf("unknown command: %s", tokens[0])
	}
}

func (p *parser) readRemark(args []string) error {
	if len(args) == 0 {
		return nil
	}
	kind := RemType(strings.ToUpper(args[0]))
	value := strings.Join(args[1:], " ")
	if p.track != nil {
		if _, seen := p.track.remarks[kind]; !seen {
			p.track.remKeys = append(p.track.remKeys, kind)
		}
		p.track.remarks[kind] = value
		return nil
	}
	if _, seen := p.sheet.remarks[kind]; !seen {
		p.sheet.remKeys = append(p.sheet.remKeys, kind)
	}
	p.sheet.remarks[kind] = value
	return nil
}

func (p *parser) readFile(args []string) error {
	if len(args) < 1 {
		return p.errorf("FILE requires a file name")
	}
	file := File{Name: args[0]}
	if len(args) > 1 {
		file.Type = strings.ToUpper(args[len(args)-1])
		if len(args) > 2 {
			file.Name = strings.Join(args[:len(args)-1], " ")
		}
	}
	if p.sheet.file != nil && p.sheet.file.Name != file.Name {
		return p.errorf("multiple FILE directives are not supported (%q after %q)", file.Name, p.sheet.file.Name)
	}
	p.sheet.file = &file
	return nil
}

func (p *parser) readTrack(args []string) error {
	if p.sheet.file == nil {
		return p.errorf("TRACK before FILE")
	}
	if len(args) < 1 {
		return p.errorf("TRACK requires a number")
	}
	number, err := strconv.Atoi(args[0])
	if err != nil || number < 1 {
		return p.errorf("invalid TRACK number %q", args[0])
	}
	dataType := "AUDIO"
	if len(args) > 1 {
		dataType = strings.ToUpper(args[1])
	}
	p.track = &Track{
		Number:   number,
		DataType: dataType,
		file:     *p.sheet.file,
		text:     make(map[Field]string),
		remarks:  make(map[RemType]string),
		indexes:  make(map[int]int64),
	}
	p.sheet.tracks = append(p.sheet.tracks, p.track)
	p.abs = append(p.abs, make(map[int]int64))
	return nil
}

func (p *parser) readIndex(args []string) error {
	if p.track == nil {
		return p.errorf("INDEX outside of a TRACK")
	}
	if len(args) < 2 {
		return p.errorf("INDEX requires a number and a time")
	}
	number, err := strconv.Atoi(args[0])
	if err != nil || number < 0 || number > 99 {
		return p.errorf("invalid INDEX number %q", args[0])
	}
	frames, err := msf.Parse(args[1])
	if err != nil {
		return p.errorf("%v", err)
	}
	current := p.abs[len(p.abs)-1]
	if _, dup := current[number]; dup {
		return p.errorf("duplicate INDEX %02d in TRACK %02d", number, p.track.Number)
	}
	current[number] = frames
	return nil
}

func (p *parser) readGap(field Field, args []string) error {
	if p.track == nil {
		return p.errorf("%s outside of a TRACK", field)
	}
	if len(args) < 1 {
		return p.errorf("%s requires a time", field)
	}
	frames, err := msf.Parse(args[0])
	if err != nil {
		return p.errorf("%v", err)
	}
	p.track.text[field] = msf.Format(frames)
	return nil
}

func (p *parser) readText(field Field, args []string) error {
	if len(args) == 0 {
		return p.errorf("%s requires a value", field)
	}
	value := strings.Join(args, " ")
	if p.track != nil {
		p.track.text[field] = value
		return nil
	}
	p.sheet.text[field] = value
	return nil
}

// finish resolves absolute INDEX positions into a start frame plus
// start-relative offsets for every track.
func (p *parser) finish() error {
	for i, track := range p.sheet.tracks {
		abs := p.abs[i]
		start, ok := trackStart(abs)
		if !ok {
			continue
		}
		track.start = start
		for n, frames := range abs {
			if frames < start {
				return faults.Wrap(faults.KindParse, fmt.Sprintf("track %02d", track.Number),
					fmt.Sprintf("INDEX %02d precedes the track start", n), nil)
			}
			track.indexes[n] = frames - start
		}
	}
	return nil
}

func trackStart(abs map[int]int64) (int64, bool) {
	if v, ok := abs[0]; ok {
		return v, true
	}
	if v, ok := abs[1]; ok {
		return v, true
	}
	first := true
	var start int64
	for _, v := range abs {
		if first || v < start {
			start = v
			first = false
		}
	}
	return start, !first
}

// tokenize splits a cue line into words. Double-quoted strings form a
// single token without their quotes and may be empty.
func tokenize(line string) ([]string, error) {
	var tokens []string
	runes := []rune(line)
	pos := 0
	for pos < len(runes) {
		for pos < len(runes) && unicode.IsSpace(runes[pos]) {
			pos++
		}
		if pos == len(runes) {
			break
		}
		if runes[pos] == '"' {
			end := pos + 1
			for end < len(runes) && runes[end] != '"' {
				end++
			}
			if end == len(runes) {
				return nil, fmt.Errorf("string not closed: [%s]", string(runes[pos:]))
			}
			tokens = append(tokens, string(runes[pos+1:end]))
			pos = end + 1
			continue
		}
		end := pos + 1
		for end < len(runes) && !unicode.IsSpace(runes[end]) {
			end++
		}
		tokens = append(tokens, string(runes[pos:end]))
		pos = end
	}
	return tokens, nil
}

package cuesheet

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingAuto selects UTF-8 when the input is valid UTF-8 (after any BOM)
// and Windows-1252 otherwise, which covers most ripper-generated sheets.
const EncodingAuto = "auto"

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "windows-1252" or "shift_jis". EncodingAuto and "" resolve to nil.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == EncodingAuto {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// Decode converts raw cue sheet bytes into UTF-8 text. A leading byte
// order mark always takes precedence over the requested label.
func Decode(raw []byte, label string) (string, error) {
	enc, err := LookupEncoding(label)
	if err != nil {
		return "", err
	}
	if enc == nil {
		if !hasBOM(raw) && utf8.Valid(raw) {
			return string(raw), nil
		}
		enc = charmap.Windows1252
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("decode input: %w", err)
	}
	return string(out), nil
}

func hasBOM(raw []byte) bool {
	switch {
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		return true
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return true
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return true
	}
	return false
}

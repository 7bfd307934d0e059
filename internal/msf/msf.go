package msf

import (
	"fmt"
	"strconv"
	"strings"
)

// FramesPerSecond is the CD-DA frame rate. A frame (sector) is 1/75th of a
// second and is the smallest addressable position in a cue sheet.
const FramesPerSecond = 75

// SecondsPerMinute is the seconds field modulus.
const SecondsPerMinute = 60

// FramesPerMinute is the number of frames in one minute of audio.
const FramesPerMinute = FramesPerSecond * SecondsPerMinute

// Timecode is a disc position split into minutes, seconds and frames.
// Seconds is always in [0, 60) and Frames in [0, 75); Minutes is unbounded.
type Timecode struct {
	Minutes int64
	Seconds int64
	Frames  int64
}

// FromFrames converts an absolute frame count into a Timecode.
// Negative counts clamp to zero.
func FromFrames(frames int64) Timecode {
	if frames < 0 {
		frames = 0
	}
	totalSeconds := frames / FramesPerSecond
	return Timecode{
		Minutes: totalSeconds / SecondsPerMinute,
		Seconds: totalSeconds % SecondsPerMinute,
		Frames:  frames % FramesPerSecond,
	}
}

// TotalFrames converts the timecode back into an absolute frame count.
func (t Timecode) TotalFrames() int64 {
	return t.Minutes*FramesPerMinute + t.Seconds*FramesPerSecond + t.Frames
}

// String renders the timecode as MM:SS:FF. Minutes widen past two digits
// for positions beyond 99 minutes.
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minutes, t.Seconds, t.Frames)
}

// Format is shorthand for FromFrames(frames).String().
func Format(frames int64) string {
	return FromFrames(frames).String()
}

// Parse reads an MM:SS:FF timecode and returns its absolute frame count.
// Minutes take one or more digits; seconds and frames exactly two.
func Parse(value string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("wrong time format: %q", value)
	}
	if parts[0] == "" || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return 0, fmt.Errorf("wrong time format: %q", value)
	}
	fields := make([]int64, 3)
	for i, part := range parts {
		for _, r := range part {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("wrong time format: %q", value)
			}
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("wrong time format: %q: %w", value, err)
		}
		fields[i] = n
	}
	if fields[1] >= SecondsPerMinute {
		return 0, fmt.Errorf("seconds out of range in %q", value)
	}
	if fields[2] >= FramesPerSecond {
		return 0, fmt.Errorf("frames out of range in %q", value)
	}
	return Timecode{Minutes: fields[0], Seconds: fields[1], Frames: fields[2]}.TotalFrames(), nil
}

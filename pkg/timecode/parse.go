package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTimecode is returned when a timecode string cannot be parsed.
var ErrInvalidTimecode = errors.New("invalid timecode")

// Parse reads "HH:MM:SS", "HH:MM:SS:FF" or "HH:MM:SS:FF:NNNNNNNNN" and
// normalizes the result at fr.
func Parse(s string, fr Framerate) (Timecode, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 3 || len(parts) > 5 {
		return Timecode{}, fmt.Errorf("%w: %q", ErrInvalidTimecode, s)
	}

	var fields [5]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return Timecode{}, fmt.Errorf("%w: %q: %v", ErrInvalidTimecode, s, err)
		}
		fields[i] = v
	}

	return New(fields[0], fields[1], fields[2], fields[3], fields[4], fr), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string, fr Framerate) Timecode {
	t, err := Parse(s, fr)
	if err != nil {
		panic(err)
	}
	return t
}

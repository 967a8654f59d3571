package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrShorthand is returned for animation shorthands that cannot be decoded.
var ErrShorthand = errors.New("timeline: invalid animation shorthand")

// Infinite is the Count of an endlessly repeating animation.
const Infinite = -1

// Shorthand is a decoded CSS animation shorthand of the form
// "<name> <duration> <easing> <delay> <count> <direction> <fill-mode>".
type Shorthand struct {
	Name      string
	Duration  time.Duration
	Easing    string
	Delay     time.Duration
	Count     int
	Direction string
	FillMode  string
}

// ParseShorthand decodes s. Only the seven-token form is accepted.
func ParseShorthand(s string) (Shorthand, error) {
	f := strings.Fields(s)
	if len(f) != 7 {
		return Shorthand{}, fmt.Errorf("%w: %q: want 7 fields, got %d", ErrShorthand, s, len(f))
	}
	dur, err := time.ParseDuration(f[1])
	if err != nil || dur <= 0 {
		return Shorthand{}, fmt.Errorf("%w: duration %q", ErrShorthand, f[1])
	}
	delay, err := time.ParseDuration(f[3])
	if err != nil || delay < 0 {
		return Shorthand{}, fmt.Errorf("%w: delay %q", ErrShorthand, f[3])
	}
	count := Infinite
	if f[4] != "infinite" {
		count, err = strconv.Atoi(f[4])
		if err != nil || count <= 0 {
			return Shorthand{}, fmt.Errorf("%w: count %q", ErrShorthand, f[4])
		}
	}
	return Shorthand{
		Name:      f[0],
		Duration:  dur,
		Easing:    f[2],
		Delay:     delay,
		Count:     count,
		Direction: f[5],
		FillMode:  f[6],
	}, nil
}

// Infinite reports whether the animation never ends.
func (s Shorthand) Infinite() bool { return s.Count == Infinite }

// End returns the active time after which the animation has finished.
// The second result is false for infinite animations.
func (s Shorthand) End() (time.Duration, bool) {
	if s.Infinite() {
		return 0, false
	}
	return s.Delay + s.Duration*time.Duration(s.Count), true
}

// EndTime decodes shorthand and returns its end time.
func EndTime(shorthand string) (time.Duration, bool) {
	s, err := ParseShorthand(shorthand)
	if err != nil {
		return 0, false
	}
	return s.End()
}

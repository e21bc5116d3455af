package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mapreel/mapreel/election"
	"github.com/mapreel/mapreel/playback"
	"github.com/samber/mo"
)

type Options struct {
	Out     io.Writer
	Json    bool
	Range   mo.Option[playback.Range]
	Overlay bool
	// Interval between frames. Zero writes them as fast as they render.
	Interval time.Duration
	// Scheduler replaces the ticker, for tests.
	Scheduler playback.Scheduler
}

// ParseRange parses a frame selection within bounds.
// Format: "all", "first", "last", "5", "1-5", "1860", "1860-1900".
// Numbers that are election years select the frame of that year.
func ParseRange(description string, bounds playback.Range) (playback.Range, error) {
	description = strings.TrimSpace(description)

	switch description {
	case "", "all":
		return bounds, nil
	case "first":
		return playback.Range{Min: bounds.Min, Max: bounds.Min}, nil
	case "last":
		return playback.Range{Min: bounds.Max, Max: bounds.Max}, nil
	}

	from, to, isRange := strings.Cut(description, "-")
	if !isRange {
		to = from
	}

	a, err := parseFrame(from, bounds)
	if err != nil {
		return playback.Range{}, err
	}

	b, err := parseFrame(to, bounds)
	if err != nil {
		return playback.Range{}, err
	}

	r := playback.Range{Min: a, Max: b}
	if err := r.Validate(); err != nil {
		return playback.Range{}, err
	}

	return r, nil
}

func parseFrame(value string, bounds playback.Range) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid frame: %s", value)
	}

	if bounds.Contains(n) {
		return n, nil
	}

	if index, ok := election.Index(n); ok && bounds.Contains(index) {
		return index, nil
	}

	return 0, fmt.Errorf("frame %d is outside %s", n, bounds)
}

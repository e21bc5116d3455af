package playback

import (
	"fmt"

	"github.com/mapreel/mapreel/util"
)

// Range is the inclusive span of frame indices a controller may display.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Validate reports an inverted range.
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("invalid range [%d, %d]: min is greater than max", r.Min, r.Max)
	}
	return nil
}

// Contains reports whether i is inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Min && i <= r.Max
}

// Clamp bounds i to the range.
func (r Range) Clamp(i int) int {
	return util.Clamp(i, r.Min, r.Max)
}

// Len is the number of frames in the range.
func (r Range) Len() int {
	return r.Max - r.Min + 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

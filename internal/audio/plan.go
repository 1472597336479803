package audio

import (
	"fmt"
	"time"
)

// Window is a half-open time interval [Start, End) within the source audio.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End - w.Start
}

// PlanWindows computes the fixed-length split plan for audio of the given
// total duration. Windows are contiguous and non-overlapping, their union is
// exactly [0, total), and every window is chunkLength long except the last,
// which is clamped to the end of the audio.
func PlanWindows(total, chunkLength time.Duration) ([]Window, error) {
	if chunkLength <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidChunkLength, chunkLength)
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total %v", ErrZeroDuration, total)
	}

	var windows []Window
	for start := time.Duration(0); start < total; start += chunkLength {
		windows = append(windows, Window{
			Start: start,
			End:   min(start+chunkLength, total),
		})
	}
	return windows, nil
}

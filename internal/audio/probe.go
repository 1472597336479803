package audio

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/pverger/transcribe/internal/ffmpeg"
)

// Compile-time interface implementation check.
var _ Prober = (*FFmpegProber)(nil)

// Prober reports the total duration of an audio file.
type Prober interface {
	// Probe returns the duration of audioPath as reported by the media tool.
	Probe(ctx context.Context, audioPath string) (time.Duration, error)
}

// FFmpegProber reads stream metadata by running ffmpeg against the input.
// One binary serves both probing and splitting, so ffprobe is not required.
type FFmpegProber struct {
	ffmpegPath string

	// Injectable dependency (defaults to the OS implementation).
	cmd commandRunner
}

// ProberOption configures an FFmpegProber.
type ProberOption func(*FFmpegProber)

// WithProberCommandRunner sets the command runner for FFmpegProber.
func WithProberCommandRunner(r commandRunner) ProberOption {
	return func(p *FFmpegProber) {
		p.cmd = r
	}
}

// NewFFmpegProber creates an FFmpegProber for the given ffmpeg binary.
func NewFFmpegProber(ffmpegPath string, opts ...ProberOption) (*FFmpegProber, error) {
	if ffmpegPath == "" {
		return nil, fmt.Errorf("ffmpegPath cannot be empty: %w", ffmpeg.ErrNotFound)
	}

	p := &FFmpegProber{
		ffmpegPath: ffmpegPath,
		cmd:        osCommandRunner{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Probe returns the input duration.
// ffmpeg prints a "Duration: HH:MM:SS.cc" header to stderr while decoding to
// the null muxer. It can exit non-zero and still print that header (for
// example on a truncated file), so output is parsed regardless of exit
// status; only a silent failure or an unparsable header is an error.
func (p *FFmpegProber) Probe(ctx context.Context, audioPath string) (time.Duration, error) {
	args := []string{
		"-i", audioPath,
		"-f", "null", "-",
	}
	output, err := p.cmd.CombinedOutput(ctx, p.ffmpegPath, args)
	if err != nil && len(output) == 0 {
		return 0, fmt.Errorf("%w: %v", ErrProbeFailed, err)
	}

	d, err := parseDurationFromFFmpegOutput(string(output))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProbeFailed, err)
	}
	return d, nil
}

// parseDurationFromFFmpegOutput extracts a duration from ffmpeg stderr.
// Looks for "Duration: HH:MM:SS.ms", falling back to the last "time=HH:MM:SS.ms"
// progress stamp when the header is absent.
func parseDurationFromFFmpegOutput(output string) (time.Duration, error) {
	durationRe := regexp.MustCompile(`Duration:\s*(\d+):(\d+):(\d+)\.(\d+)`)
	if matches := durationRe.FindStringSubmatch(output); matches != nil {
		return parseTimeComponents(matches[1], matches[2], matches[3], matches[4])
	}

	timeRe := regexp.MustCompile(`time=(\d+):(\d+):(\d+)\.(\d+)`)
	allMatches := timeRe.FindAllStringSubmatch(output, -1)
	if len(allMatches) > 0 {
		matches := allMatches[len(allMatches)-1]
		return parseTimeComponents(matches[1], matches[2], matches[3], matches[4])
	}

	return 0, fmt.Errorf("no duration in ffmpeg output")
}

// parseTimeComponents converts HH:MM:SS.ms strings to a Duration.
func parseTimeComponents(hours, minutes, seconds, fractional string) (time.Duration, error) {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)

	// Normalize the fractional part to milliseconds.
	// ffmpeg prints 1-6 digits depending on build (".4", ".45", ".456789").
	frac, _ := strconv.Atoi(fractional)
	ms := frac
	switch n := len(fractional); {
	case n == 1:
		ms = frac * 100
	case n == 2:
		ms = frac * 10
	case n == 3:
		// Already milliseconds.
	case n > 3:
		for i := n; i > 3; i-- {
			ms /= 10
		}
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}

package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pverger/transcribe/internal/ffmpeg"
)

// Compile-time interface implementation check.
var _ Splitter = (*FFmpegSplitter)(nil)

// Splitter cuts an audio file into chunk files following a split plan.
type Splitter interface {
	// Split cuts one chunk per plan window, in plan order.
	// Returns the chunks ordered by their position in the source audio.
	// The caller is responsible for cleaning up the chunk files.
	Split(ctx context.Context, audioPath string, plan []Window) ([]Chunk, error)
}

// FFmpegSplitter extracts chunks by stream copy. The source codec and
// container are preserved, so chunk files keep the original extension and
// stay within the formats the transcription API accepts.
type FFmpegSplitter struct {
	ffmpegPath string

	// Injectable dependencies (defaults to OS implementations).
	cmd     commandRunner
	tempDir tempDirCreator
	files   fileRemover
	statter fileStatter
}

// SplitterOption configures an FFmpegSplitter.
type SplitterOption func(*FFmpegSplitter)

// WithSplitterCommandRunner sets the command runner for FFmpegSplitter.
func WithSplitterCommandRunner(r commandRunner) SplitterOption {
	return func(s *FFmpegSplitter) {
		s.cmd = r
	}
}

// WithSplitterTempDir sets the temp directory creator for FFmpegSplitter.
func WithSplitterTempDir(t tempDirCreator) SplitterOption {
	return func(s *FFmpegSplitter) {
		s.tempDir = t
	}
}

// WithSplitterFileRemover sets the file remover for FFmpegSplitter.
func WithSplitterFileRemover(f fileRemover) SplitterOption {
	return func(s *FFmpegSplitter) {
		s.files = f
	}
}

// WithSplitterFileStatter sets the file statter for FFmpegSplitter.
func WithSplitterFileStatter(st fileStatter) SplitterOption {
	return func(s *FFmpegSplitter) {
		s.statter = st
	}
}

// NewFFmpegSplitter creates an FFmpegSplitter for the given ffmpeg binary.
func NewFFmpegSplitter(ffmpegPath string, opts ...SplitterOption) (*FFmpegSplitter, error) {
	if ffmpegPath == "" {
		return nil, fmt.Errorf("ffmpegPath cannot be empty: %w", ffmpeg.ErrNotFound)
	}

	s := &FFmpegSplitter{
		ffmpegPath: ffmpegPath,
		cmd:        osCommandRunner{},
		tempDir:    osTempDirCreator{},
		files:      osFileRemover{},
		statter:    osFileStatter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Split materializes every chunk of the plan into a fresh temp directory
// before returning. On the first failed extraction the directory is removed
// and the extraction error is returned; no partial chunk set survives.
func (s *FFmpegSplitter) Split(ctx context.Context, audioPath string, plan []Window) ([]Chunk, error) {
	if len(plan) == 0 {
		return nil, nil
	}

	tempDir, err := s.tempDir.MkdirTemp("", tempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	chunks := make([]Chunk, 0, len(plan))
	for i, w := range plan {
		chunkPath := filepath.Join(tempDir, chunkFileName(audioPath, i))
		if err := s.extractChunk(ctx, audioPath, chunkPath, w); err != nil {
			_ = s.files.RemoveAll(tempDir) // best-effort cleanup; extract error takes precedence
			return nil, err
		}
		if _, err := s.statter.Stat(chunkPath); err != nil {
			_ = s.files.RemoveAll(tempDir)
			return nil, fmt.Errorf("%w: chunk file missing after extraction: %s", ErrChunkingFailed, chunkPath)
		}

		chunks = append(chunks, Chunk{
			Path:      chunkPath,
			Index:     i,
			StartTime: w.Start,
			EndTime:   w.End,
		})
	}

	return chunks, nil
}

// extractChunk cuts the window out of audioPath into chunkPath.
// Stream copy needs no decode, so even hour-long inputs split in seconds.
func (s *FFmpegSplitter) extractChunk(ctx context.Context, audioPath, chunkPath string, w Window) error {
	args := []string{
		"-y",
		"-i", audioPath,
		"-ss", formatFFmpegTime(w.Start),
		"-t", formatFFmpegTime(w.Duration()),
		"-c", "copy",
		chunkPath,
	}

	output, err := s.cmd.CombinedOutput(ctx, s.ffmpegPath, args)
	if err != nil {
		return fmt.Errorf("%w: failed to extract chunk %s: %v\nOutput: %s",
			ErrChunkingFailed, chunkPath, err, string(output))
	}
	return nil
}

// chunkFileName returns the artifact name for chunk index i of the source
// file: "<stem>_chunk_NNN<ext>". The index is 1-based and zero-padded to
// three digits so lexical order matches plan order.
func chunkFileName(audioPath string, index int) string {
	base := filepath.Base(audioPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_chunk_%03d%s", stem, index+1, ext)
}

// formatFFmpegTime formats a duration for ffmpeg -ss/-t arguments.
func formatFFmpegTime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := d.Seconds() - float64(h*3600+m*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", h, m, s)
}

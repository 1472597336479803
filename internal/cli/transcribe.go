package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pverger/transcribe/internal/audio"
	"github.com/pverger/transcribe/internal/format"
	"github.com/pverger/transcribe/internal/transcribe"
)

// DefaultChunkLength is the chunk duration used when neither the
// --chunk-length flag nor the config file overrides it.
const DefaultChunkLength = 20 * time.Minute

// supportedFormats lists audio formats accepted by OpenAI's transcription API.
// Source: https://platform.openai.com/docs/guides/speech-to-text
var supportedFormats = map[string]bool{
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpga": true,
	".m4a":  true,
	".wav":  true,
	".webm": true,
}

// supportedFormatsList returns a sorted, comma-separated list for error messages.
// The list is sorted for deterministic output in tests and user-facing messages.
func supportedFormatsList() string {
	formats := make([]string, 0, len(supportedFormats))
	for ext := range supportedFormats {
		formats = append(formats, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(formats)
	return strings.Join(formats, ", ")
}

// deriveOutputPath converts an audio file path to a transcript output path
// in the same directory. Example: "talk.mp3" -> "talk.txt"
func deriveOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".txt"
}

// transcribeOptions holds validated inputs for a transcription run.
// A zero model or chunkLength means the flag was not given on the command
// line; runTranscribe falls back to the config file, then built-in defaults.
type transcribeOptions struct {
	inputPath   string
	model       transcribe.Model
	chunkLength time.Duration
	keepChunks  bool
}

// parseTranscribeOptions validates raw flag values into transcribeOptions.
// modelSet and chunkLengthSet report whether the user gave the flag
// explicitly; unset flags stay zero so config-file values can apply.
// Validation happens here, before any file or network I/O.
func parseTranscribeOptions(inputPath, model string, chunkLengthSec int, keepChunks, modelSet, chunkLengthSet bool) (transcribeOptions, error) {
	opts := transcribeOptions{
		inputPath:  inputPath,
		keepChunks: keepChunks,
	}

	if modelSet {
		m, err := transcribe.ParseModel(model)
		if err != nil {
			return transcribeOptions{}, err
		}
		opts.model = m
	}

	if chunkLengthSet {
		if chunkLengthSec <= 0 {
			return transcribeOptions{}, fmt.Errorf("%w: got %d seconds", audio.ErrInvalidChunkLength, chunkLengthSec)
		}
		opts.chunkLength = time.Duration(chunkLengthSec) * time.Second
	}

	return opts, nil
}

// TranscribeCmd creates the root transcribe command.
// The env parameter provides injectable dependencies for testing.
func TranscribeCmd(env *Env) *cobra.Command {
	var (
		model       string
		chunkLength int
		keepChunks  bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe an audio file to text",
		Long: `Transcribe an audio file using OpenAI's transcription API.

Audio longer than the API's per-request limit (25 minutes) is split into
fixed-length chunks with FFmpeg, transcribed chunk by chunk, and joined
back into a single transcript. The transcript is written next to the
input as <name>.txt and printed to stdout.

Supported formats: m4a, mp3, mp4, mpeg, mpga, wav, webm`,
		Example: `  transcribe talk.mp3
  transcribe lecture.m4a --model whisper-1
  transcribe interview.wav --chunk-length 600
  transcribe podcast.mp3 --keep-chunks`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseTranscribeOptions(args[0], model, chunkLength, keepChunks,
				cmd.Flags().Changed("model"), cmd.Flags().Changed("chunk-length"))
			if err != nil {
				return err
			}
			return runTranscribe(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", transcribe.DefaultModel.String(),
		"Transcription model: "+strings.Join(transcribe.Models(), ", "))
	cmd.Flags().IntVar(&chunkLength, "chunk-length", int(DefaultChunkLength/time.Second),
		"Chunk length in seconds for audio over the per-request limit")
	cmd.Flags().BoolVar(&keepChunks, "keep-chunks", false,
		"Keep chunk audio and per-chunk transcripts next to the input")

	return cmd
}

// runTranscribe executes the transcription pipeline.
// Validation order: file exists -> format -> config -> model -> chunk length -> API key
func runTranscribe(cmd *cobra.Command, env *Env, opts transcribeOptions) error {
	ctx := cmd.Context()
	start := env.Now()

	// === VALIDATION (fail-fast) ===

	// 1. Input exists and is a regular file
	info, err := os.Stat(opts.inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, opts.inputPath)
		}
		return fmt.Errorf("cannot access input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrFileNotFound, opts.inputPath)
	}

	// 2. Format supported
	ext := strings.ToLower(filepath.Ext(opts.inputPath))
	if !supportedFormats[ext] {
		return fmt.Errorf("unsupported format %q (supported: %s): %w",
			ext, supportedFormatsList(), ErrUnsupportedFormat)
	}

	// 3. Load config for model and chunk-length defaults
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	// 4. Resolve model: flag > config > built-in default
	model := opts.model
	if model.IsZero() && cfg.Model != "" {
		model, err = transcribe.ParseModel(cfg.Model)
		if err != nil {
			return fmt.Errorf("invalid model in config: %w", err)
		}
	}
	model = model.OrDefault()

	// 5. Resolve chunk length: flag > config > built-in default
	chunkLength := opts.chunkLength
	if chunkLength == 0 && cfg.ChunkLength != 0 {
		if cfg.ChunkLength < 0 {
			return fmt.Errorf("invalid chunk-length in config: %w: got %d seconds",
				audio.ErrInvalidChunkLength, cfg.ChunkLength)
		}
		chunkLength = time.Duration(cfg.ChunkLength) * time.Second
	}
	if chunkLength == 0 {
		chunkLength = DefaultChunkLength
	}
	if chunkLength > transcribe.MaxRequestDuration {
		fmt.Fprintf(env.Stderr, "Warning: chunk length %s exceeds the API per-request limit of %s\n",
			format.DurationHuman(chunkLength), format.DurationHuman(transcribe.MaxRequestDuration))
	}

	// 6. API key present
	apiKey := env.Getenv(EnvOpenAIAPIKey)
	if apiKey == "" {
		return fmt.Errorf("%w (set it with: export %s=sk-...)", ErrAPIKeyMissing, EnvOpenAIAPIKey)
	}

	// === SETUP ===

	ffmpegPath, err := env.FFmpegResolver.Resolve(ctx)
	if err != nil {
		return err
	}
	env.FFmpegResolver.CheckVersion(ctx, ffmpegPath)

	// === PROBE ===

	prober, err := env.ProberFactory.NewProber(ffmpegPath)
	if err != nil {
		return err
	}

	duration, err := prober.Probe(ctx, opts.inputPath)
	if err != nil {
		return err
	}
	if duration == 0 {
		return fmt.Errorf("%w: %s", audio.ErrZeroDuration, opts.inputPath)
	}

	fmt.Fprintf(env.Stderr, "Audio duration: %s\n", format.Duration(duration))

	// === TRANSCRIPTION ===

	transcriber := env.TranscriberFactory.NewTranscriber(apiKey)

	var results []string
	if duration > transcribe.MaxRequestDuration {
		results, err = transcribeChunked(ctx, env, transcriber, opts, ffmpegPath, duration, chunkLength, model)
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintln(env.Stderr, "Transcribing...")
		text, err := transcriber.Transcribe(ctx, opts.inputPath, model)
		if err != nil {
			return err
		}
		results = []string{text}
	}

	transcript := strings.Join(results, " ")
	fmt.Fprintln(env.Stderr, "Transcription complete")

	// === WRITE OUTPUT ===

	output := deriveOutputPath(opts.inputPath)
	if err := writeTranscript(output, transcript); err != nil {
		return err
	}

	// Stdout carries nothing but the transcript itself.
	fmt.Fprintln(env.Stdout, transcript)

	elapsed := env.Now().Sub(start)
	if size, err := fileSize(output); err == nil {
		fmt.Fprintf(env.Stderr, "Done: %s (%s, %s)\n", output, format.Size(size), format.DurationHuman(elapsed))
	} else {
		fmt.Fprintf(env.Stderr, "Done: %s (%s)\n", output, format.DurationHuman(elapsed))
	}
	return nil
}

// transcribeChunked splits audio that exceeds the per-request limit into
// fixed-length chunks and transcribes them one at a time, in chunk order.
// The chunk workspace is always removed; --keep-chunks copies the chunk
// audio and per-chunk transcripts next to the input first.
func transcribeChunked(ctx context.Context, env *Env, transcriber transcribe.Transcriber, opts transcribeOptions, ffmpegPath string, duration, chunkLength time.Duration, model transcribe.Model) ([]string, error) {
	plan, err := audio.PlanWindows(duration, chunkLength)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(env.Stderr, "Splitting audio into %d chunks of up to %s...\n",
		len(plan), format.DurationHuman(chunkLength))

	splitter, err := env.SplitterFactory.NewSplitter(ffmpegPath)
	if err != nil {
		return nil, err
	}

	chunks, err := splitter.Split(ctx, opts.inputPath, plan)
	if err != nil {
		return nil, err
	}

	// Ensure cleanup even on error or interrupt.
	defer func() {
		if cleanupErr := audio.CleanupChunks(chunks); cleanupErr != nil {
			fmt.Fprintf(env.Stderr, "Warning: failed to cleanup chunks: %v\n", cleanupErr)
		}
	}()

	progress := func(i, n int, _ string) {
		fmt.Fprintf(env.Stderr, "Transcribing chunk %d/%d...\n", i+1, n)
	}

	results, err := transcribe.TranscribeSequential(ctx, transcriber, audio.ChunkPaths(chunks), model, progress)
	if err != nil {
		return nil, err
	}

	if opts.keepChunks {
		if err := saveChunkArtifacts(opts.inputPath, chunks, results); err != nil {
			return nil, err
		}
		fmt.Fprintf(env.Stderr, "Chunks kept in %s\n", chunkArtifactsDir(opts.inputPath))
	}

	return results, nil
}

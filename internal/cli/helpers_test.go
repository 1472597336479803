package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pverger/transcribe/internal/audio"
	"github.com/pverger/transcribe/internal/config"
	"github.com/pverger/transcribe/internal/transcribe"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	ffmpegResolver *mockFFmpegResolver
	configLoader   *mockConfigLoader
	prober         *mockProberFactory
	splitter       *mockSplitterFactory
	transcriber    *mockTranscriberFactory
}

func newTestMocks() *testMocks {
	return &testMocks{
		ffmpegResolver: &mockFFmpegResolver{},
		configLoader:   &mockConfigLoader{},
		prober:         &mockProberFactory{},
		splitter:       &mockSplitterFactory{},
		transcriber:    &mockTranscriberFactory{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	now    func() time.Time
	mocks  *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

// withTestStdout routes the env's stdout to w.
func withTestStdout(w io.Writer) testEnvOption {
	return func(o *testEnvOptions) { o.stdout = w }
}

// withTestStderr routes the env's stderr to w.
func withTestStderr(w io.Writer) testEnvOption {
	return func(o *testEnvOptions) { o.stderr = w }
}

// withTestGetenv substitutes the environment lookup.
func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		stdout: &syncBuffer{},
		stderr: &syncBuffer{},
		getenv: defaultTestEnv,
		now: func() time.Time {
			return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
		},
		mocks: newTestMocks(),
	}

	for _, opt := range opts {
		opt(options)
	}

	env := &Env{
		Stdout:             options.stdout,
		Stderr:             options.stderr,
		Getenv:             options.getenv,
		Now:                options.now,
		FFmpegResolver:     options.mocks.ffmpegResolver,
		ConfigLoader:       options.mocks.configLoader,
		ProberFactory:      options.mocks.prober,
		SplitterFactory:    options.mocks.splitter,
		TranscriberFactory: options.mocks.transcriber,
	}

	return env, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// defaultTestEnv returns a fake OpenAI API key.
func defaultTestEnv(key string) string {
	if key == EnvOpenAIAPIKey {
		return "test-openai-key"
	}
	return ""
}

// createTestAudioFile creates a temporary audio file for testing.
// Returns the file path. The file is automatically cleaned up after the test.
func createTestAudioFile(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)

	// Write minimal content to make the file non-empty
	if err := os.WriteFile(path, []byte("fake audio content"), 0644); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

// configWith returns a ConfigLoader serving the given settings.
func configWith(model string, chunkLength int) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			return config.Config{Model: model, ChunkLength: chunkLength}, nil
		},
	}
}

// proberWithDuration returns a Prober that reports the given duration.
func proberWithDuration(d time.Duration) *mockProber {
	return &mockProber{
		ProbeFunc: func(ctx context.Context, audioPath string) (time.Duration, error) {
			return d, nil
		},
	}
}

// splitterCuttingChunks returns a Splitter that cuts real chunk files into a
// throwaway workspace, one chunk per planned window. The workspace directory
// carries the same name prefix as production chunk workspaces so
// audio.CleanupChunks removes it wholesale.
func splitterCuttingChunks(t *testing.T) *mockSplitter {
	t.Helper()
	return &mockSplitter{
		SplitFunc: func(ctx context.Context, audioPath string, plan []audio.Window) ([]audio.Chunk, error) {
			dir, err := os.MkdirTemp(t.TempDir(), "transcribe-*")
			if err != nil {
				t.Fatalf("failed to create chunk workspace: %v", err)
			}

			ext := filepath.Ext(audioPath)
			stem := strings.TrimSuffix(filepath.Base(audioPath), ext)
			chunks := make([]audio.Chunk, len(plan))
			for i, w := range plan {
				path := filepath.Join(dir, fmt.Sprintf("%s_chunk_%03d%s", stem, i+1, ext))
				if err := os.WriteFile(path, []byte("chunk audio"), 0644); err != nil {
					t.Fatalf("failed to create chunk file: %v", err)
				}
				chunks[i] = audio.Chunk{Path: path, Index: i, StartTime: w.Start, EndTime: w.End}
			}
			return chunks, nil
		},
	}
}

// transcriberByPath returns a Transcriber that answers with the fragment
// registered for each audio path's base name.
func transcriberByPath(fragments map[string]string) *mockTranscriber {
	return &mockTranscriber{
		TranscribeFunc: func(ctx context.Context, audioPath string, model transcribe.Model) (string, error) {
			if text, ok := fragments[filepath.Base(audioPath)]; ok {
				return text, nil
			}
			return "transcribed text", nil
		},
	}
}

package cli

import (
	"context"
	"sync"
	"time"

	"github.com/pverger/transcribe/internal/audio"
	"github.com/pverger/transcribe/internal/config"
	"github.com/pverger/transcribe/internal/transcribe"
)

// ---------------------------------------------------------------------------
// Mock FFmpegResolver
// ---------------------------------------------------------------------------

type mockFFmpegResolver struct {
	ResolveFunc      func(ctx context.Context) (string, error)
	CheckVersionFunc func(ctx context.Context, ffmpegPath string)

	mu           sync.Mutex
	resolveCalls int
}

func (m *mockFFmpegResolver) Resolve(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx)
	}
	return "/usr/bin/ffmpeg", nil
}

func (m *mockFFmpegResolver) CheckVersion(ctx context.Context, ffmpegPath string) {
	if m.CheckVersionFunc != nil {
		m.CheckVersionFunc(ctx, ffmpegPath)
	}
}

func (m *mockFFmpegResolver) ResolveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls
}

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Config{}, nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock ProberFactory + Prober
// ---------------------------------------------------------------------------

type mockProberFactory struct {
	NewProberFunc func(ffmpegPath string) (audio.Prober, error)

	mu             sync.Mutex
	newProberCalls []string // ffmpeg paths passed
	mockProber     *mockProber
}

func (m *mockProberFactory) NewProber(ffmpegPath string) (audio.Prober, error) {
	m.mu.Lock()
	m.newProberCalls = append(m.newProberCalls, ffmpegPath)
	m.mu.Unlock()

	if m.NewProberFunc != nil {
		return m.NewProberFunc(ffmpegPath)
	}
	if m.mockProber != nil {
		return m.mockProber, nil
	}
	return &mockProber{}, nil
}

func (m *mockProberFactory) NewProberCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.newProberCalls...)
}

type mockProber struct {
	ProbeFunc func(ctx context.Context, audioPath string) (time.Duration, error)

	mu         sync.Mutex
	probeCalls []string
}

func (m *mockProber) Probe(ctx context.Context, audioPath string) (time.Duration, error) {
	m.mu.Lock()
	m.probeCalls = append(m.probeCalls, audioPath)
	m.mu.Unlock()

	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, audioPath)
	}
	// Default: short audio that fits in a single request
	return 5 * time.Minute, nil
}

func (m *mockProber) ProbeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.probeCalls...)
}

// ---------------------------------------------------------------------------
// Mock SplitterFactory + Splitter
// ---------------------------------------------------------------------------

type mockSplitterFactory struct {
	NewSplitterFunc func(ffmpegPath string) (audio.Splitter, error)

	mu               sync.Mutex
	newSplitterCalls []string // ffmpeg paths passed
	mockSplitter     *mockSplitter
}

func (m *mockSplitterFactory) NewSplitter(ffmpegPath string) (audio.Splitter, error) {
	m.mu.Lock()
	m.newSplitterCalls = append(m.newSplitterCalls, ffmpegPath)
	m.mu.Unlock()

	if m.NewSplitterFunc != nil {
		return m.NewSplitterFunc(ffmpegPath)
	}
	if m.mockSplitter != nil {
		return m.mockSplitter, nil
	}
	return &mockSplitter{}, nil
}

func (m *mockSplitterFactory) NewSplitterCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.newSplitterCalls...)
}

type mockSplitter struct {
	SplitFunc func(ctx context.Context, audioPath string, plan []audio.Window) ([]audio.Chunk, error)

	mu         sync.Mutex
	splitCalls []splitCall
}

type splitCall struct {
	AudioPath string
	Plan      []audio.Window
}

func (m *mockSplitter) Split(ctx context.Context, audioPath string, plan []audio.Window) ([]audio.Chunk, error) {
	m.mu.Lock()
	m.splitCalls = append(m.splitCalls, splitCall{AudioPath: audioPath, Plan: append([]audio.Window(nil), plan...)})
	m.mu.Unlock()

	if m.SplitFunc != nil {
		return m.SplitFunc(ctx, audioPath, plan)
	}
	// Default: one chunk per window, reusing the input file.
	// Tests that exercise cleanup must provide SplitFunc with real chunk files.
	chunks := make([]audio.Chunk, len(plan))
	for i, w := range plan {
		chunks[i] = audio.Chunk{Path: audioPath, Index: i, StartTime: w.Start, EndTime: w.End}
	}
	return chunks, nil
}

func (m *mockSplitter) SplitCalls() []splitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]splitCall, len(m.splitCalls))
	copy(result, m.splitCalls)
	return result
}

// ---------------------------------------------------------------------------
// Mock TranscriberFactory + Transcriber
// ---------------------------------------------------------------------------

type mockTranscriberFactory struct {
	NewTranscriberFunc func(apiKey string) transcribe.Transcriber

	mu                  sync.Mutex
	newTranscriberCalls []string // API keys passed
	mockTranscriber     *mockTranscriber
}

func (m *mockTranscriberFactory) NewTranscriber(apiKey string) transcribe.Transcriber {
	m.mu.Lock()
	m.newTranscriberCalls = append(m.newTranscriberCalls, apiKey)
	m.mu.Unlock()

	if m.NewTranscriberFunc != nil {
		return m.NewTranscriberFunc(apiKey)
	}
	if m.mockTranscriber != nil {
		return m.mockTranscriber
	}
	return &mockTranscriber{}
}

func (m *mockTranscriberFactory) NewTranscriberCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.newTranscriberCalls...)
}

type mockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audioPath string, model transcribe.Model) (string, error)

	mu              sync.Mutex
	transcribeCalls []transcribeCall
}

type transcribeCall struct {
	AudioPath string
	Model     transcribe.Model
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioPath string, model transcribe.Model) (string, error) {
	m.mu.Lock()
	m.transcribeCalls = append(m.transcribeCalls, transcribeCall{AudioPath: audioPath, Model: model})
	m.mu.Unlock()

	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audioPath, model)
	}
	return "transcribed text", nil
}

func (m *mockTranscriber) TranscribeCalls() []transcribeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]transcribeCall, len(m.transcribeCalls))
	copy(result, m.transcribeCalls)
	return result
}

// ---------------------------------------------------------------------------
// Compile-time interface verification
// ---------------------------------------------------------------------------

var (
	_ FFmpegResolver         = (*mockFFmpegResolver)(nil)
	_ ConfigLoader           = (*mockConfigLoader)(nil)
	_ ProberFactory          = (*mockProberFactory)(nil)
	_ audio.Prober           = (*mockProber)(nil)
	_ SplitterFactory        = (*mockSplitterFactory)(nil)
	_ audio.Splitter         = (*mockSplitter)(nil)
	_ TranscriberFactory     = (*mockTranscriberFactory)(nil)
	_ transcribe.Transcriber = (*mockTranscriber)(nil)
)

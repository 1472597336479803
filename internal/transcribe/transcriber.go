package transcribe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// MaxRequestDuration is the longest audio the transcription endpoint accepts
// in a single request. Longer inputs must be split into chunks first.
const MaxRequestDuration = 25 * time.Minute

// Transcriber transcribes audio files to text.
type Transcriber interface {
	// Transcribe converts one audio file to text using the given model.
	// audioPath must be a file in a supported format: mp3, mp4, mpeg, mpga, m4a, wav, webm.
	// Returns the transcribed text or an error.
	Transcribe(ctx context.Context, audioPath string, model Model) (string, error)
}

// audioTranscriber is the slice of the OpenAI client this package needs.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type audioTranscriber interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Transcriber      = (*OpenAITranscriber)(nil)
	_ audioTranscriber = (*openai.Client)(nil)
)

// OpenAITranscriber transcribes audio using OpenAI's transcription API.
// Every call is a single request: failures are returned to the caller
// rather than retried, so a broken run stops at the first bad chunk.
type OpenAITranscriber struct {
	client audioTranscriber
}

// NewOpenAITranscriber creates a new OpenAITranscriber on top of client.
// The client is injected to enable testing with mocks.
func NewOpenAITranscriber(client *openai.Client) *OpenAITranscriber {
	return &OpenAITranscriber{client: client}
}

// Transcribe sends audioPath to the transcription endpoint and returns the text.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audioPath string, model Model) (string, error) {
	req := openai.AudioRequest{
		Model:    model.OrDefault().String(),
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatJSON,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", classifyError(err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyTranscript, audioPath)
	}
	return text, nil
}

// classifyError maps OpenAI API errors to sentinel errors.
// Classification is diagnostic: every failure is terminal, but the message
// should tell the user whether to fix the key, fix the file, or wait.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			// A 429 is either a transient rate limit or an exhausted quota
			// (billing). The message text is the only way to tell them apart.
			if strings.Contains(apiErr.Message, "quota") ||
				strings.Contains(apiErr.Message, "billing") {
				return fmt.Errorf("%s: %w", apiErr.Message, ErrQuotaExceeded)
			}
			return fmt.Errorf("%s: %w", apiErr.Message, ErrRateLimit)
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrAuthFailed)
		case http.StatusRequestEntityTooLarge:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrPayloadTooLarge)
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrTimeout)
		case http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrBadRequest)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
			return fmt.Errorf("%s: %w", apiErr.Message, ErrServerError)
		}
	}

	// Check for context timeout/deadline exceeded.
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", ErrTimeout)
	}

	return err
}

package transcribe

import "errors"

// ErrUnknownModel indicates a model identifier outside the supported set.
var ErrUnknownModel = errors.New("unknown transcription model")

// ErrAuthFailed indicates OpenAI API authentication failed (invalid key).
var ErrAuthFailed = errors.New("authentication failed")

// ErrRateLimit indicates the OpenAI API rate limit was exceeded.
var ErrRateLimit = errors.New("rate limit exceeded")

// ErrQuotaExceeded indicates the OpenAI API quota was exceeded (billing issue).
var ErrQuotaExceeded = errors.New("quota exceeded")

// ErrPayloadTooLarge indicates a chunk exceeds the API upload size limit.
var ErrPayloadTooLarge = errors.New("audio file too large for a single request")

// ErrTimeout indicates a request timed out.
var ErrTimeout = errors.New("request timeout")

// ErrServerError indicates the API failed on the server side.
var ErrServerError = errors.New("server error")

// ErrBadRequest indicates the API rejected the request.
var ErrBadRequest = errors.New("bad request")

// ErrEmptyTranscript indicates the API returned no text for an audio file.
var ErrEmptyTranscript = errors.New("empty transcript")

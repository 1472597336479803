package audio

import "errors"

// ErrProbeFailed indicates ffmpeg could not report the input's duration.
var ErrProbeFailed = errors.New("cannot determine audio duration")

// ErrZeroDuration indicates the input has no audible content to transcribe.
var ErrZeroDuration = errors.New("audio has zero duration")

// ErrInvalidChunkLength indicates a chunk length of zero or less.
var ErrInvalidChunkLength = errors.New("chunk length must be positive")

// ErrChunkingFailed indicates ffmpeg failed while cutting a chunk.
var ErrChunkingFailed = errors.New("audio chunking failed")

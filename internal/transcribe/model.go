package transcribe

import (
	"fmt"
	"sort"
	"strings"
)

// Transcription model identifiers accepted by the OpenAI audio endpoint.
const (
	// ModelWhisper1 is the original Whisper transcription model.
	ModelWhisper1 = "whisper-1"

	// ModelGPT4oMiniTranscribe is the cost-effective transcription model.
	ModelGPT4oMiniTranscribe = "gpt-4o-mini-transcribe"

	// ModelGPT4oTranscribe is the highest-quality transcription model.
	ModelGPT4oTranscribe = "gpt-4o-transcribe"
)

// Model represents a validated transcription model.
// Zero value is invalid and must not be used.
// Use ParseModel to create from user input, or DefaultModel.
type Model struct {
	id string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Model{}

// DefaultModel is the model used when none is requested.
var DefaultModel = Model{id: ModelGPT4oTranscribe}

// validModels contains the set of accepted model identifiers.
var validModels = map[string]bool{
	ModelWhisper1:            true,
	ModelGPT4oMiniTranscribe: true,
	ModelGPT4oTranscribe:     true,
}

// ParseModel validates and parses a model identifier string.
// Returns ErrUnknownModel if the identifier is not in the supported set.
func ParseModel(s string) (Model, error) {
	if s == "" {
		return Model{}, fmt.Errorf("model cannot be empty: %w", ErrUnknownModel)
	}
	if !validModels[s] {
		return Model{}, fmt.Errorf("unknown model %q (supported: %s): %w",
			s, strings.Join(Models(), ", "), ErrUnknownModel)
	}
	return Model{id: s}, nil
}

// MustParseModel parses a model identifier, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParseModel(s string) Model {
	m, err := ParseModel(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Models returns the supported model identifiers in sorted order.
func Models() []string {
	ids := make([]string, 0, len(validModels))
	for id := range validModels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// String returns the model identifier string.
// Returns empty string for zero value.
func (m Model) String() string {
	return m.id
}

// IsZero returns true if this is the zero value (no model set).
func (m Model) IsZero() bool {
	return m.id == ""
}

// IsDefault returns true if this model is the default.
func (m Model) IsDefault() bool {
	return m.id == DefaultModel.id
}

// OrDefault returns the model, or DefaultModel if zero.
// Use this to apply the default model consistently.
func (m Model) OrDefault() Model {
	if m.IsZero() {
		return DefaultModel
	}
	return m
}

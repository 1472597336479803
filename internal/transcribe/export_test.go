package transcribe

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

// NewTestTranscriber creates an OpenAITranscriber with a mock audioTranscriber.
// This allows testing without a real OpenAI client.
func NewTestTranscriber(client audioTranscriber) *OpenAITranscriber {
	return &OpenAITranscriber{client: client}
}

// ClassifyError exports classifyError for unit testing.
var ClassifyError = classifyError

package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pverger/transcribe/internal/format"
)

// tempDirPattern names chunk workspaces so CleanupChunks can recognize them.
const tempDirPattern = "transcribe-*"

// Chunk is a segment of audio cut from a larger file.
// Chunk files live in a temporary workspace owned by this package; callers
// clean up with CleanupChunks when the run is over.
type Chunk struct {
	Path      string        // Absolute path to the chunk file.
	Index     int           // Zero-based position in the split plan.
	StartTime time.Duration // Start timestamp in the source audio.
	EndTime   time.Duration // End timestamp in the source audio.
}

// Duration returns the length of this chunk.
func (c Chunk) Duration() time.Duration {
	return c.EndTime - c.StartTime
}

// String returns a human-readable representation for progress output.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk %d: %s-%s",
		c.Index+1,
		format.Duration(c.StartTime),
		format.Duration(c.EndTime))
}

// ChunkPaths returns the chunk file paths in plan order.
func ChunkPaths(chunks []Chunk) []string {
	paths := make([]string, len(chunks))
	for i, c := range chunks {
		paths[i] = c.Path
	}
	return paths
}

// CleanupChunks removes all chunk files and their parent directory.
// Call this once the run is over, whether it succeeded or failed.
func CleanupChunks(chunks []Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	// All chunks live in the same temp directory.
	tempDir := filepath.Dir(chunks[0].Path)

	// Only remove directories this package created. Anything else gets
	// per-file removal so a miswired path can never take a user directory
	// down with it.
	if !strings.HasPrefix(filepath.Base(tempDir), "transcribe-") {
		for _, chunk := range chunks {
			_ = os.Remove(chunk.Path) // best-effort; files may already be gone
		}
		return nil
	}

	return os.RemoveAll(tempDir)
}

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pverger/transcribe/internal/audio"
)

// writeTranscript writes content to path, replacing any previous file.
// Re-running on the same input produces the same transcript, so an existing
// file is overwritten rather than treated as an error.
// On write failure, the partial file is removed.
func writeTranscript(path, content string) error {
	// #nosec G302 G304 -- output path derived from user input with standard permissions
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	// Ensure file is closed even on write error
	writeErr := func() error {
		defer func() { _ = f.Close() }()
		if _, err := f.WriteString(content); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
		return nil
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}

	return nil
}

// chunkArtifactsDir returns the directory where --keep-chunks artifacts live.
// Example: "talk.mp3" -> "talk_chunks"
func chunkArtifactsDir(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + "_chunks"
}

// saveChunkArtifacts copies chunk audio files and writes per-chunk transcript
// fragments into a directory next to the input. Chunk files keep their
// numbered names, so the original order stays recoverable from the listing.
// fragments must have one entry per chunk.
func saveChunkArtifacts(inputPath string, chunks []audio.Chunk, fragments []string) error {
	dir := chunkArtifactsDir(inputPath)
	// #nosec G301 -- artifacts live next to user files
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	for i, chunk := range chunks {
		name := filepath.Base(chunk.Path)
		if err := copyFile(chunk.Path, filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}

		ext := filepath.Ext(name)
		fragmentPath := filepath.Join(dir, strings.TrimSuffix(name, ext)+".txt")
		if err := writeTranscript(fragmentPath, fragments[i]); err != nil {
			return err
		}
	}

	return nil
}

// copyFile copies a file from src to dst, preserving permissions.
// An existing dst is replaced so artifact directories survive re-runs.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src) // #nosec G304 -- src is internal temp file
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	// Get source file info for permissions
	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, srcInfo.Mode()) // #nosec G304 -- dst sits next to user files
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(dstFile, srcFile)
	closeErr := dstFile.Close()

	if copyErr != nil {
		_ = os.Remove(dst) // Clean up partial file
		return copyErr
	}
	if closeErr != nil {
		_ = os.Remove(dst)
		return closeErr
	}

	return nil
}

// fileSize returns the size of the file at path in bytes.
func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

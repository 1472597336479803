package transcribe

import (
	"context"
	"fmt"
	"path/filepath"
)

// ProgressFunc is called before each transcription request in a batch.
// index is zero-based; total is the number of files in the batch.
type ProgressFunc func(index, total int, audioPath string)

// TranscribeSequential transcribes audioPaths one at a time, in input order.
// Results are returned in the same order. The first failure aborts the
// batch: later files are never sent and no partial results are returned.
//
// Strictly one request in flight at a time. Chunked transcription feeds an
// ordered join, so trading order and predictable failure for parallel
// throughput is not worth it here.
func TranscribeSequential(
	ctx context.Context,
	t Transcriber,
	audioPaths []string,
	model Model,
	progress ProgressFunc,
) ([]string, error) {
	if len(audioPaths) == 0 {
		return nil, nil
	}

	results := make([]string, 0, len(audioPaths))
	for i, path := range audioPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if progress != nil {
			progress(i, len(audioPaths), path)
		}

		text, err := t.Transcribe(ctx, path, model)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d (%s): %w",
				i+1, len(audioPaths), filepath.Base(path), err)
		}
		results = append(results, text)
	}

	return results, nil
}

// Package processor runs a received search task through the engine and checksums the result for quorum voting
package processor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/search"
	"github.com/cespare/xxhash/v2"
)

type Processor struct{}

// ProcessInput returns no result for a task whose ctx is already done.
func (p Processor) ProcessInput(ctx context.Context, task *model.SearchTask) (*model.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("task %q dropped: %w", task.TaskID, err)
	}

	result := model.SearchResult{
		TaskID:  task.TaskID,
		Matches: search.Matches(task.Mode, task.Query, task.Corpus),
	}
	result.Checksum = Checksum(result.Matches)
	return &result, nil
}

// Checksum hashes matches so that equal results from different nodes vote
// together. Each match is written as "<line>:<text>\n".
func Checksum(matches []model.Match) uint64 {
	hs := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, m := range matches {
		buf = strconv.AppendInt(buf[:0], int64(m.Line), 10)
		buf = append(buf, ':')
		_, _ = hs.Write(buf)
		_, _ = hs.WriteString(m.Text)
		_, _ = hs.WriteString("\n")
	}
	return hs.Sum64()
}

// Package qaggr - aggregates results received from search nodes and returns the first one that reaches quorum
package qaggr

import (
	"context"
	"fmt"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/sirupsen/logrus"
)

type votes struct {
	count   int
	matches []model.Match
}

// Collect reads results from ch until one checksum for taskID gets quorum
// votes. Results for other task ids are ignored. It fails with
// model.ErrQuorumNotReached when ctx ends or ch is closed first.
func Collect(ctx context.Context, ch <-chan model.SearchResult, taskID string, quorum int) ([]model.Match, error) {
	// подсчет голосов по каждой вариации хеш-суммы
	tally := make(map[uint64]*votes)
	received := 0

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %d result(s) received: %v", model.ErrQuorumNotReached, received, ctx.Err())
		case res, ok := <-ch:
			if !ok {
				return nil, fmt.Errorf("%w: %d result(s) received, %d distinct", model.ErrQuorumNotReached, received, len(tally))
			}

			// проверяем, что результат относится к нашей задаче
			if res.TaskID != taskID {
				logrus.WithField("tid", res.TaskID).Warn("Dropping result for unknown task")
				continue
			}
			received++

			v, exists := tally[res.Checksum]
			if !exists {
				v = &votes{matches: res.Matches}
				tally[res.Checksum] = v
			}
			v.count++

			if v.count >= quorum {
				return v.matches, nil
			}
		}
	}
}

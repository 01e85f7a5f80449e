package appmode

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/output"
	"github.com/UnendingLoop/minigrep/internal/qaggr"
	"github.com/UnendingLoop/minigrep/internal/reader"
	"github.com/UnendingLoop/minigrep/internal/transport"
	"github.com/docker/distribution/uuid"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// RunRemote reads the source, ships it as one task to every healthy node and
// prints the first result that ai.Quorum nodes agree on.
func RunRemote(ctx context.Context, ai *model.AppInit, stdin io.Reader, p *output.Printer, client transport.Client) error {
	corpus, err := reader.ReadInput(stdin, ai.Search.FilePath)
	if err != nil {
		return err
	}

	task := &model.SearchTask{
		TaskID: uuid.Generate().String(),
		Query:  ai.Search.Query,
		Corpus: corpus,
		Mode:   ai.Search.Mode,
	}

	ctx, cancel := context.WithTimeout(ctx, ai.Timeout)
	defer cancel()

	// проверить пингом, что хотя бы кворум нод доступен
	alive, err := checkNodesHealth(ctx, client, ai.Nodes, ai.Quorum)
	if err != nil {
		return fmt.Errorf("failed to start searching: %w", err)
	}

	matches, err := processTask(ctx, client, alive, task, ai.Quorum)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	return p.Print(task.Query, task.Mode, matches)
}

func checkNodesHealth(ctx context.Context, client transport.Client, nodes []string, quorum int) ([]string, error) {
	rCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		alive = make([]string, 0, len(nodes))
	)
	for _, addr := range nodes {
		wg.Go(func() {
			if err := client.Ping(rCtx, addr); err != nil {
				logrus.WithField("node", addr).Warnf("Node is not available: %v", err)
				return
			}
			mu.Lock()
			alive = append(alive, addr)
			mu.Unlock()
		})
	}
	wg.Wait()

	if len(alive) < quorum {
		return nil, fmt.Errorf("%w: only %d of %d node(s) are OK to continue, while quorum is %d", model.ErrNoNodes, len(alive), len(nodes), quorum)
	}
	return alive, nil
}

func processTask(ctx context.Context, client transport.Client, nodes []string, task *model.SearchTask, quorum int) ([]model.Match, error) {
	// отменяем оставшиеся запросы, как только есть кворум
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// буфер на все ноды: отправители никогда не блокируются после выхода сборщика
	resCollect := make(chan model.SearchResult, len(nodes))

	var wg sync.WaitGroup
	for _, addr := range nodes {
		wg.Go(func() {
			res, err := client.Send(ctx, addr, task)
			if err != nil {
				logrus.WithField("node", addr).Warn(err.Error())
				return
			}
			resCollect <- *res
		})
	}
	go func() {
		wg.Wait()
		close(resCollect)
	}()

	return qaggr.Collect(ctx, resCollect, task.TaskID, quorum)
}

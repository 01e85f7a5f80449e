package appmode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/processor"
	"github.com/UnendingLoop/minigrep/internal/transport"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// RunNode serves searches on ai.Address until ctx is cancelled or the server fails.
func RunNode(ctx context.Context, ai *model.AppInit) error {
	// получить экземпляр сервера
	srv := transport.NewNodeServer(ai.Address, processor.Processor{})
	srv.ReadHeaderTimeout = ai.Timeout

	// запуск сервера
	srvErr := make(chan error, 1)
	go func() {
		logrus.Infof("Node running on %s", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return fmt.Errorf("node %q stopped: %w", ai.Address, err)
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Server gracefully stopping...")
	}

	// Закрытие всех соединений сервера
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown node %q correctly: %w", ai.Address, err)
	}
	logrus.Infof("Node %q server is closed.", ai.Address)
	return nil
}

// Package transport provides the search-node HTTP server (by ginext) and the client the remote mode uses to reach it
package transport

import (
	"context"
	"net/http"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/wb-go/wbf/ginext"
)

const (
	PingPath   = "/ping"
	SearchPath = "/search"
)

type Processor interface {
	ProcessInput(ctx context.Context, task *model.SearchTask) (*model.SearchResult, error)
}

type handlers struct {
	proc Processor
}

func NewNodeServer(addr string, proc Processor) *http.Server {
	h := handlers{proc: proc}

	engine := ginext.New("release")
	engine.GET(PingPath, h.HealthCheck)
	engine.POST(SearchPath, h.ReceiveTask)

	return &http.Server{
		Addr:    addr,
		Handler: engine,
	}
}

func (h handlers) HealthCheck(ctx *ginext.Context) {
	logrus.Debug("Received a healthcheck request")
	ctx.Status(http.StatusOK)
}

func (h handlers) ReceiveTask(ctx *ginext.Context) {
	var task model.SearchTask

	if err := ctx.ShouldBindJSON(&task); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse task from body: " + err.Error()})
		return
	}

	log := logrus.WithFields(logrus.Fields{"tid": task.TaskID, "mode": task.Mode.String()})
	log.WithField("corpus_bytes", len(task.Corpus)).Info("Received task")

	res, err := h.proc.ProcessInput(ctx.Request.Context(), &task)
	if err != nil {
		log.Warnf("Task not processed: %v", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	log.WithFields(logrus.Fields{"matches": len(res.Matches), "checksum": res.Checksum}).Info("Calculated result")

	ctx.JSON(http.StatusOK, res)
}

// Package appmode provides the three ways to run: a local search, a remote search with quorum, and a search node
package appmode

import (
	"context"
	"io"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/output"
	"github.com/UnendingLoop/minigrep/internal/reader"
	"github.com/UnendingLoop/minigrep/internal/search"
	"github.com/sirupsen/logrus"
)

// RunLocal reads the whole source into memory, searches it and prints the matches.
// A source that cannot be read is reported before any search happens.
func RunLocal(ctx context.Context, ai *model.AppInit, stdin io.Reader, p *output.Printer) error {
	corpus, err := reader.ReadInput(stdin, ai.Search.FilePath)
	if err != nil {
		return err
	}
	// прерывание во время чтения большого файла
	if err := ctx.Err(); err != nil {
		return err
	}

	sp := ai.Search
	logrus.WithFields(logrus.Fields{
		"file":  sp.FilePath,
		"bytes": len(corpus),
		"mode":  sp.Mode.String(),
	}).Debug("Searching locally")

	// номера строк нужны только для -n
	if ai.Output.LineNumbers {
		return p.Print(sp.Query, sp.Mode, search.Matches(sp.Mode, sp.Query, corpus))
	}
	return p.PrintLines(sp.Query, sp.Mode, search.Find(sp.Mode, sp.Query, corpus))
}

// Package parser turns positional args, flag values, the environment and the optional
// config file into an AppInit structure and validates it for any issues
package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/UnendingLoop/minigrep/internal/config"
	"github.com/UnendingLoop/minigrep/internal/model"
)

// LookupEnv has the signature of os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// Options holds raw flag values as the command line delivered them.
type Options struct {
	IgnoreCase  bool
	LineNumbers bool
	CountOnly   bool
	Color       string
	ConfigPath  string
	Nodes       model.NodesList
	Quorum      int
	Timeout     time.Duration
	Address     string
}

// InitAppMode builds run parameters for a search. args[0] is the query,
// args[1] the file path ("-" for stdin), extra args are ignored.
func InitAppMode(args []string, opts Options, lookupEnv LookupEnv) (*model.AppInit, error) {
	if len(args) < 2 {
		return nil, model.ErrNotEnoughArguments
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	file, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// IGNORE_CASE учитывается по факту наличия, значение не важно
	_, envIgnoreCase := lookupEnv(model.IgnoreCaseEnv)

	ai := model.AppInit{
		Mode: model.ModeLocal,
		Search: model.SearchParam{
			Query:    args[0],
			FilePath: args[1],
			Mode:     model.ModeFromIgnoreCase(opts.IgnoreCase || envIgnoreCase),
		},
		Output: model.OutputParam{
			LineNumbers: opts.LineNumbers,
			CountOnly:   opts.CountOnly,
		},
		Timeout: pickTimeout(opts.Timeout, file.Timeout),
	}

	ai.Output.Color, err = model.ParseColorMode(firstNonEmpty(opts.Color, file.Color))
	if err != nil {
		return nil, err
	}

	// флаги важнее конфига: если ноды заданы флагами, список из файла не смешиваем
	nodes := opts.Nodes
	if len(nodes) == 0 {
		for _, n := range file.Nodes {
			_ = nodes.Set(n)
		}
	}
	if len(nodes) == 0 {
		return &ai, nil
	}

	ai.Mode = model.ModeRemote
	// дубликаты ищем уже после нормализации: "a:1" и "http://a:1" - одна нода
	for _, n := range nodes {
		_ = ai.Nodes.Set(normalizeNodeAddr(n))
	}

	quorum := opts.Quorum
	if quorum == 0 {
		quorum = file.Quorum
	}
	ai.Quorum, err = pickQuorum(quorum, len(ai.Nodes))
	if err != nil {
		return nil, err
	}

	return &ai, nil
}

// InitNode builds run parameters for serving searches.
func InitNode(opts Options) (*model.AppInit, error) {
	file, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	addr := firstNonEmpty(opts.Address, file.Address, model.DefaultNodeAddress)
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("empty node address")
	}

	return &model.AppInit{
		Mode:    model.ModeNode,
		Address: addr,
		Timeout: pickTimeout(opts.Timeout, file.Timeout),
	}, nil
}

// без явного кворума берем большинство нод
func pickQuorum(quorum, nodes int) (int, error) {
	switch {
	case quorum == 0:
		return nodes/2 + 1, nil
	case quorum < 0 || quorum > nodes:
		return 0, fmt.Errorf("%w: %d for %d node(s)", model.ErrBadQuorum, quorum, nodes)
	default:
		return quorum, nil
	}
}

func pickTimeout(flagValue time.Duration, fileValue config.Duration) time.Duration {
	switch {
	case flagValue > 0:
		return flagValue
	case fileValue > 0:
		return time.Duration(fileValue)
	default:
		return model.DefaultTimeout
	}
}

func normalizeNodeAddr(addr string) string {
	addr = strings.TrimRight(addr, "/")
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "http://" + addr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package model contains run parameters, match mode, sentinel errors and the DTOs exchanged with search nodes
package model

import (
	"errors"
	"fmt"
	"time"
)

type AppMode string

const (
	ModeLocal  = AppMode("local")  // search a file on this machine
	ModeRemote = AppMode("remote") // ship the search to nodes and wait for quorum
	ModeNode   = AppMode("node")   // serve searches over HTTP
)

const (
	DefaultNodeAddress = ":8081"
	DefaultTimeout     = 30 * time.Second
	IgnoreCaseEnv      = "IGNORE_CASE"
)

var (
	ErrNotEnoughArguments = errors.New("not enough arguments")
	ErrFileRead           = errors.New("failed to read input")
	ErrNoNodes            = errors.New("no search nodes available")
	ErrBadQuorum          = errors.New("incorrect quorum")
	ErrQuorumNotReached   = errors.New("quorum not reached")
	ErrBadColorMode       = errors.New("unknown color mode")
)

// MatchMode - политика сравнения строк, передается в каждый вызов поиска отдельно
type MatchMode int

const (
	CaseSensitive MatchMode = iota
	CaseInsensitive
)

func ModeFromIgnoreCase(ignoreCase bool) MatchMode {
	if ignoreCase {
		return CaseInsensitive
	}
	return CaseSensitive
}

func (m MatchMode) String() string {
	switch m {
	case CaseSensitive:
		return "case-sensitive"
	case CaseInsensitive:
		return "case-insensitive"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

type ColorMode string

const (
	ColorAuto   = ColorMode("auto")
	ColorAlways = ColorMode("always")
	ColorNever  = ColorMode("never")
)

func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadColorMode, s)
	}
}

type AppInit struct {
	Mode    AppMode
	Address string
	Nodes   NodesList
	Quorum  int
	Timeout time.Duration
	Search  SearchParam
	Output  OutputParam
}

// SearchParam - что ищем и где
type SearchParam struct {
	Query    string
	FilePath string // "-" means stdin
	Mode     MatchMode
}

// OutputParam - как печатаем найденное
type OutputParam struct {
	LineNumbers bool
	CountOnly   bool
	Color       ColorMode
}

// NodesList - для чтения списка адресов нод из аргументов, реализует pflag.Value
type NodesList []string

func (n *NodesList) String() string {
	return fmt.Sprint(*n)
}

func (n *NodesList) Set(value string) error { // в Set сразу избавляемся от дубликатов и пустых адресов
	if value == "" {
		return nil
	}
	for _, v := range *n {
		if v == value {
			return nil
		}
	}
	*n = append(*n, value)
	return nil
}

func (n *NodesList) Type() string {
	return "address"
}

type SearchTask struct {
	TaskID string    `json:"tid" binding:"required"`
	Query  string    `json:"query"`
	Corpus string    `json:"corpus"`
	Mode   MatchMode `json:"mode"`
}

// Match - найденная строка и ее номер в корпусе, начиная с 1
type Match struct {
	Line int    `json:"n"`
	Text string `json:"text"`
}

type SearchResult struct {
	TaskID   string  `json:"tid" binding:"required"`
	Checksum uint64  `json:"checksum"`
	Matches  []Match `json:"matches"`
}

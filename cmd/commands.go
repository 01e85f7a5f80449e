package main

import (
	"io"

	"github.com/UnendingLoop/minigrep/internal/appmode"
	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/output"
	"github.com/UnendingLoop/minigrep/internal/parser"
	"github.com/UnendingLoop/minigrep/internal/transport"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// argsError marks failures caused by the command line itself.
type argsError struct {
	err error
}

func (e argsError) Error() string { return e.err.Error() }
func (e argsError) Unwrap() error { return e.err }

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, lookupEnv parser.LookupEnv) *cobra.Command {
	var (
		opts    parser.Options
		verbose bool
	)

	root := &cobra.Command{
		Use:   "minigrep [flags] QUERY FILE",
		Short: "Print the lines of FILE that contain QUERY",
		Long: `Print every line of FILE that contains QUERY as a plain substring, in file order.
FILE "-" reads standard input.

Matching is case-sensitive unless -i is given or the IGNORE_CASE environment
variable is set (to any value, empty included).

With --node the search is sent to minigrep nodes (see "minigrep serve") and the
result is printed once --quorum of them return the same answer.

A QUERY of "serve", "__help", "__complete" or "__completeNoDesc" is read as a
subcommand; put "--" in front of it to search for it: minigrep -- serve FILE.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(stderr, verbose, logrus.WarnLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ai, err := parser.InitAppMode(args, opts, lookupEnv)
			if err != nil {
				return argsError{err}
			}

			p := output.NewPrinter(stdout, ai.Output)

			// запуск в нужном режиме
			switch ai.Mode {
			case model.ModeRemote:
				return appmode.RunRemote(cmd.Context(), ai, stdin, p, transport.Client{})
			default:
				return appmode.RunLocal(cmd.Context(), ai, stdin, p)
			}
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return argsError{err}
	})

	// "help" и "completion" должны оставаться обычными запросами:
	// справка доступна через --help, автодополнение не генерируем
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{
		Use:    "__help",
		Hidden: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Root().Help()
		},
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "TOML file with defaults for nodes, quorum, timeout, address and color")
	pf.DurationVar(&opts.Timeout, "timeout", 0, "overall timeout for a remote search, read timeout for a node (default 30s)")
	pf.BoolVar(&verbose, "verbose", false, "debug logging to stderr")

	f := root.Flags()
	f.BoolVarP(&opts.IgnoreCase, "ignore-case", "i", false, "compare lowercased query and lines (same as setting IGNORE_CASE)")
	f.BoolVarP(&opts.LineNumbers, "line-number", "n", false, "prefix each line with its number in FILE")
	f.BoolVarP(&opts.CountOnly, "count", "c", false, "print only the number of matching lines")
	f.StringVar(&opts.Color, "color", "", "highlight matches: auto, always or never (default auto)")
	f.Var(&opts.Nodes, "node", "search node address, repeat for several nodes")
	f.IntVar(&opts.Quorum, "quorum", 0, "number of nodes that must agree (default majority)")

	root.AddCommand(newServeCmd(&opts, stderr, &verbose))
	return root
}

func newServeCmd(opts *parser.Options, stderr io.Writer, verbose *bool) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run a search node",
		Long:  `Run a search node that answers remote searches over HTTP until interrupted.`,
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(stderr, *verbose, logrus.InfoLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ai, err := parser.InitNode(*opts)
			if err != nil {
				return argsError{err}
			}
			return appmode.RunNode(cmd.Context(), ai)
		},
	}
	serve.Flags().StringVar(&opts.Address, "address", "", "listen address (default \""+model.DefaultNodeAddress+"\")")
	return serve
}

func setupLogging(w io.Writer, verbose bool, level logrus.Level) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
}

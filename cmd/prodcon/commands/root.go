package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const appName = "prodcon"

// rootOptions holds flags that are read directly rather than through the
// config loader.
type rootOptions struct {
	configFile string
	envFile    string
}

// NewRootCommand builds the prodcon command tree. Running the root command
// without a subcommand runs the pipeline.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Bounded-buffer producer/consumer pipeline",
		Long: `prodcon runs producers and consumers over one bounded buffer.

The items 1..N are split round-robin across the producers. Every producer
finishes before one end-of-stream marker per consumer is queued, so every
item is consumed exactly once and every worker stops.

Examples:
  # Two producers, three consumers, capacity 1
  prodcon --buffer condition --capacity 1 --items 6 --producers 2 --consumers 3

  # JSON result with a metrics snapshot in the log
  prodcon run --format json --metrics

  # Settings from a file and the environment
  PRODCON_PIPELINE_CAPACITY=4 prodcon --config prodcon.yml
`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default: ./prodcon.yml or ./config.yml if present)")
	pf.StringVar(&opts.envFile, "env-file", "", "env file with PRODCON_* variables (default: .env.prodcon or .env if present)")
	pf.String("buffer", "queue", "buffer variant: queue or condition")
	pf.Int("capacity", 2, "buffer capacity")
	pf.Int("items", 5, "number of items to produce (items are 1..N)")
	pf.Int("producers", 1, "number of producers")
	pf.Int("consumers", 1, "number of consumers")
	pf.Duration("producer-delay", 0, "pause after each produced item")
	pf.Duration("consumer-delay", 0, "pause after each consumed item")
	pf.String("log-level", "info", "log level: debug, info, warn(ing), error, fatal/critical")
	pf.String("format", "text", "output format: text, json or yaml")
	pf.Bool("metrics", false, "log a metrics snapshot after the run")
	pf.Bool("trace", false, "log pipeline phase spans")
	pf.Bool("debug", false, "print the startup summary to stderr")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, opts)
		},
	}
}

// Run executes the CLI with args and returns the process exit code. Errors
// are printed to stderr as "Error: <message>".
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// Package cmd is for command line interactions with the workshop toolkit.
package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/config"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/entrez"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/history"
)

// version can be overridden at build time with -ldflags "-X cmd.version=..."
var version = "0.1.0"

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *log.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "workshop",
	Short: `Companion toolkit for the biology programming workshop.
Parse FASTA files, compute sequence statistics, explore tabular data,
plot in the terminal and query NCBI databases`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger = newLogger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Fatal(err)
		}
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to workshop.yaml (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose (debug) logging")
}

// newLogger builds the shared logger. When a log file is configured we
// write to both stderr and the file so interactive runs still show logs.
func newLogger() *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	l := log.New(out)
	if verbose {
		l.SetLevel(log.DebugLevel)
		return l
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "info", "":
		l.SetLevel(log.InfoLevel)
	case "warn", "warning":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
		l.Warn("unknown log-level in config, defaulting to info", "provided", cfg.LogLevel)
	}
	return l
}

// newEntrezClient wires the configured cache, rate limit and identity.
func newEntrezClient() *entrez.Client {
	cache := entrez.NewCache(cfg.Entrez.CachePath, cfg.Entrez.CacheTTLSecs)
	opts := []entrez.Option{
		entrez.WithCache(cache),
		entrez.WithQPS(cfg.Entrez.QPS),
		entrez.WithIdentity("bioworkshop", cfg.Entrez.Email),
	}
	if cfg.Entrez.APIKey != "" {
		opts = append(opts, entrez.WithAPIKey(cfg.Entrez.APIKey))
	}
	return entrez.New(opts...)
}

// openHistory opens the configured query-history store. Failures are
// logged and tolerated: history is a convenience, not a requirement.
func openHistory() history.Store {
	store, err := history.Open(cfg.History.Store, cfg.History.Path)
	if err != nil {
		logger.Warn("history store unavailable", "err", err)
		return nil
	}
	return store
}

func recordHistory(store history.Store, e history.Entry) {
	if store == nil {
		return
	}
	if err := store.Append(e); err != nil {
		logger.Warn("failed to record history", "err", err)
	}
}

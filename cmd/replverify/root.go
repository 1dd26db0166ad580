package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchbase/replverify/config"
	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/metrics"
	"github.com/couchbase/replverify/objstore/objcli"
)

// app holds the state shared by every command for the duration of a single invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	args   []string

	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger

	// newClient creates the client for a configured backend.
	newClient clientFactory

	clients []objcli.Client
}

// execute runs the command line tool with the given arguments, returning the exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr, newClient: newBackendClient}

	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	a.args = args

	root := a.rootCmd()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)

	// NOTE: Metrics are written on failure too, they're most useful when verification fails
	if finishErr := a.finish(); err == nil {
		err = finishErr
	}

	if err != nil {
		fmt.Fprintln(a.stderr, "Error:", err)
		return 1
	}

	return 0
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "replverify",
		Short:         "Verify objects are replicated from a source bucket to its destinations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "replverify.yaml", "path to the configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, one of debug/info/warn/error (overrides the config)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format, one of text/json (overrides the config)")

	cmd.AddCommand(
		a.checkCmd(),
		a.putCmd(),
		a.deleteCmd(),
		a.pausedCheckCmd(),
		a.cleanupCmd(),
		a.waitReplicationCmd(),
		a.pauseCmd(),
		a.resumeCmd(),
		a.statusCmd(),
	)

	return cmd
}

// setup loads the configuration and installs the logger before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	a.cfg = cfg
	a.logger = log.Setup(cfg.Log.Level, cfg.Log.Format, a.stderr)

	metrics.Register(prometheus.DefaultRegisterer)

	a.logger.Info("Running command", "command", cmd.Name(),
		"args", log.MaskAndUserTagCommandArguments(a.args))

	return nil
}

// finish closes any clients created by the command and writes the metrics textfile, when configured.
func (a *app) finish() error {
	for _, client := range a.clients {
		if err := client.Close(); err != nil {
			a.logger.Warn("Failed to close client", "provider", client.Provider(), "error", err)
		}
	}

	a.clients = nil

	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}

	if err := metrics.WriteTextfile(a.cfg.Metrics.Textfile, prometheus.DefaultGatherer); err != nil {
		return err // Purposefully not wrapped
	}

	a.logger.Debug("Wrote metrics", "path", a.cfg.Metrics.Textfile)

	return nil
}

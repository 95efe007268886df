package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"NewsScanner/internal/app"
	"NewsScanner/internal/config"
	"NewsScanner/internal/logging"
)

// cli holds state shared by subcommands once the root pre-run has loaded config.
type cli struct {
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer

	cfg    config.Config
	logger *slog.Logger

	// newApp builds the application; tests swap it for one with stubbed clients.
	newApp func(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app.Application, error)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{stdout: os.Stdout, stderr: os.Stderr})
}

func newRootCmdWith(c *cli) *cobra.Command {
	if c.newApp == nil {
		c.newApp = func(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app.Application, error) {
			return app.New(ctx, cfg, logger, app.Options{})
		}
	}

	cmd := &cobra.Command{
		Use:   "newsscanner",
		Short: "Scrapes a press-release listing and tags watch-list company mentions.",
		Long: `newsscanner downloads a news listing page, keeps the entries published in
the configured date window, annotates titles and summaries with named
entities, tags watch-list companies and writes the result as CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.logger = logging.NewWithWriter(c.stderr, cfg.Logging.Level)
			return nil
		},
	}
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "",
		fmt.Sprintf("config file (default is $%s, then built-in defaults)", config.ConfigPathEnv))

	cmd.AddCommand(newRunCmd(c), newScheduleCmd(c), newRunsCmd(c), newExportCmd(c))

	return cmd
}

// withApp builds the application, runs fn and releases it.
func (c *cli) withApp(ctx context.Context, fn func(*app.Application) error) error {
	application, err := c.newApp(ctx, c.cfg, c.logger)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}
	defer func() {
		if cerr := application.Close(); cerr != nil {
			c.logger.Warn("close application", "error", cerr)
		}
	}()

	return fn(application)
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/app"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/config"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/domain"
	"github.com/BaileyM7/Bill-Intro-Scrape-With-Summary/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		senate   bool
		house    bool
		populate bool
		daemon   bool
	)

	root := &cobra.Command{
		Use:           "billsum",
		Short:         "Daily bill-introduction ingest and press release generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if senate == house {
				return fmt.Errorf("specify exactly one of --senate or --house")
			}

			chamber := domain.House
			if senate {
				chamber = domain.Senate
			}

			return withApp(cmd.Context(), func(ctx context.Context, application *app.Application) error {
				return application.Run(ctx, app.Options{
					Chamber:       chamber,
					PopulateFirst: populate,
					Daemon:        daemon,
				})
			})
		},
	}

	root.Flags().BoolVarP(&senate, "senate", "s", false, "process the Senate queue")
	root.Flags().BoolVar(&house, "house", false, "process the House queue")
	root.Flags().BoolVarP(&populate, "populate", "p", false, "seed the URL queue from the bill listing before processing")
	root.Flags().BoolVar(&daemon, "daemon", false, "keep running on the configured interval")

	root.AddCommand(newTestCmd())
	return root
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <start> <end>",
		Short: "Generate releases for a bill-number range into test_outputs.csv, bypassing the queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("start must be an integer: %w", err)
			}
			end, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("end must be an integer: %w", err)
			}

			return withApp(cmd.Context(), func(ctx context.Context, application *app.Application) error {
				return application.RunTest(ctx, start, end)
			})
		},
	}
}

func withApp(ctx context.Context, run func(context.Context, *app.Application) error) error {
	cfg := config.Load()

	logger, logPath, closeLog, err := logging.NewRunLogger(cfg.Logging.Level, cfg.Logging.Dir)
	if err != nil {
		return err
	}
	defer closeLog()

	if logPath != "" {
		logger.Info("run log started", "path", logPath)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	return run(ctx, application)
}

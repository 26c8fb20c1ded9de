package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/flatfreeze/flatfreeze/freezer"
)

func freezeCommand() *cli.Command {
	return &cli.Command{
		Name:  "freeze",
		Usage: "Write the site as static files to the freeze destination",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "destination",
				Usage: "Output directory (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "Commit the destination git worktree after freezing",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Freeze again whenever pages or static files change",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period before a watched change triggers a freeze",
				Value: 300 * time.Millisecond,
			},
		},
		Action: runFreeze,
	}
}

func runFreeze(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(cmd)
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("destination") {
		a.Config.Freeze.Destination = cmd.String("destination")
	}
	if cmd.Bool("commit") {
		a.Config.Freeze.Commit = true
	}

	build := func() error {
		_, err := a.Freeze(ctx, logger)
		return err
	}
	if err := build(); err != nil {
		return err
	}
	if !cmd.Bool("watch") {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("Watching for changes", slog.String("pages", a.Config.PagesDir), slog.String("static", a.Config.StaticDir))
	return freezer.Watch(ctx, []string{a.Config.PagesDir, a.Config.StaticDir}, cmd.Duration("debounce"), logger, build)
}

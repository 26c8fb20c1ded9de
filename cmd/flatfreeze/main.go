package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/flatfreeze/flatfreeze"
)

// version is set at build time via ldflags.
var version = "dev"

func newLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadApp reads the config named by --config and applies flag overrides.
func loadApp(cmd *cli.Command) (*flatfreeze.App, error) {
	cfg, err := flatfreeze.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	return flatfreeze.New(cfg)
}

func main() {
	cmd := &cli.Command{
		Name:    "flatfreeze",
		Usage:   "Serve a markdown blog or freeze it into static files",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("FLATFREEZE_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			freezeCommand(),
			newCommand(),
			{
				Name:  "version",
				Usage: "Print the flatfreeze version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Printf("flatfreeze %s\n", version)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

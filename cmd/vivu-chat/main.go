package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "vivu-chat",
		Usage: "plan trips with vivu from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Value:   "http://localhost:8080",
				Usage:   "backend base URL",
				EnvVars: []string{"VIVU_API"},
			},
			&cli.StringFlag{
				Name:    "generator",
				Usage:   "itinerary generator base URL, defaults to --api",
				EnvVars: []string{"VIVU_GENERATOR"},
			},
			&cli.StringFlag{
				Name:    "provider",
				Usage:   "ai provider hint sent with each message (gpt or gemini)",
				EnvVars: []string{"VIVU_PROVIDER"},
			},
			&cli.StringFlag{
				Name:    "user",
				Usage:   "user id that owns sessions and destinations",
				EnvVars: []string{"VIVU_USER"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token for authenticated calls",
				EnvVars: []string{"VIVU_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "state-dir",
				Value:   defaultStateDir(),
				Usage:   "directory for the remembered session and destination list",
				EnvVars: []string{"VIVU_STATE_DIR"},
			},
			&cli.StringFlag{
				Name:    "redis",
				Usage:   "redis address; keeps destinations in redis instead of the state dir",
				EnvVars: []string{"VIVU_REDIS"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level",
			},
		},
		Commands: []*cli.Command{
			chatCommand(),
			sessionsCommand(),
			destinationsCommand(),
			logoutCommand(),
		},
		DefaultCommand: "chat",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".vivu"
	}
	return filepath.Join(dir, "vivu")
}

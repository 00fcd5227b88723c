package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "talk to vivu and browse the itinerary",
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			if err := cl.ctrl.Start(c.Context); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "session %s, /help for commands\n", cl.ctrl.SessionID())

			r := &repl{ctrl: cl.ctrl, view: cl.view, cache: cl.cache, out: c.App.Writer}
			return r.run(c.Context, os.Stdin)
		},
	}
}

func sessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "list saved sessions of --user",
		Action: func(c *cli.Context) error {
			if c.String("user") == "" {
				return cli.Exit("sessions are listed per user, pass --user", 2)
			}
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			active, err := cl.state.SessionID()
			if err != nil {
				cl.logger.Warn("failed to read remembered session", zap.Error(err))
			}
			printSessions(c.App.Writer, cl.ctrl.Sessions(c.Context), active)
			return nil
		},
	}
}

func destinationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "destinations",
		Usage: "list places mentioned in conversations",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "keep running and print places as they are added",
			},
		},
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			printRecords(c.App.Writer, cl.cache.List())
			if !c.Bool("watch") {
				return nil
			}

			events, cancel, err := cl.cache.Subscribe(c.Context, 16)
			if err != nil {
				return err
			}
			defer cancel()

			for {
				select {
				case <-c.Context.Done():
					return nil
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					printRecords(c.App.Writer, ev.Records)
				}
			}
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the remembered session and the destination list",
		Action: func(c *cli.Context) error {
			cl, err := newClient(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			if err := cl.state.Clear(); err != nil {
				return err
			}
			if err := cl.cache.Clear(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "logged out")
			return nil
		},
	}
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"vivubot/internal/chatclient"
	"vivubot/internal/destinations"
)

const replHelp = `commands:
  /new            start a new session
  /sessions       list saved sessions
  /switch <id>    open a saved session
  /delete <id>    delete a saved session
  /day <key>      show another day of the itinerary
  /map            show the itinerary and map of the selected day
  /destinations   list places mentioned so far
  /quit           leave
anything else is sent to vivu`

var errQuit = errors.New("quit")

type repl struct {
	ctrl  *chatclient.Controller
	view  *chatclient.MapView
	cache *destinations.Cache
	out   io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	for _, m := range r.ctrl.Snapshot().Messages {
		printMessage(r.out, m)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		err := r.handle(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// handle runs one line of input. It returns errQuit on /quit.
func (r *repl) handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return r.send(ctx, line)
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return errQuit
	case "/help":
		fmt.Fprintln(r.out, replHelp)
	case "/new":
		id := r.ctrl.NewSession()
		fmt.Fprintf(r.out, "new session %s\n", id)
		printMessage(r.out, r.ctrl.Snapshot().Messages[0])
	case "/sessions":
		printSessions(r.out, r.ctrl.Sessions(ctx), r.ctrl.SessionID())
	case "/switch":
		if arg == "" {
			return errors.New("usage: /switch <session id>")
		}
		if !r.ctrl.SelectSession(ctx, arg) {
			return fmt.Errorf("session %s was replaced before it loaded", arg)
		}
		for _, m := range r.ctrl.Snapshot().Messages {
			printMessage(r.out, m)
		}
	case "/delete":
		if arg == "" {
			return errors.New("usage: /delete <session id>")
		}
		if err := r.ctrl.DeleteSession(ctx, arg); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "deleted %s\n", arg)
	case "/day":
		if err := r.view.SelectDay(arg); err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		printViewModel(r.out, r.view.Render(ctx, r.ctrl.Snapshot()))
	case "/map":
		printViewModel(r.out, r.view.Render(ctx, r.ctrl.Snapshot()))
	case "/destinations":
		printRecords(r.out, r.cache.List())
	default:
		return fmt.Errorf("unknown command %s, try /help", cmd)
	}
	return nil
}

func (r *repl) send(ctx context.Context, text string) error {
	err := r.ctrl.Send(ctx, text)
	if errors.Is(err, chatclient.ErrSendInFlight) {
		return err
	}

	msgs := r.ctrl.Snapshot().Messages
	if n := len(msgs); n > 0 && msgs[n-1].Sender == chatclient.SenderBot {
		printMessage(r.out, msgs[n-1])
	}
	return err
}

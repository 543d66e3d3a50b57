package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/geomap/internal/client/api"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Polygons(ctx context.Context) error
	Events(ctx context.Context) error
	Categories(ctx context.Context) error
	Seed(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: register, login, help, exit"
	helpMember = "Available commands: (l)ist, search <term>, add, delete <id>, polygons, events, categories, seed, whoami, logout, help, exit"
)

// runREPL reads one command per line from reader and dispatches it to a
// until EOF, "exit" or "quit". Command errors are reported and the loop
// goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "geomap%s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpMember)
			} else {
				fmt.Fprintln(w, helpGuest)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "search":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: search <term>")
				continue
			}
			cmdErr = a.Search(ctx, strings.Join(args, " "))
		case "add":
			cmdErr = a.Add(ctx)
		case "delete":
			if len(args) != 1 {
				fmt.Fprintln(w, "Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])
		case "polygons":
			cmdErr = a.Polygons(ctx)
		case "events":
			cmdErr = a.Events(ctx)
		case "categories":
			cmdErr = a.Categories(ctx)
		case "seed":
			cmdErr = a.Seed(ctx)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			reportError(w, cmdErr)
		}
	}
}

func reportError(w io.Writer, err error) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Fprintln(w, "Error:", err, "(login first)")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(w, "Error: server unavailable")
	default:
		fmt.Fprintln(w, "Error:", err)
	}
}

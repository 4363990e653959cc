package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context, query string) error
	Stats(ctx context.Context) error
	Refresh(ctx context.Context) error
	Retry(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Open(ctx context.Context, path string) error
	Nav(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the inventory CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               show available commands
//	  - register           create an account
//	  - login              authenticate
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - help               show available commands
//	  - (l)ist [query]     show components, optionally filtered
//	  - stats              show the summary cards
//	  - refresh            reload the list in the background
//	  - retry              retry a failed first load
//	  - add                add a component
//	  - edit <id>          edit a component
//	  - delete <id>        delete a component (asks for confirmation)
//	  - open <screen>      navigate, e.g. open /admin
//	  - nav                show navigation links
//	  - logout             log out
//	  - exit | quit        leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("inv %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: (l)ist [query], stats, refresh, retry, add, edit <id>, delete <id>, open <screen>, nav, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "l", "list":
			_ = a.List(ctx, strings.Join(args, " "))

		case "stats":
			_ = a.Stats(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "retry":
			_ = a.Retry(ctx)

		case "add":
			_ = a.Add(ctx)

		case "edit", "delete", "open":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <%s>", cmd, argName(cmd)))
				continue
			}
			switch cmd {
			case "edit":
				_ = a.Edit(ctx, args[0])
			case "delete":
				_ = a.Delete(ctx, args[0])
			case "open":
				_ = a.Open(ctx, args[0])
			}

		case "nav":
			_ = a.Nav(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func argName(cmd string) string {
	if cmd == "open" {
		return "screen"
	}
	return "id"
}

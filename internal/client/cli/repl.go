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
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF or "exit"/"quit". Commands needing a session are refused while
// logged out. Handler errors are reported by the handlers themselves.
//
//	Not logged in:  help, login, exit
//	Logged in:      help, passwd, whoami, login, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gauth %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: passwd, whoami, login, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "passwd", "whoami", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
			switch cmd {
			case "passwd":
				_ = a.ChangePassword(ctx)
			case "whoami":
				_ = a.WhoAmI(ctx)
			case "logout":
				_ = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/seedshop/internal/client/session"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a stub.
type execIface interface {
	sessionStatus() session.Status
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context) error
	AddToCart(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	SetQuantity(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	ClearCart(ctx context.Context) error
	Order(ctx context.Context) error

	NewSeed(ctx context.Context) error
	EditSeed(ctx context.Context, args []string) error
	DeleteSeed(ctx context.Context, args []string) error
	Restock(ctx context.Context, args []string) error
}

// sessionResolved reports whether the session state machine has settled.
// Gated commands are refused until then, so no content renders off a
// credential that has not been validated yet.
func sessionResolved(a execIface) bool {
	s := a.sessionStatus()
	return s == session.StatusAuthenticated || s == session.StatusAnonymous
}

// runREPL reads commands line by line and dispatches them. Command handlers
// report their own errors; the loop stays up until EOF or exit/quit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	fmt.Fprintln(out, "Welcome to the seed shop (type 'help' for commands)")

	for {
		fmt.Fprintf(out, "seed %s> ", statusFn())
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(a, out)
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		if !sessionResolved(a) {
			fmt.Fprintln(out, "Session state is still being checked, try again.")
			continue
		}

		switch cmd {
		case "register":
			runCmd(out, a.Register(ctx))
		case "login":
			runCmd(out, a.Login(ctx))
		case "logout":
			runCmd(out, a.Logout(ctx))
		default:
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Please log in first (login or register).")
				continue
			}
			switch cmd {
			case "l", "list":
				runCmd(out, a.List(ctx))
			case "search":
				runCmd(out, a.Search(ctx))
			case "add":
				runCmd(out, a.AddToCart(ctx, args))
			case "cart":
				runCmd(out, a.ShowCart(ctx))
			case "qty":
				runCmd(out, a.SetQuantity(ctx, args))
			case "remove":
				runCmd(out, a.RemoveFromCart(ctx, args))
			case "clearcart":
				runCmd(out, a.ClearCart(ctx))
			case "order":
				runCmd(out, a.Order(ctx))
			case "newseed", "editseed", "delseed", "restock":
				if !a.isAdmin() {
					fmt.Fprintln(out, "Admin only.")
					continue
				}
				switch cmd {
				case "newseed":
					runCmd(out, a.NewSeed(ctx))
				case "editseed":
					runCmd(out, a.EditSeed(ctx, args))
				case "delseed":
					runCmd(out, a.DeleteSeed(ctx, args))
				case "restock":
					runCmd(out, a.Restock(ctx, args))
				}
			default:
				fmt.Fprintln(out, "Unknown command:", cmd)
			}
		}
	}
}

func runCmd(out io.Writer, err error) {
	if err != nil {
		fmt.Fprintln(out, "Error:", err)
	}
}

func printHelp(a execIface, out io.Writer) {
	if !a.isLoggedIn() {
		fmt.Fprintln(out, "Available commands: register, login, exit")
		return
	}
	fmt.Fprintln(out, "Available commands: (l)ist, search, add <id>, cart, qty <id> <n>, remove <id>, clearcart, order, logout, exit")
	if a.isAdmin() {
		fmt.Fprintln(out, "Admin commands: newseed, editseed <id>, delseed <id>, restock <id> <n>")
	}
}

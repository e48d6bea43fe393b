package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/seedshop/internal/client/session"
)

// stubExec records which commands were dispatched.
type stubExec struct {
	status   session.Status
	loggedIn bool
	admin    bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) sessionStatus() session.Status { return s.status }
func (s *stubExec) isLoggedIn() bool              { return s.loggedIn }
func (s *stubExec) isAdmin() bool                 { return s.admin }

func (s *stubExec) Register(context.Context) error { return s.record("register") }
func (s *stubExec) Login(context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(context.Context) error   { return s.record("logout") }

func (s *stubExec) List(context.Context) error   { return s.record("list") }
func (s *stubExec) Search(context.Context) error { return s.record("search") }
func (s *stubExec) AddToCart(ctx context.Context, args []string) error {
	return s.record("add")
}
func (s *stubExec) ShowCart(context.Context) error { return s.record("cart") }
func (s *stubExec) SetQuantity(ctx context.Context, args []string) error {
	return s.record("qty")
}
func (s *stubExec) RemoveFromCart(ctx context.Context, args []string) error {
	return s.record("remove")
}
func (s *stubExec) ClearCart(context.Context) error { return s.record("clearcart") }
func (s *stubExec) Order(context.Context) error     { return s.record("order") }

func (s *stubExec) NewSeed(context.Context) error { return s.record("newseed") }
func (s *stubExec) EditSeed(ctx context.Context, args []string) error {
	return s.record("editseed")
}
func (s *stubExec) DeleteSeed(ctx context.Context, args []string) error {
	return s.record("delseed")
}
func (s *stubExec) Restock(ctx context.Context, args []string) error {
	return s.record("restock")
}

func run(t *testing.T, a *stubExec, input string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), a, func() string { return "test" }, scanner, &out)
	return out.String()
}

func TestREPLDispatchesWhenLoggedIn(t *testing.T) {
	a := &stubExec{status: session.StatusAuthenticated, loggedIn: true}

	run(t, a, "list\nadd 1\ncart\norder\nlogout\nexit\n")

	assert.Equal(t, []string{"list", "add", "cart", "order", "logout"}, a.calls)
}

func TestREPLBlocksGatedCommandsWhenAnonymous(t *testing.T) {
	a := &stubExec{status: session.StatusAnonymous}

	out := run(t, a, "list\nlogin\nexit\n")

	assert.Equal(t, []string{"login"}, a.calls)
	assert.Contains(t, out, "Please log in first")
}

func TestREPLBlocksEverythingUntilResolved(t *testing.T) {
	a := &stubExec{status: session.StatusChecking, loggedIn: true}

	out := run(t, a, "list\nlogin\nexit\n")

	assert.Empty(t, a.calls)
	assert.Contains(t, out, "still being checked")
}

func TestREPLAdminGate(t *testing.T) {
	a := &stubExec{status: session.StatusAuthenticated, loggedIn: true}

	out := run(t, a, "restock 1 5\nexit\n")
	assert.Empty(t, a.calls)
	assert.Contains(t, out, "Admin only")

	a = &stubExec{status: session.StatusAuthenticated, loggedIn: true, admin: true}
	run(t, a, "restock 1 5\nnewseed\nexit\n")
	assert.Equal(t, []string{"restock", "newseed"}, a.calls)
}

func TestREPLUnknownCommand(t *testing.T) {
	a := &stubExec{status: session.StatusAuthenticated, loggedIn: true}

	out := run(t, a, "dance\nexit\n")
	assert.Contains(t, out, "Unknown command: dance")
}

func TestREPLExitsOnEOF(t *testing.T) {
	a := &stubExec{status: session.StatusAnonymous}
	run(t, a, "") // no input at all: the loop must return, not spin
}

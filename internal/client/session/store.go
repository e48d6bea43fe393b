// Package session owns the authenticated identity for the life of the
// process, backed by a credential persisted in a local state slot. The store
// and the slot never observably diverge: every transition writes or erases
// the slot alongside the in-memory change.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/seedshop/internal/client/localdata"
	"github.com/dmitrijs2005/seedshop/internal/client/models"
	"github.com/dmitrijs2005/seedshop/internal/logging"
)

// Status is the session lifecycle state. Consumers gating content must wait
// until the status is resolved (Authenticated or Anonymous) instead of
// peeking at the credential slot directly.
type Status string

const (
	StatusUnknown       Status = "unknown"
	StatusChecking      Status = "checking"
	StatusAuthenticated Status = "authenticated"
	StatusAnonymous     Status = "anonymous"
)

// slotKey is the store's exclusive slot in local state.
const slotKey = "session_token"

// AuthClient is the slice of the remote API the session store needs.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string) (string, error)
}

// Store is the session state machine. It is not safe for concurrent use;
// the CLI drives it from a single goroutine.
type Store struct {
	client AuthClient
	slots  localdata.Repository
	log    logging.Logger
	now    func() time.Time

	status   Status
	identity models.User
	token    string
}

func NewStore(client AuthClient, slots localdata.Repository, log logging.Logger) *Store {
	return &Store{
		client: client,
		slots:  slots,
		log:    log,
		now:    time.Now,
		status: StatusUnknown,
	}
}

// Init resolves the initial state from the persisted credential: absent or
// unusable credentials leave the session anonymous (erasing the slot when the
// stored value is stale or garbled). Only a failing slot read is an error.
func (s *Store) Init(ctx context.Context) error {
	s.status = StatusChecking

	raw, ok, err := s.slots.Get(ctx, slotKey)
	if err != nil {
		s.becomeAnonymous()
		return fmt.Errorf("reading credential slot: %w", err)
	}
	if !ok {
		s.becomeAnonymous()
		return nil
	}

	user, err := DecodeToken(raw, s.now())
	if err != nil {
		s.log.Warn(ctx, "discarding stored credential", "reason", err.Error())
		s.eraseSlot(ctx)
		s.becomeAnonymous()
		return nil
	}

	s.token = raw
	s.identity = user
	s.status = StatusAuthenticated
	return nil
}

// Login authenticates against the server and persists the issued credential.
// The remote failure message is returned verbatim.
func (s *Store) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.client.Login)
}

// Register creates an account; the contract is identical to Login.
func (s *Store) Register(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.client.Register)
}

func (s *Store) authenticate(ctx context.Context, email, password string, call func(context.Context, string, string) (string, error)) error {
	token, err := call(ctx, email, password)
	if err != nil {
		s.eraseSlot(ctx)
		s.becomeAnonymous()
		return err
	}

	if err := s.slots.Set(ctx, slotKey, token); err != nil {
		s.becomeAnonymous()
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	// Confirm the write actually landed before declaring the session live.
	stored, ok, err := s.slots.Get(ctx, slotKey)
	if err != nil || !ok || stored != token {
		s.eraseSlot(ctx)
		s.becomeAnonymous()
		return ErrPersistenceFailure
	}

	user, err := DecodeToken(token, s.now())
	switch {
	case err == nil:
		s.token = token
		s.identity = user
		s.status = StatusAuthenticated

	case errors.Is(err, ErrExpiredCredential):
		// The call succeeded but the issued credential is already stale;
		// it never grants a session.
		s.log.Warn(ctx, "issued credential already expired", "email", email)
		s.eraseSlot(ctx)
		s.becomeAnonymous()

	default:
		// Structurally unreadable credential after a successful call: keep
		// the session usable with a minimal identity.
		s.log.Warn(ctx, "credential unreadable, using fallback identity", "email", email)
		s.token = token
		s.identity = models.User{ID: 0, Email: email, Role: models.RoleUser}
		s.status = StatusAuthenticated
	}
	return nil
}

// Logout erases the credential and returns to anonymous. It never fails;
// a slot error is logged and the in-memory session is dropped regardless.
func (s *Store) Logout(ctx context.Context) {
	s.eraseSlot(ctx)
	s.becomeAnonymous()
}

// Status returns the current lifecycle state.
func (s *Store) Status() Status {
	return s.status
}

// IsAuthenticated reports whether the session holds an identity.
func (s *Store) IsAuthenticated() bool {
	return s.status == StatusAuthenticated
}

// Identity returns the current identity, if authenticated.
func (s *Store) Identity() (models.User, bool) {
	return s.identity, s.status == StatusAuthenticated
}

// Token returns the raw credential for outgoing requests, or "" when
// anonymous.
func (s *Store) Token() string {
	return s.token
}

func (s *Store) becomeAnonymous() {
	s.status = StatusAnonymous
	s.identity = models.User{}
	s.token = ""
}

func (s *Store) eraseSlot(ctx context.Context) {
	if err := s.slots.Delete(ctx, slotKey); err != nil {
		s.log.Error(ctx, "erasing credential slot", "error", err.Error())
	}
}

// Package authflow orchestrates sign-up and sign-in: validation, credential
// lookup, password check, session update, and the navigation intent handed
// back to the UI layer. It owns the user-visible error taxonomy.
package authflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/carnetapp/carnet/internal/client/accounts"
	"github.com/carnetapp/carnet/internal/client/password"
	"github.com/carnetapp/carnet/internal/client/validation"
	"github.com/carnetapp/carnet/internal/common"
	"github.com/carnetapp/carnet/internal/logging"
)

// State models one flow: Idle -> Validating -> Submitting -> {Success,
// Failed}. Terminal states return to Idle via Acknowledge.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Navigation is the abstract intent the flow hands to the UI layer.
type Navigation int

const (
	NavNone Navigation = iota
	// NavSignIn: account created, go to the sign-in screen.
	NavSignIn
	// NavHome: authenticated, go to the main area.
	NavHome
)

// ErrBusy rejects re-entrant submission while a flow is in flight — the
// double-tap guard, and the only concurrency guard in the system.
var ErrBusy = errors.New("a submission is already in progress")

// User-facing messages.
const (
	MsgInvalidCredentials = "Email ou mot de passe incorrect."
	MsgDuplicateEmail     = "Un compte existe déjà avec cet email."
	MsgAccountCreated     = "Tu peux maintenant te connecter."
)

// Result is the outcome of one submission.
type Result struct {
	Nav         Navigation
	FieldErrors validation.FieldErrors
	// Message is the user-facing text for terminal outcomes.
	Message string
	Err     error
}

// CredentialStore is the adapter surface the flow depends on.
type CredentialStore interface {
	CreateAccount(ctx context.Context, email, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (*accounts.Account, error)
	UpsertProfile(ctx context.Context, p accounts.Profile) error
	FetchProfile(ctx context.Context, email string) (*accounts.Profile, error)
}

// sessionStore is the slice of the session API the flow mutates.
type sessionStore interface {
	Set(email string)
	Clear()
}

// Controller runs the sign-up and sign-in sequences. One instance per
// process; submissions are serialized by the busy flag.
type Controller struct {
	creds   CredentialStore
	session sessionStore
	logger  logging.Logger

	mu    sync.Mutex
	state State
	busy  bool
}

func NewController(creds CredentialStore, session sessionStore, logger logging.Logger) *Controller {
	return &Controller{creds: creds, session: session, logger: logger, state: StateIdle}
}

// State returns the flow's current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Acknowledge returns a terminal state to Idle. Called by the UI after it
// navigated away or dismissed the error.
func (c *Controller) Acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSuccess || c.state == StateFailed {
		c.state = StateIdle
	}
}

// SignOut clears the session. No remote call is involved.
func (c *Controller) SignOut() {
	c.session.Clear()
}

// begin claims the flow or rejects a re-entrant submission.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	c.state = StateValidating
	return nil
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// finish releases the busy flag and records the terminal state.
func (c *Controller) finish(s State) {
	c.mu.Lock()
	c.state = s
	c.busy = false
	c.mu.Unlock()
}

// SignUp runs the sign-up sequence: validate, hash, create the account,
// best-effort profile upsert, then hand back the go-to-sign-in intent.
func (c *Controller) SignUp(ctx context.Context, in validation.SignUpInput) Result {
	if err := c.begin(); err != nil {
		return Result{Err: err}
	}

	if fe := validation.ValidateSignUp(in); fe != nil {
		c.finish(StateFailed)
		return Result{FieldErrors: fe, Err: fe}
	}

	c.setState(StateSubmitting)

	digest, err := password.Hash(in.Password)
	if err != nil {
		c.finish(StateFailed)
		return Result{Err: err}
	}

	email := validation.NormalizeEmail(in.Email)

	if err := c.creds.CreateAccount(ctx, email, digest); err != nil {
		c.finish(StateFailed)
		if errors.Is(err, common.ErrDuplicateEmail) {
			// Duplicate email: the profile upsert is skipped.
			return Result{Message: MsgDuplicateEmail, Err: common.ErrDuplicateEmail}
		}
		return Result{Err: err}
	}

	// The profile is supplementary; a failure here must not fail sign-up.
	profile := accounts.Profile{
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
	}
	if err := c.creds.UpsertProfile(ctx, profile); err != nil {
		c.logger.Warn(ctx, "profile upsert failed", "error", err)
	}

	c.finish(StateSuccess)
	return Result{Nav: NavSignIn, Message: MsgAccountCreated}
}

// SignIn runs the sign-in sequence. Account-not-found, store errors on the
// lookup, and a wrong password all produce the identical result: the two
// failure paths must stay indistinguishable to the caller.
func (c *Controller) SignIn(ctx context.Context, in validation.SignInInput) Result {
	if err := c.begin(); err != nil {
		return Result{Err: err}
	}

	if fe := validation.ValidateSignIn(in); fe != nil {
		c.finish(StateFailed)
		return Result{FieldErrors: fe, Err: fe}
	}

	c.setState(StateSubmitting)

	email := validation.NormalizeEmail(in.Email)

	account, err := c.creds.FindByEmail(ctx, email)
	if err != nil {
		c.finish(StateFailed)
		return Result{Message: MsgInvalidCredentials, Err: common.ErrInvalidCredentials}
	}

	if !password.Verify(in.Password, account.PasswordHash) {
		c.finish(StateFailed)
		return Result{Message: MsgInvalidCredentials, Err: common.ErrInvalidCredentials}
	}

	// Opportunistic profile read; a failure is irrelevant to the outcome.
	if _, err := c.creds.FetchProfile(ctx, email); err != nil {
		c.logger.Debug(ctx, "profile fetch failed", "error", err)
	}

	c.session.Set(email)

	c.finish(StateSuccess)
	return Result{Nav: NavHome}
}

// Package cli is the interactive front end of the carnet client: a small
// REPL standing in for the mobile screens. It wires the row-store SDK, the
// session store, the auth flow controller, and the contacts service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/carnetapp/carnet/internal/client/accounts"
	"github.com/carnetapp/carnet/internal/client/authflow"
	"github.com/carnetapp/carnet/internal/client/config"
	"github.com/carnetapp/carnet/internal/client/contacts"
	"github.com/carnetapp/carnet/internal/client/session"
	"github.com/carnetapp/carnet/internal/logging"
	"github.com/carnetapp/carnet/internal/tablestore"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	session  *session.Store
	flow     *authflow.Controller
	contacts *contacts.Service
	reader   *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	ts := tablestore.NewClient(c.StoreURL, c.StoreKey)
	sess := session.NewStore()
	creds := accounts.NewStore(ts)

	return &App{
		config:   c,
		logger:   logger,
		session:  sess,
		flow:     authflow.NewController(creds, sess, logger),
		contacts: contacts.NewService(ts, sess, logger),
		reader:   bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	// Screens re-render on session change; here that's a line on stdout.
	cancel := a.session.Subscribe(func(email string, signedIn bool) {
		if signedIn {
			fmt.Printf("Connecté en tant que %s\n", email)
		} else {
			fmt.Println("Déconnecté.")
		}
	})
	defer cancel()

	a.Root(ctx)
}

func (a *App) isSignedIn() bool {
	_, ok := a.session.Current()
	return ok
}

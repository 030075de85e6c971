// Package cli implements the interactive command-line client for the
// banksim server: account registration and the two-step password + OTAC
// login flow.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/banksim/internal/client/api"
	"github.com/dmitrijs2005/banksim/internal/client/config"
	"github.com/dmitrijs2005/banksim/internal/httpapi"
)

// apiClient is the server surface the CLI needs; the real api.Client
// satisfies it, tests can provide a stub.
type apiClient interface {
	Register(ctx context.Context, req httpapi.RegisterRequest) (int64, error)
	PasswordLogin(ctx context.Context, accountID int64, password string) error
	OtacLogin(ctx context.Context, code string) (string, error)
	Session(ctx context.Context) (*httpapi.SessionResponse, error)
	Account(ctx context.Context, accessToken string) (int64, error)
	Logout(ctx context.Context) error
}

type App struct {
	config      *config.Config
	api         apiClient
	reader      *bufio.Reader
	accessToken string
	accountID   int64
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.NewClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.accessToken != ""
}

func (a *App) showLogin() string {
	if a.isLoggedIn() {
		return "logged in"
	}
	return "not logged in"
}

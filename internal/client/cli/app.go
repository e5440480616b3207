package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/notebook/internal/client/api"
	"github.com/dmitrijs2005/notebook/internal/client/config"
)

// session is the part of api.Client the commands rely on.
type session interface {
	Register(ctx context.Context, name, email, password string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Me(ctx context.Context) (*api.User, error)
	CreateNote(ctx context.Context, title, description, tag string) (*api.Note, error)
	ListNotes(ctx context.Context) ([]api.Note, error)
	UpdateNote(ctx context.Context, id, title, description, tag string) (*api.Note, error)
	DeleteNote(ctx context.Context, id string) (*api.Note, error)
	Export(ctx context.Context) (*api.Export, error)
	LoggedIn() bool
	Logout()
}

type App struct {
	config   *config.Config
	api      session
	download func(ctx context.Context, url string) ([]byte, error)
	reader   *bufio.Reader
	out      io.Writer
	userName string
}

func NewApp(c *config.Config) *App {
	client := api.New(c.ServerURL, c.RequestTimeout)

	return &App{
		config:   c,
		api:      client,
		download: presignedDownloader(client.HTTPClient()),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

// Run blocks in the REPL until the user quits, stdin closes or ctx is done.
func (a *App) Run(ctx context.Context) {
	log.Printf("Welcome to notebook CLI, server %s (type 'help' for commands)", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() || a.userName == "" {
		return ""
	}
	return "(" + a.userName + ")"
}

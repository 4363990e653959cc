package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/circuitstock/internal/client/client"
	"github.com/dmitrijs2005/circuitstock/internal/client/config"
	"github.com/dmitrijs2005/circuitstock/internal/client/dashboard"
	"github.com/dmitrijs2005/circuitstock/internal/client/guard"
	"github.com/dmitrijs2005/circuitstock/internal/client/models"
	"github.com/dmitrijs2005/circuitstock/internal/client/repositories"
	"github.com/dmitrijs2005/circuitstock/internal/client/services"
	"github.com/dmitrijs2005/circuitstock/internal/client/session"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	store       session.Store
	client      client.Client
	authService services.AuthService
	// dash is the mounted dashboard, nil until a screen is entered.
	dash   *dashboard.Dashboard
	screen string
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database and connects to the configured service.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	db, err := repositories.InitDatabase(context.Background(), c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init session database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return newApp(c, db, apiClient, log, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, db *sql.DB, apiClient client.Client, log logging.Logger, r *bufio.Reader, w io.Writer) *App {
	return &App{
		config:      c,
		log:         log,
		db:          db,
		store:       session.NewSQLiteStore(db),
		client:      apiClient,
		authService: services.NewAuthService(apiClient, log),
		screen:      models.PathRoot,
		reader:      r,
		out:         w,
	}
}

// Run resumes a stored session, if any, and serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()

	a.println("Welcome to the Electronics Inventory CLI (type 'help' for commands)")
	if a.isLoggedIn(ctx) {
		_ = a.Open(ctx, models.PathRoot)
	}

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
	a.unmount()
	return nil
}

func (a *App) session(ctx context.Context) models.Session {
	s, err := a.store.Get(ctx)
	if err != nil {
		a.log.Error(ctx, "read session", "error", err)
	}
	return s
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session(ctx).Authenticated()
}

// status is the prompt decoration: user, role and current screen.
func (a *App) status(ctx context.Context) string {
	s := a.session(ctx)
	if !s.Authenticated() {
		return "(guest)"
	}
	return fmt.Sprintf("(%s %s %s)", s.UserName, s.Role, a.screen)
}

// enter runs the route guard for the current screen, following redirects,
// and mounts the dashboard on first entry. It returns a context carrying the
// session token, or false when the user has to log in first.
func (a *App) enter(ctx context.Context) (context.Context, bool) {
	s := a.session(ctx)
	if s.Authenticated() && a.screen == models.PathLogin {
		a.screen = models.PathRoot
	}
	for range len(guard.Routes) + 1 {
		d := guard.Navigate(s, a.screen)
		if d.Allowed {
			break
		}
		a.screen = d.Redirect
	}
	if a.screen == models.PathLogin || !s.Authenticated() {
		a.unmount()
		a.println("Please log in first (type 'login').")
		return ctx, false
	}

	ctx = client.WithToken(ctx, s.Token)
	if a.dash == nil {
		a.dash = dashboard.New(a.client, a.log, dashboard.WithToastTTL(a.config.ToastTimeout))
		_ = a.dash.Load(ctx)
	}
	return ctx, true
}

func (a *App) unmount() {
	if a.dash != nil {
		a.dash.Close()
		a.dash = nil
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

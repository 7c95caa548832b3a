package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AllanOcung/Group-BSE25-1/internal/client/apiclient"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/config"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/resources"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/session"
	"github.com/AllanOcung/Group-BSE25-1/internal/client/tokens"
	"github.com/AllanOcung/Group-BSE25-1/internal/filex"
	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	api      *apiclient.Client
	session  *session.Session
	projects *resources.Projects
	posts    *resources.Posts
	users    *resources.Users
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	closer func() error

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp wires the token store, transport, session and resource managers
// described by c.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	var (
		store  tokens.Store
		closer = func() error { return nil }
	)
	if c.TokenDB == "" {
		store = tokens.NewMemoryStore()
	} else {
		if _, err := filex.EnsureDir(filepath.Dir(c.TokenDB)); err != nil {
			return nil, err
		}
		db, err := tokens.InitDatabase(ctx, c.TokenDB)
		if err != nil {
			log.Error(ctx, "error initializing token database", "path", c.TokenDB, "error", err)
			return nil, err
		}
		store = tokens.NewSQLiteStore(db)
		closer = db.Close
	}

	api, err := apiclient.New(c.APIURL, store,
		apiclient.WithTimeout(c.RequestTimeout),
		apiclient.WithLogger(log),
	)
	if err != nil {
		_ = closer()
		return nil, err
	}

	a := newApp(c, api, store, log, os.Stdin, os.Stdout)
	a.closer = closer
	return a, nil
}

func newApp(c *config.Config, api *apiclient.Client, store tokens.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		api:      api,
		session:  session.New(api, store, log),
		projects: resources.NewProjects(api),
		posts:    resources.NewPosts(api),
		users:    resources.NewUsers(api),
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		closer:   func() error { return nil },
	}
}

func (a *App) Close() error {
	return a.closer()
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// requestCtx bounds a single API call. Prompts run outside of it.
func (a *App) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(pingCtx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Username + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run restores any stored session, starts the connectivity watcher and
// blocks in the REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the team portfolio CLI (type 'help' for commands)")
	a.restore(ctx)

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a.commands(), a.getStatus, a.reader, a.out)
}

func (a *App) restore(ctx context.Context) {
	reqCtx, cancel := a.requestCtx(ctx)
	defer cancel()

	if err := a.session.Restore(reqCtx); err != nil {
		a.log.Warn(ctx, "stored session could not be restored", "error", err)
		fmt.Fprintln(a.out, "Your previous session has expired, please log in again.")
		return
	}
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s.\n", u.DisplayName())
	}
}

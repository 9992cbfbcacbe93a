package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/config"
	"github.com/fwojciec/roster/goquery"
	"github.com/fwojciec/roster/rod"
	rslog "github.com/fwojciec/roster/slog"
	"github.com/fwojciec/roster/sqlite"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). The --db flag takes
	// precedence.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Browser for end-to-end testing. When nil, Chrome is launched for
	// commands that need a live page.
	Browser Browser

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: config.DefaultDBPath(os.Getenv),
		Now:    time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("roster"),
		kong.Description("Collect people cards from an incrementally loading page."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'roster --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger, closer := newLogger(stderr, cli.Verbose, cli.LogFile)
	if closer != nil {
		m.closers = append(m.closers, closer)
	}
	defer m.Close()
	deps.Logger = logger

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}
	deps.Config = cfg
	deps.Registry = newRegistry(cfg.Sites)

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	if dbPath != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(dbPath), 0o755)
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", config.DBEnv)
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}

	deps.Storage = rslog.NewLoggingKeyValueStore(sqlite.NewKeyValueStore(m.DB), logger)
	deps.Sessions = sqlite.NewSessionService(m.DB)
	deps.Browser = m.Browser

	needsBrowser := cmd == "watch" || (cmd == "scrape" && isURL(cli.Scrape.Target))
	if needsBrowser && deps.Browser == nil {
		headless := cfg.Headless
		if cmd == "watch" && cli.Watch.Headed {
			headless = false
		}

		manager, err := rod.NewBrowserManager(
			rod.WithHeadless(headless),
			rod.WithUserDataDir(cfg.UserDataDir),
			rod.WithManagerLogger(logger),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.closers = append(m.closers, manager)

		deps.Browser = &rodBrowser{manager: manager, config: cfg, logger: logger}
	}

	return kongCtx.Run(deps)
}

// rodBrowser opens live pages in a Chrome process.
type rodBrowser struct {
	manager *rod.BrowserManager
	config  *config.Config
	logger  *slog.Logger
}

func (b *rodBrowser) Open(ctx context.Context, url string) (*Page, error) {
	page, err := b.manager.Open(ctx, url)
	if err != nil {
		return nil, err
	}

	return &Page{
		Document: rod.NewLoggingDocument(rod.NewDocument(page), b.logger),
		Changes: rod.NewObserver(page,
			rod.WithPollInterval(b.config.PollInterval),
			rod.WithContainerChain(roster.ContainerChain()),
			rod.WithObserverLogger(b.logger),
		),
		Clicker: rslog.NewLoggingClicker(rod.NewClicker(page, b.config.ClickRate), b.logger),
	}, nil
}

// newLogger returns a text logger on stderr, or a JSON logger over a
// rotating file when logFile is set. The returned closer may be nil.
func newLogger(stderr io.Writer, verbose bool, logFile string) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	if logFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil
	}

	out := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	}
	return slog.New(slog.NewJSONHandler(out, opts)), out
}

// loadConfig builds the configuration from defaults and the first config
// file found.
func loadConfig(explicit string) (*config.Config, error) {
	cfg := config.NewConfig()

	path := config.FindFile(explicit)
	if path == "" && explicit != "" {
		return nil, fmt.Errorf("load config %q: %w", explicit, config.ErrConfigNotFound)
	}
	if path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
		cfg.Apply(f)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRegistry returns the selector registry with site overrides from the
// configuration.
func newRegistry(sites map[string]config.SiteConfig) *goquery.Registry {
	registry := goquery.NewRegistry(goquery.DefaultStrategy())
	for host, site := range sites {
		registry.Register(host, goquery.Strategy{
			CardSelectors:     site.CardSelectors,
			NameSelectors:     site.NameSelectors,
			PositionSelectors: site.PositionSelectors,
			ProfileMarker:     site.ProfileMarker,
		})
	}
	return registry
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

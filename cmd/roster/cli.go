package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/roster"
	"github.com/fwojciec/roster/config"
	"github.com/fwojciec/roster/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   *config.Config
	Registry *goquery.Registry
	Storage  roster.KeyValueStore
	Sessions roster.SessionService
	Browser  Browser
	Now      func() time.Time
}

// Browser opens live documents.
type Browser interface {
	Open(ctx context.Context, url string) (*Page, error)
}

// Page is a live document with its change feed and load-more control.
type Page struct {
	Document roster.Document
	Changes  roster.ChangeObservable
	Clicker  roster.LoadMoreClicker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Configuration file (default: ./.roster.yaml or XDG config dir)" type:"path"`
	DB      string `name:"db" help:"Database path (default: $ROSTER_DB or XDG data dir)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
	LogFile string `name:"log-file" help:"Write JSON logs to a rotating file" type:"path"`

	Watch    WatchCmd    `cmd:"" help:"Monitor a people page and collect cards as they load"`
	Scrape   ScrapeCmd   `cmd:"" help:"Extract people once from a URL or a saved HTML file"`
	List     ListCmd     `cmd:"" help:"Show collected people"`
	Export   ExportCmd   `cmd:"" help:"Write collected people to a CSV file"`
	Clear    ClearCmd    `cmd:"" help:"Remove collected people"`
	Sessions SessionsCmd `cmd:"" help:"List past monitoring sessions"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	URL         string        `arg:"" help:"People page URL"`
	Duration    time.Duration `short:"d" help:"Stop after this long (default: until interrupted)"`
	Export      string        `help:"Write a CSV to this directory when done" type:"path"`
	Company     string        `help:"Company name for the export"`
	EmailFormat string        `name:"email-format" help:"Email pattern, e.g. first.last@company.com"`
	Headed      bool          `help:"Show the browser window"`
	SaveHTML    string        `name:"save-html" help:"Save the final page markup to this directory" type:"path"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Target  string `arg:"" help:"People page URL or saved HTML file"`
	BaseURL  string `name:"base-url" default:"https://www.linkedin.com/" help:"Base URL for links in a saved HTML file without a source comment"`
	SaveHTML string `name:"save-html" help:"Save the page markup to this directory (URL targets only)" type:"path"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Markdown bool `short:"m" help:"Render as a Markdown table"`
	Limit    int  `short:"n" help:"Number of people to show (default: preview limit from config)"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Company     string `help:"Company name for the export"`
	EmailFormat string `name:"email-format" help:"Email pattern, e.g. first.last@company.com"`
	Out         string `short:"o" default:"." help:"Output directory" type:"path"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct{}

// SessionsCmd is the "sessions" subcommand.
type SessionsCmd struct {
	URL   string `help:"Only show sessions for this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of sessions"`
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Makepad-fr/stock/internal/config"
	"github.com/Makepad-fr/stock/internal/log"
	"github.com/Makepad-fr/stock/internal/server"
	"github.com/Makepad-fr/stock/internal/session"
	"github.com/Makepad-fr/stock/internal/store/jsonstore"
	"github.com/Makepad-fr/stock/internal/tui"
	"github.com/Makepad-fr/stock/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const debugLogFile = "stock-debug.log"

// Options carries everything the subcommands need from main.
type Options struct {
	Config config.Config
	Logger log.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = log.Discard
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Stdout)
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls", "shell", "tui", "serve":
		if len(a) != 0 {
			ui.Fail(opt.Stderr, fmt.Sprintf("usage: stock %s", cmd))
			return 2
		}
		seed, err := loadSeed(opt.Config)
		if err != nil {
			ui.Fail(opt.Stderr, "seed: "+err.Error())
			return 1
		}
		switch cmd {
		case "ls":
			return doList(seed, opt)
		case "shell":
			return doShell(seed, opt)
		case "tui":
			return doTUI(seed, opt)
		default:
			return doServe(seed, opt)
		}
	}

	ui.Fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `stock - a tiny session inventory

Usage:
  stock [flags] <subcommand>

Subcommands:
  ls        Print the starting inventory and its summary
  shell     Line-oriented session on stdin (type "help" inside)
  tui       Interactive terminal session
  serve     Single-page web front end, one inventory per browser session

Flags:
  -s, --seed <file>      JSON array of item names every session starts with
      --demo             start with chleb, bułka, kiełbasa, ketchup
  -a, --addr <host:port> listen address for serve
      --session-ttl <d>  idle timeout of web sessions (e.g. 30m)
  -t, --theme <name>     classic, neon or mono
      --color/--no-color force or disable colour
      --debug            log session state after every change

Nothing is saved: items live only as long as the session.

Examples:
  stock --demo ls
  stock --seed items.json shell
  stock --demo tui
  STOCK_TOKEN=secret stock serve -a :8501
`)
}

func loadSeed(cfg config.Config) ([]string, error) {
	switch {
	case cfg.Demo:
		return jsonstore.Demo(), nil
	case cfg.SeedFile != "":
		return jsonstore.LoadSeed(cfg.SeedFile)
	}
	return nil, nil
}

// -------------- subcommand impls ----------------

func doList(seed []string, opt Options) int {
	s := session.New(seed)
	defer s.End()
	inv := s.Inventory()
	ui.Render(opt.Stdout, inv.Items(), inv.Entries())
	return 0
}

func doShell(seed []string, opt Options) int {
	s := session.New(seed)
	defer s.End()
	logger := log.Discard
	if opt.Config.Debug {
		logger = log.NewContext(opt.Logger, "shell:")
	}
	logger.Log("session", s.ID, "started with", len(seed), "items")

	sh := &shell{
		sess:   s,
		in:     opt.Stdin,
		out:    opt.Stdout,
		debug:  opt.Config.Debug,
		logger: logger,
	}
	if err := sh.run(); err != nil {
		ui.Fail(opt.Stderr, "shell: "+err.Error())
		return 1
	}
	logger.Log("session", s.ID, "ended")
	return 0
}

func doTUI(seed []string, opt Options) int {
	s := session.New(seed)
	defer s.End()

	// The alternate screen owns the terminal, so debug output goes to a file.
	logger := log.Discard
	if opt.Config.Debug {
		f, err := tea.LogToFile(debugLogFile, "stock")
		if err != nil {
			ui.Fail(opt.Stderr, "debug log: "+err.Error())
			return 1
		}
		defer f.Close()
		logger = log.NewContext(log.ConsoleLogger{}, "tui:")
	}
	if err := tui.Run(s, tui.Options{Debug: opt.Config.Debug, Logger: logger}); err != nil {
		ui.Fail(opt.Stderr, "tui: "+err.Error())
		return 1
	}
	return 0
}

func doServe(seed []string, opt Options) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewContext(opt.Logger, "server:")
	mgr := session.NewManager(seed, opt.Config.SessionTTL,
		session.WithLogger(log.NewContext(logger, "session")))
	srv := server.New(mgr, server.Options{
		Addr:   opt.Config.Addr,
		Token:  opt.Config.Token,
		Debug:  opt.Config.Debug,
		Logger: logger,
	})
	ui.OK(opt.Stdout, "listening on http://"+opt.Config.Addr)
	if err := srv.Serve(ctx); err != nil {
		ui.Fail(opt.Stderr, "serve: "+err.Error())
		return 1
	}
	return 0
}

package main

import (
	"fmt"
	"os"

	"github.com/Makepad-fr/stock/internal/cli"
	"github.com/Makepad-fr/stock/internal/config"
	"github.com/Makepad-fr/stock/internal/log"
	"github.com/Makepad-fr/stock/internal/ui"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}
	cfg := config.Default()
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("stock", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg.BindFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(2)
	}

	ui.SetColorForcing(cfg.Color, cfg.NoColor)
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Config: cfg,
		Logger: log.ConsoleLogger{},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}

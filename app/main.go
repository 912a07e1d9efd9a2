package main

import (
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/nafsma/legis-tracker/app/cfg"
)

type options struct {
	cfg.Opts

	DailyCheck dailyCheckCommand `command:"daily-check" description:"Run the daily legislative check and generate a digest"`
	Search     searchCommand     `command:"search" description:"Search Congress.gov for bills matching a query"`
	ShowState  showStateCommand  `command:"show-state" description:"Show tracking state statistics"`
	ResetState resetStateCommand `command:"reset-state" description:"Delete the tracking state file"`
	Serve      serveCommand      `command:"serve" description:"Start the HTTP status server"`
}

func main() {
	var opts options

	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		appCfg := cfg.Build(opts.Opts)
		setupLogging(appCfg.Debug)
		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Command navsim replays a navigation script against an in-memory browser tab
// and prints every change the selected location adapter reports.
//
//	navsim --mode fragment --url http://localhost/app --script steps.txt
//
// Script lines are "push PATH", "replace PATH", "pop", "type FRAGMENT",
// "back", "forward", "listen", "unlisten" and "dispose". Blank lines and lines
// starting with "#" are ignored. Without --script the script is read from stdin.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/platform/memory"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "navsim:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := pflag.NewFlagSet("navsim", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "TOML config file")
	mode := flags.StringP("mode", "m", "", "location mode: auto, fragment or session (overrides config)")
	startURL := flags.StringP("url", "u", "http://localhost/", "initial URL of the simulated tab")
	scriptPath := flags.StringP("script", "s", "", "script file (default stdin)")
	logLevel := flags.String("log-level", "", "log level (overrides config)")
	noPushState := flags.Bool("no-pushstate", false, "simulate a tab without the session history API")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := waypoint.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	waypoint.Init(waypoint.Options{
		LogPath:  cfg.LogPath,
		LogLevel: cfg.LogLevel,
		Debug:    cfg.LogLevel == "debug",
	})
	defer waypoint.Close()

	script := stdin
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		script = f
	}
	steps, err := parseScript(script)
	if err != nil {
		return err
	}

	opts := []memory.Option{memory.WithURL(*startURL)}
	if *noPushState {
		opts = append(opts, memory.WithoutPushState())
	}
	win, err := memory.New(opts...)
	if err != nil {
		return err
	}

	loc, err := waypoint.NewLocation(win, cfg)
	if err != nil {
		return err
	}

	return newSimulator(win, loc, stdout).run(steps)
}

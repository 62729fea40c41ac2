package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/wildfunctions/sci_calculator/pkg/calc"
	"github.com/wildfunctions/sci_calculator/pkg/engine"
	"github.com/wildfunctions/sci_calculator/pkg/keypad"
)

func main() {
	cfg := engine.DefaultConfig()
	var expression string

	flag.StringVar(&cfg.Layout, "layout", cfg.Layout, "keypad layout ("+strings.Join(keypad.Names(), ", ")+")")
	flag.StringVar(&cfg.LayoutFile, "layout-file", cfg.LayoutFile, "YAML keypad layout file (overrides -layout)")
	flag.IntVar(&cfg.Digits, "digits", cfg.Digits, "significant digits in results")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max expression nesting depth")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "session report format (text, json, latex)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every key press")
	flag.StringVar(&expression, "e", "", "evaluate an expression and exit")
	flag.Parse()

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	e, err := engine.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if expression != "" {
		ev := e.Eval(expression)
		fmt.Println(ev.Result)
		if ev.Result == calc.ErrorMarker {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := e.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := engine.WriteReport(os.Stdout, cfg.Format, e.Report()); err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
		os.Exit(1)
	}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"cogentcore.org/plotscope/config"
	"github.com/muesli/termenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// app is the plotscope command line.
type app struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	configFile string
	verbose    bool
	settings   *config.Settings
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{stdout: stdout, stderr: stderr}
	a.root = &cobra.Command{
		Use:   "plotscope",
		Short: "Render plot payloads",
		Long: `plotscope standardizes plot payloads (direct, legacy, or complete
models, and combined plots) and renders them to SVG or PNG.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	pf := a.root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "settings file (TOML or YAML); default "+config.DefaultFile)
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")

	a.root.AddCommand(
		a.newRenderCmd(),
		a.newInfoCmd(),
		a.newConfigCmd(),
	)
	return a
}

// Execute runs the command line until it finishes or is interrupted.
func (a *app) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return a.root.ExecuteContext(ctx)
}

func (a *app) executeArgs(ctx context.Context, args ...string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup configures logging and loads the settings.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})))

	var err error
	if a.configFile == "" {
		a.settings, err = config.Load(config.DefaultFile)
	} else {
		a.settings, err = config.Open(a.configFile)
	}
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	slog.Debug("settings loaded", "locale", a.settings.Locale, "timezone", a.settings.Timezone)
	return nil
}

// status prints a highlighted status line on stderr.
func (a *app) status(format string, args ...any) {
	o := termenv.NewOutput(a.stderr)
	tag := o.String("plotscope").Foreground(o.Color("6")).Bold()
	fmt.Fprintf(a.stderr, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

func (a *app) newConfigCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the effective settings as TOML: the defaults overridden by the
settings file. With --save the settings are written to the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := toml.Marshal(a.settings)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, string(b))
			if !save {
				return nil
			}
			fnm := a.configFile
			if fnm == "" {
				fnm = config.DefaultFile
			}
			if err := config.Save(fnm, a.settings); err != nil {
				return err
			}
			a.status("saved %s", fnm)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the settings to the settings file")
	return cmd
}

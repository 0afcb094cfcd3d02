// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/base/loop"
	"cogentcore.org/plotscope/config"
	"cogentcore.org/plotscope/plot/export"
	"cogentcore.org/plotscope/plot/model"
	"cogentcore.org/plotscope/plot/render"
	"cogentcore.org/plotscope/plot/scope"
	"github.com/fsnotify/fsnotify"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	output string
	scale  float64
	watch  bool
}

func (a *app) newRenderCmd() *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render PAYLOAD",
		Short: "Render a plot payload to SVG or PNG",
		Long: `Render a plot payload file to SVG or PNG. The format follows the
extension of the output file. Without an output file the plot is
written as SVG named after its title.

Examples:
  plotscope render plot.json -o plot.png --scale 2
  plotscope render plot.json -o plot.svg --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.renderFile(args[0], o); err != nil {
				return err
			}
			if !o.watch {
				return nil
			}
			return a.watch(cmd.Context(), args[0], o)
		},
	}
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (.svg or .png)")
	cmd.Flags().Float64Var(&o.scale, "scale", 1, "PNG scale factor")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "render again whenever the payload changes")
	return cmd
}

// batchHost is a host that is always shown and keeps nothing.
type batchHost struct{}

func (batchHost) IsShowOutput() bool           { return true }
func (batchHost) SizeChanged(int, bool)        {}
func (h batchHost) Container() scope.Container { return h }
func (batchHost) SetScene(*render.Scene)       {}

// plotter is a single or combined plot.
type plotter interface {
	SaveAsSVG() (*export.Artifact, error)
	SaveAsPNG(scale float64) (*export.Artifact, error)
	Destroy() error
}

// newPlot standardizes and lays out a payload. No real time passes:
// deferred work is run before returning.
func newPlot(raw []byte, s *config.Settings) (plotter, error) {
	sched := loop.NewManual()
	opts := s.ScopeOptions()
	var p interface {
		plotter
		SetModelData(raw []byte) error
		Init(h scope.Host) error
	}
	if model.IsCombined(raw) {
		p = scope.NewCombined(sched, opts)
	} else {
		p = scope.New(sched, opts)
	}
	if err := p.SetModelData(raw); err != nil {
		return nil, err
	}
	if err := p.Init(batchHost{}); err != nil {
		return nil, err
	}
	sched.Advance(0)
	return p, nil
}

func (a *app) renderFile(path string, o *renderOptions) error {
	fnm, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(fnm)
	if err != nil {
		return err
	}
	p, err := newPlot(raw, a.settings)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer func() { errors.Log(p.Destroy()) }()

	var art *export.Artifact
	if strings.EqualFold(filepath.Ext(o.output), ".png") {
		art, err = p.SaveAsPNG(o.scale)
	} else {
		art, err = p.SaveAsSVG()
	}
	if err != nil {
		return err
	}
	if err := checkOutput(art); err != nil {
		return err
	}
	out := o.output
	if out == "" {
		out = art.Filename
	}
	out, err = homedir.Expand(out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, art.Bytes, 0o644); err != nil {
		return err
	}
	a.status("wrote %s (%d bytes)", out, len(art.Bytes))
	return nil
}

// checkOutput checks that the encoded bytes are of the artifact type.
func checkOutput(art *export.Artifact) error {
	switch art.MIME {
	case export.PNGMIME:
		if !filetype.Is(art.Bytes, "png") {
			return fmt.Errorf("render: encoded %s is not a PNG image", art.Filename)
		}
	case export.SVGMIME:
		if !bytes.Contains(art.Bytes, []byte("<svg")) {
			return fmt.Errorf("render: encoded %s is not an SVG document", art.Filename)
		}
	}
	return nil
}

// watch renders the payload again on every change until ctx is done.
// The directory is watched so that editors replacing the file are seen.
func (a *app) watch(ctx context.Context, path string, o *renderOptions) error {
	fnm, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	fnm, err = filepath.Abs(fnm)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(fnm)); err != nil {
		return err
	}
	a.status("watching %s", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fnm || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			slog.Debug("payload changed", "file", ev.Name, "op", ev.Op.String())
			errors.Log(a.renderFile(path, o))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watching payload", "err", err)
		}
	}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot"
	"cogentcore.org/plotscope/plot/axis"
	"cogentcore.org/plotscope/plot/num"
	"cogentcore.org/plotscope/plot/scope"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info PAYLOAD",
		Short: "Describe the standardized model of a payload",
		Long: `Describe the standardized model of a plot payload: its type and size,
its axes with their data range, focus and gridline labels, and its items.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fnm, err := homedir.Expand(args[0])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(fnm)
			if err != nil {
				return err
			}
			p, err := newPlot(raw, a.settings)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			defer func() { errors.Log(p.Destroy()) }()
			switch p := p.(type) {
			case *scope.Scope:
				describe(a.stdout, p, "")
			case *scope.Combined:
				fmt.Fprintf(a.stdout, "combined plot of %d\n", len(p.Children()))
				for i, ch := range p.Children() {
					fmt.Fprintf(a.stdout, "plot %d:\n", i)
					describe(a.stdout, ch, "  ")
				}
			}
			return nil
		},
	}
}

// describe prints the model, axes and items of a scope.
func describe(w io.Writer, sc *scope.Scope, indent string) {
	m := sc.Model()
	fmt.Fprintf(w, "%stype: %s (%s)\n", indent, m.Type, m.Version)
	if m.Title != "" {
		fmt.Fprintf(w, "%stitle: %s\n", indent, m.Title)
	}
	fmt.Fprintf(w, "%ssize: %gx%g\n", indent, m.Width, m.Height)
	if pl := m.PointsLimit; pl != nil {
		fmt.Fprintf(w, "%struncated: %d points over the limit of %d, showing %d\n", indent, pl.Points, pl.Limit, pl.Preview)
	}

	r := plot.DataRange(sc.Items()).Range
	f := sc.Focus()
	x, y, yr := sc.Axes()
	describeAxis(w, indent, "x", x, r.XL, r.XR, f.XL, f.XR)
	describeAxis(w, indent, "y", y, r.YL, r.YR, f.YL, f.YR)
	if yr != nil {
		describeAxis(w, indent, "y right", yr, num.None, num.None, f.YLR, f.YRR)
	}

	fmt.Fprintf(w, "%sitems:\n", indent)
	for _, it := range sc.Items() {
		s := it.Series()
		variant := s.Type.String()
		if it.IsLOD() {
			variant += " (LOD)"
		}
		fmt.Fprintf(w, "%s  %s %s %d elements", indent, s.ID, variant, len(s.Elements))
		if s.Legend != "" {
			fmt.Fprintf(w, " %q", s.Legend)
		}
		if !s.ShowItem {
			fmt.Fprint(w, " hidden")
		}
		fmt.Fprintln(w)
	}
}

func describeAxis(w io.Writer, indent, name string, a *axis.Axis, dl, dr num.Value, fl, fr float64) {
	fmt.Fprintf(w, "%s%s axis: %s", indent, name, a.Type)
	if a.Label != "" {
		fmt.Fprintf(w, " %q", a.Label)
	}
	if !dl.IsNone() && !dr.IsNone() {
		fmt.Fprintf(w, ", data [%s, %s]", a.TipValueString(dl, true), a.TipValueString(dr, true))
	}
	fmt.Fprintf(w, ", focus [%s, %s]\n", a.TipValueString(a.Value(fl), true), a.TipValueString(a.Value(fr), true))
	if labels := a.GridlineLabels(); len(labels) > 0 {
		fmt.Fprintf(w, "%s  gridlines: %s\n", indent, strings.Join(labels, ", "))
	}
}

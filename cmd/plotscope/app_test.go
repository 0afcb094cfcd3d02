// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/h2non/filetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = `{"title":"Prices","xAxis":{"label":"day"},"data":[
	{"legend":"a","elements":[{"x":0,"y":0},{"x":5,"y":5},{"x":10,"y":10}]},
	{"type":"point","legend":"b","elements":[{"x":0,"y":10},{"x":5,"y":2},{"x":10,"y":4}]}]}`

const combinedPayload = `{"type":"CombinedPlot","plot_title":"Both","plots":[
	{"data":[{"elements":[{"x":0,"y":0},{"x":10,"y":10}]}]},
	{"data":[{"elements":[{"x":0,"y":3},{"x":10,"y":1}]}]}]}`

// setup writes the payload and a settings file to a temporary
// directory and returns the directory and the common flags.
func setup(t *testing.T, raw string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plot.json"), []byte(raw), 0o644))
	cfg := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("locale = \"en-US\"\nwidth = 600.0\n"), 0o644))
	return dir, []string{"--config", cfg}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).executeArgs(context.Background(), args...)
	return stdout.String(), stderr.String(), err
}

func TestRenderSVG(t *testing.T) {
	dir, flags := setup(t, payload)
	out := filepath.Join(dir, "out.svg")
	_, stderr, err := run(t, append([]string{"render", filepath.Join(dir, "plot.json"), "-o", out}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote "+out)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")
	assert.Contains(t, string(b), `width="600"`)
}

func TestRenderPNG(t *testing.T) {
	dir, flags := setup(t, payload)
	out := filepath.Join(dir, "out.png")
	_, _, err := run(t, append([]string{"render", filepath.Join(dir, "plot.json"), "-o", out, "--scale", "0.5"}, flags...)...)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, filetype.Is(b, "png"))
}

func TestRenderCombined(t *testing.T) {
	dir, flags := setup(t, combinedPayload)
	out := filepath.Join(dir, "both.svg")
	_, _, err := run(t, append([]string{"render", filepath.Join(dir, "plot.json"), "-o", out}, flags...)...)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "plot-combined-child")
}

func TestRenderErrors(t *testing.T) {
	dir, flags := setup(t, `{"data":`)
	_, _, err := run(t, append([]string{"render", filepath.Join(dir, "plot.json")}, flags...)...)
	assert.Error(t, err)
	_, _, err = run(t, append([]string{"render", filepath.Join(dir, "missing.json")}, flags...)...)
	assert.Error(t, err)
	_, _, err = run(t, "render", filepath.Join(dir, "plot.json"), "--config", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	dir, flags := setup(t, payload)
	stdout, _, err := run(t, append([]string{"info", filepath.Join(dir, "plot.json")}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "type: Plot")
	assert.Contains(t, stdout, "title: Prices")
	assert.Contains(t, stdout, "size: 600x350")
	assert.Contains(t, stdout, `x axis: linear "day"`)
	assert.Contains(t, stdout, "gridlines: ")
	assert.Contains(t, stdout, `i0 line 3 elements "a"`)
	assert.Contains(t, stdout, `i1 point 3 elements "b"`)
}

func TestInfoCombined(t *testing.T) {
	dir, flags := setup(t, combinedPayload)
	stdout, _, err := run(t, append([]string{"info", filepath.Join(dir, "plot.json")}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "combined plot of 2")
	assert.Contains(t, stdout, "plot 1:")
	assert.Contains(t, stdout, "  title: Both")
}

func TestConfig(t *testing.T) {
	_, flags := setup(t, payload)
	stdout, _, err := run(t, append([]string{"config"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "width = 600.0")
	assert.Contains(t, stdout, "lod_threshold = 1500")

	cfg := flags[1]
	_, stderr, err := run(t, "config", "--save", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stderr, "saved "+cfg)
	b, err := os.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(b), "step_hint_x = 150.0")
}

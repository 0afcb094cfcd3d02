// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"cogentcore.org/plotscope/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, 1500, s.LODThreshold)
	assert.Equal(t, 1_000_000, s.OutputPointsLimit)
	assert.Equal(t, 10_000, s.OutputPointsPreview)
	assert.Equal(t, 1200.0, s.Width)
	assert.Equal(t, 350.0, s.Height)
	assert.Equal(t, "UTC", s.Timezone)
	assert.NotEmpty(t, s.Locale)
	assert.False(t, s.Minify)
}

func TestOpenTOML(t *testing.T) {
	fnm := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(fnm, []byte("lod_threshold = 200\nlocale = \"de-DE\"\nwidth = 640.0\n"), 0o644))
	s, err := Open(fnm)
	require.NoError(t, err)
	assert.Equal(t, 200, s.LODThreshold)
	assert.Equal(t, "de-DE", s.Locale)
	assert.Equal(t, 640.0, s.Width)
	assert.Equal(t, 350.0, s.Height)
}

func TestOpenYAML(t *testing.T) {
	fnm := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(fnm, []byte("timezone: America/New_York\nminify: true\nstep_hint_x: 90\n"), 0o644))
	s, err := Open(fnm)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", s.Timezone)
	assert.True(t, s.Minify)
	assert.Equal(t, 90.0, s.StepHintX)
	assert.Equal(t, 1500, s.LODThreshold)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	fnm := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(fnm, []byte("{}"), 0o644))
	_, err := Open(fnm)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("lod_threshold = \"many\""), 0o644))
	_, err = Open(bad)
	assert.Error(t, err)

	missing := filepath.Join(dir, "missing.toml")
	_, err = Open(missing)
	assert.Error(t, err)
	s, err := Load(missing)
	require.NoError(t, err)
	assert.Equal(t, Default().LODThreshold, s.LODThreshold)
}

func TestSave(t *testing.T) {
	for _, name := range []string{"a/settings.toml", "b/settings.yaml"} {
		fnm := filepath.Join(t.TempDir(), name)
		s := Default()
		s.LODThreshold = 42
		s.Locale = "fr-FR"
		require.NoError(t, Save(fnm, s))
		o, err := Open(fnm)
		require.NoError(t, err, name)
		assert.Equal(t, s, o, name)
	}
	assert.True(t, errors.Is(Save(filepath.Join(t.TempDir(), "x.ini"), Default()), ErrUnsupportedFormat))
}

func TestOptions(t *testing.T) {
	s := Default()
	s.Locale = "de_DE"
	s.LODThreshold = 10
	s.Width = 500
	s.Timezone = "Europe/Paris"
	s.StepHintY = 40
	s.Minify = true
	o := s.ScopeOptions()
	assert.Equal(t, language.MustParse("de-DE"), o.Locale)
	assert.Equal(t, 10, o.Model.LODThreshold)
	assert.Equal(t, 500.0, o.Model.Width)
	assert.Equal(t, "Europe/Paris", o.Model.Timezone)
	assert.Equal(t, 40.0, o.StepHintY)
	assert.Equal(t, 150.0, o.StepHintX)
	assert.True(t, o.Minify)

	s.Locale = "not a locale!"
	s.Timezone = "Nowhere/Nothing"
	o = s.ScopeOptions()
	assert.Equal(t, language.English, o.Locale)
	assert.Equal(t, "", o.Model.Timezone)
}

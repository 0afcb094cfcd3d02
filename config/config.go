// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the user settings of plotscope, stored
// in TOML or YAML files.
package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/plotscope/base/errors"
	"cogentcore.org/plotscope/plot/model"
	"cogentcore.org/plotscope/plot/plots"
	"cogentcore.org/plotscope/plot/scope"
	"github.com/jeandeaual/go-locale"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for settings files that are
// neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// DefaultFile is where settings are stored when no file is given.
const DefaultFile = "~/.plotscope/settings.toml"

// DefaultLocaleTag is used when the system locale is unknown.
const DefaultLocaleTag = "en-US"

// Settings are the user settings.
type Settings struct {

	// LODThreshold is the element count from which items are drawn
	// at a level of detail, for payloads that set none.
	LODThreshold int `toml:"lod_threshold" yaml:"lod_threshold"`

	// OutputPointsLimit is the largest legacy graphic drawn in full.
	OutputPointsLimit int `toml:"output_points_limit" yaml:"output_points_limit"`

	// OutputPointsPreview is how many points of a larger graphic are drawn.
	OutputPointsPreview int `toml:"output_points_preview" yaml:"output_points_preview"`

	// Width and Height are the plot size for payloads that set none.
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`

	// Locale is the BCP 47 tag used to format numbers.
	Locale string `toml:"locale" yaml:"locale"`

	// Timezone is the IANA name of the zone of time labels.
	Timezone string `toml:"timezone" yaml:"timezone"`

	StepHintX float64 `toml:"step_hint_x" yaml:"step_hint_x"`
	StepHintY float64 `toml:"step_hint_y" yaml:"step_hint_y"`

	// Minify minifies exported SVG.
	Minify bool `toml:"minify" yaml:"minify"`
}

// Default returns the default settings.
func Default() *Settings {
	mo := model.DefaultOptions()
	so := scope.DefaultOptions()
	return &Settings{
		LODThreshold:        plots.DefaultLODThreshold,
		OutputPointsLimit:   mo.OutputPointsLimit,
		OutputPointsPreview: mo.OutputPointsPreview,
		Width:               model.DefaultWidth,
		Height:              model.DefaultHeight,
		Locale:              SystemLocale(),
		Timezone:            "UTC",
		StepHintX:           so.StepHintX,
		StepHintY:           so.StepHintY,
	}
}

// SystemLocale returns the locale of the user, or [DefaultLocaleTag].
func SystemLocale() string {
	l, err := locale.GetLocale()
	if err != nil || l == "" {
		return DefaultLocaleTag
	}
	return l
}

// Open returns the defaults overridden by the settings in the given
// file. The format is chosen by the file extension.
func Open(filename string) (*Settings, error) {
	s := Default()
	fnm, err := homedir.Expand(filename)
	if err != nil {
		return s, err
	}
	b, err := os.ReadFile(fnm)
	if err != nil {
		return s, err
	}
	switch ext(fnm) {
	case ".toml":
		err = toml.Unmarshal(b, s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, s)
	default:
		return s, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return s, fmt.Errorf("config: %s: %w", filename, err)
	}
	return s, nil
}

// Load is [Open], except that a missing file is not an error: the
// defaults are returned.
func Load(filename string) (*Settings, error) {
	s, err := Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	return s, err
}

// Save writes the settings to the given file, creating its directory.
// The format is chosen by the file extension.
func Save(filename string, s *Settings) error {
	fnm, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	var b []byte
	switch ext(fnm) {
	case ".toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		err = enc.Encode(s)
		b = buf.Bytes()
	case ".yaml", ".yml":
		b, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fnm), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fnm, b, 0o644)
}

func ext(fnm string) string {
	return strings.ToLower(filepath.Ext(fnm))
}

// Language returns the parsed locale. An invalid locale is logged
// and English is used instead.
func (s *Settings) Language() language.Tag {
	t, err := language.Parse(strings.ReplaceAll(s.Locale, "_", "-"))
	if errors.Log(err) != nil {
		return language.English
	}
	return t
}

// Location returns the time zone of time labels.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// ModelOptions returns the standardization options of the settings.
func (s *Settings) ModelOptions() model.Options {
	o := model.DefaultOptions()
	if s.LODThreshold > 0 {
		o.LODThreshold = s.LODThreshold
	}
	if s.OutputPointsLimit > 0 {
		o.OutputPointsLimit = s.OutputPointsLimit
	}
	if s.OutputPointsPreview > 0 {
		o.OutputPointsPreview = s.OutputPointsPreview
	}
	if s.Width > 0 {
		o.Width = s.Width
	}
	if s.Height > 0 {
		o.Height = s.Height
	}
	if _, err := s.Location(); errors.Log(err) == nil {
		o.Timezone = s.Timezone
	}
	return o
}

// ScopeOptions returns the scope options of the settings.
func (s *Settings) ScopeOptions() scope.Options {
	o := scope.DefaultOptions()
	o.Model = s.ModelOptions()
	o.Locale = s.Language()
	if s.StepHintX > 0 {
		o.StepHintX = s.StepHintX
	}
	if s.StepHintY > 0 {
		o.StepHintY = s.StepHintY
	}
	o.Minify = s.Minify
	return o
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"sync"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// RegularTTF and BoldTTF are the font files of [FontFamily].
var (
	RegularTTF = lmsans10regular.TTF
	BoldTTF    = lmsans10bold.TTF
)

var (
	fontsOnce     sync.Once
	regular, bold *opentype.Font
	fontsErr      error
	facesMu       sync.Mutex
	faces         = map[faceKey]font.Face{}
)

type faceKey struct {
	size float64
	bold bool
}

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = opentype.Parse(RegularTTF)
		if fontsErr != nil {
			return
		}
		bold, fontsErr = opentype.Parse(BoldTTF)
	})
	if fontsErr != nil {
		return fmt.Errorf("render: parsing fonts: %w", fontsErr)
	}
	return nil
}

// Face returns the cached face of the given pixel size and weight.
func Face(size float64, isBold bool) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	k := faceKey{size, isBold}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[k]; ok {
		return f, nil
	}
	fnt := regular
	if isBold {
		fnt = bold
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("render: font face %g: %w", size, err)
	}
	faces[k] = f
	return f, nil
}

// MeasureText returns the advance width of s in pixels.
func MeasureText(s string, size float64, isBold bool) (float64, error) {
	f, err := Face(size, isBold)
	if err != nil {
		return 0, err
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	return float64(font.MeasureString(f, s)) / 64, nil
}

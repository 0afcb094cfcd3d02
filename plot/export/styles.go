// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"cogentcore.org/plotscope/plot/render"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// TitleSelector is the class of plot titles. Their color is also
// set as fill, since titles are SVG text.
const TitleSelector = ".plot-title"

var fontFaces = sync.OnceValue(func() string {
	face := func(ttf []byte, weight string) string {
		return fmt.Sprintf("@font-face {\n  font-family: %q;\n  font-weight: %s;\n  src: url(data:font/ttf;base64,%s) format(\"truetype\");\n}",
			render.FontFamily, weight, base64.StdEncoding.EncodeToString(ttf))
	}
	return face(render.RegularTTF, "normal") + "\n" + face(render.BoldTTF, "bold")
})

// FontFaces returns the @font-face rules embedding the plot fonts.
func FontFaces() string { return fontFaces() }

// Styles parses the custom styles and the element styles and returns
// them normalized, one stylesheet per input. Element styles are
// emitted in selector order. Styles that do not parse are logged and
// dropped.
func Styles(custom []string, element map[string]string) []string {
	var out []string
	for _, c := range custom {
		if ss := parse(c); ss != nil {
			out = append(out, ss.String())
		}
	}
	sels := make([]string, 0, len(element))
	for sel := range element {
		sels = append(sels, sel)
	}
	slices.Sort(sels)
	for _, sel := range sels {
		ss := parse(sel + " {" + element[sel] + "}")
		if ss == nil {
			continue
		}
		for _, r := range ss.Rules {
			if slices.Contains(r.Selectors, TitleSelector) {
				mirrorFill(r)
			}
		}
		out = append(out, ss.String())
	}
	return out
}

func parse(s string) *css.Stylesheet {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	ss, err := parser.Parse(s)
	if err != nil {
		slog.Error("export: dropping unparsable style", "err", err)
		return nil
	}
	return ss
}

// mirrorFill adds a fill declaration with the rule's color unless the
// rule sets a fill itself.
func mirrorFill(r *css.Rule) {
	var color *css.Declaration
	for _, d := range r.Declarations {
		switch d.Property {
		case "fill":
			return
		case "color":
			color = d
		}
	}
	if color != nil {
		r.Declarations = append(r.Declarations, &css.Declaration{Property: "fill", Value: color.Value, Important: color.Important})
	}
}

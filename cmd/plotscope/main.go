// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command plotscope renders plot payloads to SVG and PNG files and
// describes their standardized models.
package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "plotscope:", err)
		os.Exit(1)
	}
}

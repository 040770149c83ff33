// Swatch - a solid-colour icon generator
//
// Swatch assembles placeholder PNG icons byte by byte and packages them
// into size variants, ICO containers and archives.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the sitemotion CLI.
package main

import (
	"os"

	"github.com/ivlev/sitemotion/cmd/sitemotion/cmd"
)

var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}

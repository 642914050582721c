// Package main is the single-binary entrypoint for taskomat.
package main

import "github.com/taskomat/taskomat/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

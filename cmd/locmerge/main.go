// Package main provides the entry point for the locmerge CLI tool.
package main

import "github.com/carvoy/locmerge/cmd/locmerge/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}

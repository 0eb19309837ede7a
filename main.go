// main package for avrsync command-line tool
// Package main is the entry point for the avrsync CLI.
package main

import "avrsync.dev/pkg/avrsync/cmd"

func main() {
	cmd.Execute()
}

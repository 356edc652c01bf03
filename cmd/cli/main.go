// Package main is the entry point for the auxtables CLI binary.
package main

import (
	"os"

	cli "auxtables/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}

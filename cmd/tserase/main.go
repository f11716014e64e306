// Command tserase erases TypeScript-only syntax from a source file, printing
// (or rewriting) a length-preserving plain-JavaScript equivalent.
package main

import (
	"os"

	"github.com/t14raptor/ts-erase/cmd/tserase/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

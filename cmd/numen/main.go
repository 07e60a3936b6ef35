// Command numen computes numerology reports, rolls the dice oracle and
// serves the blog from the command line, a terminal UI, MCP or HTTP.
package main

import (
	"os"

	"github.com/custodia-labs/numen-cli/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetInitializer(initialise)

	// Cobra has already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

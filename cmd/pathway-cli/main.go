// cmd/pathway-cli/main.go
package main

import (
	"fmt"
	"os"

	"pathway-workers/internal/cli"
)

// Version is set by the build.
var Version = "dev"

func main() {
	cli.SetVersion(Version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

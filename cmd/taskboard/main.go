package main

import (
	"fmt"
	"os"

	"taskboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run taskboard: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/mizushima/gdforge/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gdforge: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

package main

import (
	"fmt"
	"os"

	"prettycue/internal/faults"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(faults.ExitCode(err))
	}
}

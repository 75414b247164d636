package main

import (
	"fmt"
	"os"

	"github.com/forkpatch/forkpatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "forkpatch: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/devanksh/jobfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

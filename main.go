package main

import (
	"os"

	"github.com/pulsekit/phaseogram/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

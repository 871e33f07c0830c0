package main

import (
	"os"

	"github.com/pfennig/pfennig/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

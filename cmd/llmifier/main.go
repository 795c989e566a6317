package main

import (
	"os"

	"github.com/PhilippHGerber/llmifier/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

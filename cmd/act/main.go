package main

import (
	"os"

	"github.com/carlstedt1/auto-close-tabs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

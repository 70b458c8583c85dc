package main

import (
	"os"

	"github.com/persuasionlab/beliefshift/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

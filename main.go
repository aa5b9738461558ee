package main

import (
	"os"

	"github.com/stayseeker/stayseeker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

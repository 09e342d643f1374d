package main

import (
	"os"

	"github.com/abhisek/adaptly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

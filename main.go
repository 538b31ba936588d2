package main

import (
	"os"

	"github.com/elkrammer/pascal-validator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

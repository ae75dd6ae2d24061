package main

import (
	"os"

	"github.com/founderpath/founderpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

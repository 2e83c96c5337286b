package main

import (
	"os"

	"github.com/ctt011/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

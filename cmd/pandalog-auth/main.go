package main

import (
	"os"

	"github.com/pandalog/pandalog/internal/app"
)

func main() {
	if err := app.RunAuth(); err != nil {
		exitCode := app.HandleError(err)
		os.Exit(int(exitCode))
	}
}

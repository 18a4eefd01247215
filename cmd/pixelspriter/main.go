package main

import (
	"os"

	"pixelspriter/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

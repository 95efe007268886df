package main

import (
	"os"

	"NewsScanner/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.NewWithWriter(os.Stderr, "info").Error("newsscanner stopped", "error", err)
		os.Exit(1)
	}
}

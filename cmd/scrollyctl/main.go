package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		newPrinter(os.Stderr, false).Error("%v", err)
		os.Exit(1)
	}
}

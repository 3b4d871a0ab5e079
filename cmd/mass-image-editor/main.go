package main

import (
	"context"
	"os"
	"runtime"

	"github.com/charmbracelet/fang"
)

const version = "0.1.0"

func main() {
	// Large decoded images allocate in big chunks; collect less eagerly
	runtime.SetGCPercent(200)

	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/halalquebec/photouploader/cmd"
)

// version is reported by --version
const version = "0.1.0"

func main() {
	root := cmd.NewRootCmd()

	// fang renders errors and adds completions and --version; Ctrl-C cancels
	// the command context so an interrupted upload still writes its manifest.
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}

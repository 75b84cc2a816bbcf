package main

import (
	"os"

	"github.com/zx06/credkeep/internal/app"
	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/output"
)

func main() {
	exit := run()
	os.Exit(exit)
}

// run is the main entry point
func run() int {
	a := app.New(version, commit, date, service)
	w := output.New(os.Stdout, os.Stderr)

	root := NewRootCommand()

	root.AddCommand(NewSaveCommand(&w))
	root.AddCommand(NewGetCommand(&w))
	root.AddCommand(NewDeleteCommand(&w))
	root.AddCommand(NewStatusCommand(&w))
	root.AddCommand(NewSpecCommand(&a, &w))
	root.AddCommand(NewVersionCommand(&a, &w))
	root.AddCommand(NewMCPCommand())
	root.AddCommand(NewDockerHelperCommand())

	if err := root.Execute(); err != nil {
		xe := normalizeErr(err)
		if !isReported(err) {
			format := resolveFormatForError(GlobalConfig.FormatStr)
			_ = w.WriteError(format, xe)
		}
		return int(errors.ExitCodeFor(xe.Code))
	}

	return int(errors.ExitOK)
}

// SPDX-License-Identifier: MIT

// Command quadra evaluates the built-in definite integrals with the adaptive
// quadrature engine.
//
//	quadra list
//	quadra run --integrand 1 --a 0 --b 1 --eps 0,01 --rule trapezoid --rule simpson
//	QUADRA_OUTPUT=yaml quadra run --config quadra.yaml --metrics
package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree against args; every error is logged
// before it is returned.
func execute(args []string, out, errOut io.Writer) error {
	a := &app{out: out, errOut: errOut}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err != nil {
		logger := a.logger
		if logger == nil {
			logger = newLogger(errOut, slog.LevelInfo)
		}
		logger.Error("quadra: failed", "err", err)
	}

	return err
}

func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
		NoColor:    w != os.Stderr,
	}))
}

// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in integrands",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return renderList(a.out, a.cfg.Output, a.reg.All())
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/manifest"
	"github.com/arthur-debert/prehook/pkg/style"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: MsgInitShort,
		Long:  MsgInitLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manifest.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if err := manifest.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", style.PathStyle.Render(path))
			return nil
		},
	}
}

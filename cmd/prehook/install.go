package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/githook"
	"github.com/arthur-debert/prehook/pkg/style"
)

func newInstallCmd() *cobra.Command {
	var binaryPath string

	cmd := &cobra.Command{
		Use:   "install",
		Short: MsgInstallShort,
		Long:  MsgInstallLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := githook.RepoRoot()
			if err != nil {
				return err
			}

			binary := githook.ResolveBinary(binaryPath)
			hookPath, err := githook.Install(root, binary)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed git hook at %s using binary: %s\n",
				style.PathStyle.Render(hookPath), binary)
			return nil
		},
	}

	cmd.Flags().StringVar(&binaryPath, "path", "", "Explicit path to the prehook binary the hook should invoke")
	return cmd
}

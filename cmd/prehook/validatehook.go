package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/hooks"
	"github.com/arthur-debert/prehook/pkg/style"
	"github.com/arthur-debert/prehook/pkg/validate"
)

func newValidateHookCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "validate-hook <name>",
		Short:     MsgValidateShort,
		Long:      MsgValidateLong,
		Args:      cobra.ExactArgs(1),
		ValidArgs: hooks.IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !hooks.IsBuiltin(name) {
				return fmt.Errorf("unknown hook: %s. Available hooks: %s",
					name, strings.Join(hooks.IDs(), ", "))
			}
			if err := validate.Hook(name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Hook %s passes all validation checks\n",
				style.SuccessStyle.Render("✓"), name)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/changelog"
	"github.com/arthur-debert/prehook/pkg/errors"
)

func newChangelogCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: MsgChangelogShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(changelog.FileName)
			if os.IsNotExist(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "No changelog yet. Run 'prehook run' to generate %s.\n", changelog.FileName)
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", changelog.FileName)
			}

			if plain {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return err
			}
			rendered, err := renderer.Render(string(data))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw markdown without terminal rendering")
	return cmd
}

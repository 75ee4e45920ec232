package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/scaffold"
	"github.com/arthur-debert/prehook/pkg/style"
)

func newCreateHookCmd() *cobra.Command {
	var (
		language    string
		description string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "create-hook <name>",
		Short: MsgCreateShort,
		Long:  MsgCreateLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, err := scaffold.ParseLanguage(language)
			if err != nil {
				return err
			}

			dir, err := scaffold.Create(args[0], lang, description, outputDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created new pre-commit hook in %s\n", style.PathStyle.Render(dir))
			if lang == scaffold.LanguageGo {
				fmt.Fprintln(out, "For Go hooks, run 'go build' in the hook directory before using")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", string(scaffold.LanguageShell), "Hook language (go, python, shell)")
	cmd.Flags().StringVarP(&description, "description", "d", "A custom pre-commit hook", "Short description of what the hook checks")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory to create the hook project in")
	return cmd
}

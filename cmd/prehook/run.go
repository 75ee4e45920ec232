package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/manifest"
	"github.com/arthur-debert/prehook/pkg/runner"
	"github.com/arthur-debert/prehook/pkg/style"
)

func newRunCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "run [config]",
		Short: MsgRunShort,
		Long:  MsgRunLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := manifest.DefaultPath
			if len(args) == 1 {
				configPath = args[0]
			}

			m, err := manifest.Load(configPath)
			if err != nil {
				return err
			}

			root, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrFileAccess, "failed to resolve working directory")
			}

			summary, err := runner.New(root, opts.dryRun, opts.debug).Run(m)
			if err != nil {
				return err
			}

			printSummary(cmd, summary, opts.dryRun)

			if summary.Blocked {
				return fmt.Errorf("pre-commit checks failed")
			}
			return nil
		},
	}
}

func printSummary(cmd *cobra.Command, summary *runner.Summary, dryRun bool) {
	out := cmd.OutOrStdout()
	for _, rep := range summary.Reports {
		switch rep.State {
		case runner.StateSkipped:
			fmt.Fprintf(out, "%s %s %s\n",
				style.MutedStyle.Render("-"), rep.ID, style.MutedStyle.Render("("+rep.Reason+")"))
		case runner.StateFailed:
			fmt.Fprintf(out, "%s %s: %v\n",
				style.ErrorStyle.Render("✗"), rep.ID, rep.Err)
		case runner.StateCompleted:
			if rep.Result.Failed() {
				mark := style.WarningStyle.Render("!")
				if dryRun {
					mark = style.MutedStyle.Render("~")
				}
				fmt.Fprintf(out, "%s %s (%s)\n", mark, rep.ID, rep.Result.Outcome)
				for _, v := range rep.Result.Violations {
					fmt.Fprintln(out, style.ListItemStyle.Render(v))
				}
				for _, f := range rep.Result.ChangedFiles {
					fmt.Fprintln(out, style.ListItemStyle.Render(style.PathStyle.Render(f)))
				}
			} else {
				fmt.Fprintf(out, "%s %s (%d files)\n",
					style.SuccessStyle.Render("✓"), rep.ID, len(rep.Files))
			}
		}
	}
}

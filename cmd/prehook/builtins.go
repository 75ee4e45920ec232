package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/hooks"
	"github.com/arthur-debert/prehook/pkg/style"
)

var builtinShort = map[string]string{
	hooks.TrailingWhitespaceID:   "Remove trailing whitespace from files",
	hooks.EndOfFileFixerID:       "Ensure files end with exactly one newline",
	hooks.CheckYAMLID:            "Validate YAML file syntax",
	hooks.PrettyFormatJSONID:     "Reformat JSON files with two-space indentation",
	hooks.CheckAddedLargeFilesID: "Reject files above a size limit",
}

// newBuiltinCmds exposes every built-in hook as a standalone command so
// they can be run outside a manifest, e.g. 'prehook check-yaml config/'.
func newBuiltinCmds(opts *globalOpts) []*cobra.Command {
	var cmds []*cobra.Command
	for _, id := range hooks.IDs() {
		cmds = append(cmds, newBuiltinCmd(opts, id))
	}
	return cmds
}

func newBuiltinCmd(opts *globalOpts, id string) *cobra.Command {
	var maxBytes uint64

	cmd := &cobra.Command{
		Use:   id + " [paths...]",
		Short: builtinShort[id],
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			var hookArgs []string
			if id == hooks.CheckAddedLargeFilesID && cmd.Flags().Changed("max-bytes") {
				hookArgs = []string{strconv.FormatUint(maxBytes, 10)}
			}

			factory, _ := hooks.Lookup(id)
			h, err := factory(hookArgs)
			if err != nil {
				return err
			}

			ctx := hook.NewContext(opts.dryRun, opts.debug)
			res, err := h.Run(ctx, paths)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range ctx.Changelog.Entries() {
				for _, change := range e.Changes {
					fmt.Fprintln(out, change)
				}
			}

			if ctx.Changelog.HasChanges() {
				cwd, err := os.Getwd()
				if err == nil {
					if werr := ctx.Changelog.WriteIfChanged(cwd); werr != nil {
						return werr
					}
				}
			}

			if !opts.dryRun && res.Failed() {
				return fmt.Errorf("%s: %s", id, res.Outcome)
			}
			fmt.Fprintf(out, "%s %s\n", style.SuccessStyle.Render("✓"), id)
			return nil
		},
	}

	if id == hooks.CheckAddedLargeFilesID {
		cmd.Flags().Uint64Var(&maxBytes, "max-bytes", hooks.DefaultMaxBytes, "Maximum allowed file size in bytes")
	}
	return cmd
}

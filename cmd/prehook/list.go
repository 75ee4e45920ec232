package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/prehook/pkg/hooks"
	"github.com/arthur-debert/prehook/pkg/manifest"
	"github.com/arthur-debert/prehook/pkg/style"
)

func newListCmd() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			local := m.LocalHooks()
			if len(local) == 0 {
				fmt.Fprintf(out, "No hooks configured in %s\n", configPath)
				return nil
			}

			scope := "enabled only"
			if all {
				scope = "including disabled"
			}
			fmt.Fprintln(out, style.TitleStyle.Render(fmt.Sprintf("Hooks in %s (%s):", configPath, scope)))

			for _, h := range local {
				if !all && !h.IsEnabled() {
					continue
				}
				fmt.Fprintln(out, formatHook(h))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", manifest.DefaultPath, "Manifest to list hooks from")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include disabled hooks")
	return cmd
}

func formatHook(h manifest.Hook) string {
	status := style.SuccessStyle.Render("enabled")
	if !h.IsEnabled() {
		status = style.MutedStyle.Render("disabled")
	}

	kind := "external"
	if h.Command == "" && hooks.IsBuiltin(h.ID) {
		kind = "builtin"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- %s (%s, %s)", style.TitleStyle.Render(h.ID), status, kind)

	if h.Command != "" {
		fmt.Fprintf(&b, " -> %s", style.PathStyle.Render(h.Command))
		if len(h.Args) > 0 {
			fmt.Fprintf(&b, " %s", strings.Join(h.Args, " "))
		}
	} else if h.Files != "" {
		fmt.Fprintf(&b, " [files: %s]", style.PathStyle.Render(h.Files))
	}

	if h.CommandIsInstall() {
		if h.Install != nil {
			fmt.Fprintf(&b, " %s", style.MutedStyle.Render("[install: "+h.Install.Summary()+"]"))
		} else {
			fmt.Fprintf(&b, " %s", style.ErrorStyle.Render("[install: missing config]"))
		}
	}

	return b.String()
}

package main

// Message constants for command help text.
const (
	MsgRootShort = "A configuration-driven pre-commit hook runner"
	MsgRootLong  = `prehook reads a declarative YAML hook manifest, determines which files
each hook applies to, runs built-in or externally-installed checks and
fixers against those files, and records the outcome.

External tools are installed on first use into .precommit-tools/ and
tracked in .precommit-lock.yaml with a content hash for provenance.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Report what would change without modifying files or failing"
	MsgFlagDebug   = "Enable debug output"

	MsgRunShort = "Run all enabled hooks from the manifest"
	MsgRunLong  = `Run every enabled hook of the manifest's local repo group, in order.
Each hook's file pattern is resolved against the working tree honoring
gitignore rules; hooks with no matching files are skipped.

In enforcing mode (the default) the command exits non-zero when a hook
fails, finds violations, or modifies files. With --dry-run, findings
are reported through the changelog and the exit status stays zero.`

	MsgListShort = "List the hooks defined in the manifest"
	MsgInitShort = "Write a default manifest with commented examples"
	MsgInitLong  = `Write a starter .pre-commit.yaml containing the built-in hooks plus
commented examples of externally-installed hooks for every supported
ecosystem.`

	MsgInstallShort = "Install prehook as the git pre-commit hook"
	MsgInstallLong  = `Write an executable pre-commit script into the repository's
.git/hooks directory that invokes 'prehook run' on every commit.

The prehook binary is located via --path when given, then a PATH
lookup, then the bare command name as a fallback.`

	MsgValidateShort = "Check a built-in hook against the hook contract"
	MsgValidateLong  = `Exercise a built-in hook against the contract every hook must satisfy:
tolerate empty input, never mutate files in dry-run mode, signal
violations or changes through its result, and skip missing or
non-UTF-8 files instead of failing on them.`

	MsgCreateShort = "Scaffold a new external hook project"
	MsgCreateLong  = `Generate the skeleton of a new hook in the chosen language (go,
python, or shell) plus a sample manifest stanza wiring it up.`

	MsgChangelogShort = "Render the recorded hook changelog"
)

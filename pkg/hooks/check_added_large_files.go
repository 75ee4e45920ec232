package hooks

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/hook"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// CheckAddedLargeFilesID is the manifest id of this hook.
const CheckAddedLargeFilesID = "check-added-large-files"

// DefaultMaxBytes is the size limit applied when no argument is given.
const DefaultMaxBytes uint64 = 500_000

// CheckAddedLargeFiles fails when any resolved file exceeds the size
// limit. The limit comes from the hook's first manifest argument.
type CheckAddedLargeFiles struct {
	MaxBytes uint64
}

func (CheckAddedLargeFiles) ID() string { return CheckAddedLargeFilesID }

func (h CheckAddedLargeFiles) Run(ctx *hook.Context, paths []string) (hook.Result, error) {
	logger := logging.GetLogger("hooks.check_added_large_files")
	result := hook.Result{}

	limit := h.MaxBytes
	if limit == 0 {
		limit = DefaultMaxBytes
	}

	files, err := expandPaths(paths)
	if err != nil {
		return result, err
	}

	for _, path := range files {
		ctx.Changelog.RecordFileChecked(h.ID(), path)

		info, err := os.Stat(path)
		if err != nil {
			logger.Debug().Str("path", path).Err(err).Msg("unable to stat file")
			continue
		}
		if uint64(info.Size()) <= limit {
			continue
		}

		message := fmt.Sprintf("File %s is too large (%d bytes) > %d bytes", path, info.Size(), limit)
		logger.Warn().Str("path", path).Int64("size", info.Size()).Uint64("limit", limit).Msg("file too large")
		ctx.Changelog.RecordChange(h.ID(), message)
		result.Merge(hook.Result{Outcome: hook.Violations, Violations: []string{message}})
	}

	return result, nil
}

func init() {
	Register(CheckAddedLargeFilesID, func(args []string) (hook.Hook, error) {
		h := CheckAddedLargeFiles{}
		if len(args) > 0 {
			limit, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput,
					"invalid size limit %q for %s", args[0], CheckAddedLargeFilesID)
			}
			h.MaxBytes = limit
		}
		return h, nil
	})
}

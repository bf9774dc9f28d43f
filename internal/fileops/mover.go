package fileops

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"filmsort/internal/logging"
	"filmsort/internal/services"
)

// PartialSuffix marks an in-flight staging file. External tooling must treat
// files carrying this suffix as incomplete and never as finished media.
const PartialSuffix = ".partial~"

// Action describes what a transfer did (or would do, in dry-run mode).
type Action string

const (
	ActionMoved    Action = "moved"
	ActionReplaced Action = "replaced"
	ActionRejected Action = "rejected"
)

// Policy carries the caller-supplied transfer flags. DryRun evaluates the
// duplicate policy but performs no filesystem mutation; SafeCopy forces the
// staged copy path even on the same volume.
type Policy struct {
	ForceOverwrite bool
	SafeCopy       bool
	DryRun         bool
}

// Result is the observable outcome of a transfer. Moved is true when the
// destination was (or, under dry-run, would have been) written.
// SourceRetained is true when the destination was written but the source
// could not be removed afterwards, so both copies exist.
type Result struct {
	Moved          bool
	Action         Action
	SourceRetained bool
	Reason         string
}

// Mover relocates files under a fixed policy. Concurrent transfers to
// distinct destinations are independent; callers must serialize transfers
// that target the same destination path.
type Mover struct {
	policy Policy
	logger *slog.Logger

	copyFile     func(src, dst string, srcInfo os.FileInfo) error
	removeSource func(path string) error
}

func NewMover(policy Policy, logger *slog.Logger) *Mover {
	return &Mover{
		policy:       policy,
		logger:       logging.NewComponentLogger(logger, "transfer"),
		copyFile:     copyFile,
		removeSource: os.Remove,
	}
}

// SafeMove relocates src to dst without ever exposing a partially written
// file under the destination's final name. A pre-existing destination is
// replaced only when the policy approves it: force-overwrite always wins,
// allowUpgrade admits a strictly smaller source the caller has independently
// judged to be a quality upgrade, and otherwise only a strictly larger
// source replaces. Same-volume moves rename directly unless SafeCopy is set;
// cross-volume moves fall back to a staged copy through a PartialSuffix
// sibling that is renamed over the destination only after the copy verified.
func (m *Mover) SafeMove(ctx context.Context, src, dst string, allowUpgrade bool) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Action: ActionRejected, Reason: "canceled"}, err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Action: ActionRejected, Reason: "source not found"},
				services.Wrap(services.ErrSourceNotFound, "transfer", "stat source", src, err)
		}
		return Result{Action: ActionRejected, Reason: "source unreadable"},
			services.Wrap(services.ErrIO, "transfer", "stat source", src, err)
	}

	dstInfo, dstErr := os.Stat(dst)
	dstExists := dstErr == nil

	if filepath.Clean(src) == filepath.Clean(dst) || (dstExists && os.SameFile(srcInfo, dstInfo)) {
		m.logger.Warn("source and destination are the same file", logging.String("path", src))
		return Result{Action: ActionRejected, Reason: "source and destination are the same file"}, nil
	}

	action := ActionMoved
	if dstExists {
		switch {
		case m.policy.ForceOverwrite:
		case allowUpgrade && srcInfo.Size() < dstInfo.Size():
		case srcInfo.Size() > dstInfo.Size():
		default:
			m.logger.Info("destination exists, not replacing",
				logging.String("destination", dst),
				logging.Int64("source_size", srcInfo.Size()),
				logging.Int64("destination_size", dstInfo.Size()),
			)
			return Result{Action: ActionRejected, Reason: "destination exists and source is not an upgrade"}, nil
		}
		action = ActionReplaced
	}

	if m.policy.DryRun {
		m.logger.Info("dry run, skipping transfer",
			logging.String("source", src),
			logging.String("destination", dst),
			logging.String("action", string(action)),
		)
		return Result{Moved: true, Action: action}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Result{Action: ActionRejected, Reason: "cannot create destination directory"},
			services.Wrap(services.ErrIO, "transfer", "create destination directory", filepath.Dir(dst), err)
	}

	if m.policy.SafeCopy {
		return m.stagedCopy(src, dst, srcInfo, action)
	}

	// os.Rename replaces an existing destination atomically, so an approved
	// replacement never passes through a window where the destination is gone.
	if err := os.Rename(src, dst); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			return m.stagedCopy(src, dst, srcInfo, action)
		}
		return Result{Action: ActionRejected, Reason: "rename failed"},
			services.Wrap(services.ErrIO, "transfer", "rename", dst, err)
	}

	m.logger.Info("transfer completed",
		logging.String("source", src),
		logging.String("destination", dst),
		logging.String("action", string(action)),
	)
	return Result{Moved: true, Action: action}, nil
}

// stagedCopy streams src into the staging file next to dst, then renames it
// over the destination and removes the source. Any failure deletes the
// staging file and leaves both the source and any pre-existing destination
// exactly as they were.
func (m *Mover) stagedCopy(src, dst string, srcInfo os.FileInfo, action Action) (Result, error) {
	if err := checkFreeSpace(filepath.Dir(dst), srcInfo.Size()); err != nil {
		return Result{Action: ActionRejected, Reason: "insufficient space"},
			services.Wrap(services.ErrIO, "transfer", "check free space", dst, err)
	}

	partial := dst + PartialSuffix
	if err := m.copyFile(src, partial, srcInfo); err != nil {
		_ = os.Remove(partial)
		return Result{Action: ActionRejected, Reason: "copy failed"},
			services.Wrap(services.ErrIO, "transfer", "staged copy", "copy source into staging file", err)
	}
	if err := os.Rename(partial, dst); err != nil {
		_ = os.Remove(partial)
		return Result{Action: ActionRejected, Reason: "staging rename failed"},
			services.Wrap(services.ErrIO, "transfer", "promote staging file", dst, err)
	}
	result := Result{Moved: true, Action: action}
	if err := m.removeSource(src); err != nil {
		result.SourceRetained = true
		result.Reason = "source retained after copy"
		m.logger.Warn("failed to remove source after copy",
			logging.String("source", src),
			logging.Error(err),
		)
	}

	m.logger.Info("staged copy completed",
		logging.String("source", src),
		logging.String("destination", dst),
		logging.String("action", string(action)),
	)
	return result, nil
}

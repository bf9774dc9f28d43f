package organizer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"

	"filmsort/internal/config"
	"filmsort/internal/fileops"
	"filmsort/internal/library"
	"filmsort/internal/logging"
	"filmsort/internal/namer"
	"filmsort/internal/parser"
	"filmsort/internal/scan"
	"filmsort/internal/services"
)

// ErrAlreadyRunning indicates another organize run holds the instance lock.
var ErrAlreadyRunning = errors.New("another filmsort run is already in progress")

// Organizer drives one organize run: scan the sources, parse each candidate,
// render its destination, and hand it to the transfer engine.
type Organizer struct {
	cfg    *config.Config
	parser *parser.Parser
	namer  *namer.Namer
	store  *library.Store
	logger *slog.Logger
}

// Plan is one candidate with its parsed attributes and rendered destination.
type Plan struct {
	Source      string
	Destination string
	Size        int64
	Attrs       parser.Attributes
}

// Summary aggregates the outcome of a run.
type Summary struct {
	RunID      string
	Scanned    int
	Moved      int
	Skipped    int
	Failed     int
	BytesMoved int64
}

// NewParser builds the metadata parser from the configuration tables.
func NewParser(cfg *config.Config) (*parser.Parser, error) {
	return parser.New(parserConfig(cfg))
}

// New builds an organizer from the configuration. The store may be nil for
// commands that never record history.
func New(cfg *config.Config, store *library.Store, logger *slog.Logger) (*Organizer, error) {
	p, err := NewParser(cfg)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "organizer", "compile parser tables", "", err)
	}
	return &Organizer{
		cfg:    cfg,
		parser: p,
		namer:  namer.New(cfg.Paths.LibraryDir),
		store:  store,
		logger: logging.NewComponentLogger(logger, "organizer"),
	}, nil
}

func parserConfig(cfg *config.Config) parser.Config {
	rules := make([]parser.EditionRule, 0, len(cfg.Parser.Editions))
	for _, rule := range cfg.Parser.Editions {
		rules = append(rules, parser.EditionRule{Search: rule.Search, Replace: rule.Replace})
	}
	return parser.Config{
		StripPrefixes: cfg.Parser.StripPrefixes,
		KeepPeriods:   cfg.Parser.KeepPeriods,
		Editions:      rules,
	}
}

// Plans scans every source directory and renders a destination for each
// candidate without touching the filesystem.
func (o *Organizer) Plans(ctx context.Context) ([]Plan, error) {
	opts := scan.Options{
		Extensions: o.cfg.Scan.Extensions,
		MinSize:    o.cfg.MinSizeBytes(),
	}
	var plans []Plan
	for _, src := range o.cfg.Paths.SourceDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates, err := scan.Candidates(src, opts)
		if err != nil {
			if errors.Is(err, services.ErrSourceNotFound) {
				o.logger.Warn("source directory missing, skipping", logging.String("path", src))
				continue
			}
			return nil, err
		}
		for _, candidate := range candidates {
			attrs := o.parser.Parse(candidate.Path)
			if attrs.Title == "" {
				attrs.Title = fallbackTitle(candidate.Path)
			}
			plans = append(plans, Plan{
				Source:      candidate.Path,
				Destination: o.namer.DestinationPath(attrs, candidate.Path),
				Size:        candidate.Size,
				Attrs:       attrs,
			})
		}
	}
	return plans, nil
}

// Run executes one full organize pass under the single-instance lock. When
// dryRun is set the transfer engine evaluates policy but moves nothing and
// the ledger still records the would-be outcomes.
func (o *Organizer) Run(ctx context.Context, dryRun bool) (Summary, error) {
	if err := o.cfg.EnsureDirectories(); err != nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "organizer", "ensure directories", "", err)
	}

	lock := flock.New(o.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, services.Wrap(services.ErrIO, "organizer", "acquire run lock", o.cfg.LockPath(), err)
	}
	if !locked {
		return Summary{}, ErrAlreadyRunning
	}
	defer func() { _ = lock.Unlock() }()

	if !dryRun {
		maxAge := time.Duration(o.cfg.Transfer.PartialMaxAgeHours) * time.Hour
		sweepStalePartials(o.cfg.Paths.LibraryDir, maxAge, o.logger)
	}

	mover := fileops.NewMover(fileops.Policy{
		ForceOverwrite: o.cfg.Transfer.ForceOverwrite,
		SafeCopy:       o.cfg.Transfer.SafeCopy,
		DryRun:         dryRun,
	}, o.logger)

	plans, err := o.Plans(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Scanned: len(plans)}
	if o.store != nil {
		runID, err := o.store.BeginRun(ctx, dryRun)
		if err != nil {
			return Summary{}, services.Wrap(services.ErrIO, "organizer", "begin ledger run", "", err)
		}
		summary.RunID = runID
	}

	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, moveErr := mover.SafeMove(ctx, plan.Source, plan.Destination, o.cfg.Transfer.AllowUpgrade)
		o.record(ctx, summary.RunID, plan, result, moveErr)
		switch {
		case moveErr != nil:
			if services.Fatal(moveErr) {
				return summary, moveErr
			}
			summary.Failed++
			o.logger.Error("transfer failed",
				logging.String("source", plan.Source),
				logging.Error(moveErr),
			)
		case result.Moved:
			summary.Moved++
			summary.BytesMoved += plan.Size
			o.logger.Info("organized",
				logging.String("title", plan.Attrs.Title),
				logging.String("destination", plan.Destination),
				logging.String("size", humanize.Bytes(uint64(plan.Size))),
			)
		default:
			summary.Skipped++
			o.logger.Info("skipped",
				logging.String("source", plan.Source),
				logging.String("reason", result.Reason),
			)
		}
	}

	if o.store != nil {
		err := o.store.FinishRun(ctx, summary.RunID, library.RunSummary{
			Scanned:    summary.Scanned,
			Moved:      summary.Moved,
			Skipped:    summary.Skipped,
			Failed:     summary.Failed,
			BytesMoved: summary.BytesMoved,
		})
		if err != nil {
			o.logger.Warn("failed to finish ledger run", logging.Error(err))
		}
	}

	o.logger.Info("run complete",
		logging.Int("scanned", summary.Scanned),
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.String("bytes_moved", humanize.Bytes(uint64(summary.BytesMoved))),
		logging.Bool("dry_run", dryRun),
	)
	return summary, nil
}

func (o *Organizer) record(ctx context.Context, runID string, plan Plan, result fileops.Result, moveErr error) {
	if o.store == nil || runID == "" {
		return
	}
	err := o.store.RecordTransfer(ctx, library.Transfer{
		RunID:       runID,
		Source:      plan.Source,
		Destination: plan.Destination,
		Title:       plan.Attrs.Title,
		Year:        plan.Attrs.Year,
		Resolution:  plan.Attrs.Resolution,
		Media:       plan.Attrs.Media.Label(),
		Size:        plan.Size,
		Action:      string(result.Action),
		Success:     moveErr == nil && result.Moved,
		Reason:      result.Reason,
	})
	if err != nil {
		o.logger.Warn("failed to record transfer", logging.Error(err))
	}
}

package renamer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timeline-renamer-go/internal/config"
	"timeline-renamer-go/internal/logger"
	"timeline-renamer-go/internal/metadata"
	"timeline-renamer-go/internal/namer"
	"timeline-renamer-go/internal/resolver"
	"timeline-renamer-go/internal/statistics"
	"timeline-renamer-go/internal/walker"

	"github.com/sirupsen/logrus"
)

// Status classifies what happened to a single file.
type Status int

const (
	StatusRenamed Status = iota
	StatusSkippedUnsupported
	StatusSkippedNoDate
	StatusSkippedAlreadyNamed
	StatusFailedRename
	StatusExhausted
)

// String returns the transcript label for a status.
func (s Status) String() string {
	switch s {
	case StatusRenamed:
		return "renamed"
	case StatusSkippedUnsupported:
		return "unsupported"
	case StatusSkippedNoDate:
		return "missing date"
	case StatusSkippedAlreadyNamed:
		return "already renamed"
	case StatusFailedRename:
		return "rename failed"
	case StatusExhausted:
		return "name search exhausted"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one file. Used only for counters and
// logging; nothing is persisted.
type Outcome struct {
	Status Status
	From   string
	To     string
	Err    error
}

// Renamer drives the rename pipeline: walk, classify, resolve, name, rename.
// Files are processed strictly one at a time because the collision search
// assumes the filesystem state it inspects is not mutated concurrently by
// this process.
type Renamer struct {
	config   *config.Config
	logger   *logrus.Logger
	stats    *statistics.Statistics
	reader   metadata.Reader
	resolver *resolver.Resolver
	namer    *namer.Namer
	walker   *walker.Walker
}

// New returns a Renamer wired to the given collaborators.
func New(
	cfg *config.Config,
	logger *logrus.Logger,
	stats *statistics.Statistics,
	reader metadata.Reader,
	res *resolver.Resolver,
) *Renamer {
	return &Renamer{
		config:   cfg,
		logger:   logger,
		stats:    stats,
		reader:   reader,
		resolver: res,
		namer:    namer.New(cfg.Renaming.PhotoPrefix, cfg.Renaming.VideoPrefix, cfg.Renaming.MaxSuffix),
		walker:   walker.New(cfg, logger),
	}
}

// Run processes every file under the configured source directory, then
// shuts the metadata session down and performs post-run cleanup. Per-file
// failures never abort the run.
func (r *Renamer) Run() (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unrecoverable error: %v", p)
			r.logger.Errorf("Run aborted: %v", p)
		}
	}()

	root := r.config.SourceDirectory
	r.stats.StartTime = time.Now()
	r.logger.Infof("Scanning %s", root)

	if r.config.Security.DryRun {
		r.logger.Info("Running in dry-run mode - no files will be renamed")
	}

	files := r.walker.Walk(root)
	for _, path := range files {
		r.stats.IncrementFilesFound()
		outcome := r.processFile(path)
		r.record(outcome)
	}

	if err := r.reader.Close(); err != nil {
		r.logger.Warnf("Metadata reader shutdown failed: %v", err)
	}

	r.cleanup(root)

	r.stats.Finalize()
	r.logger.Infof("Renamed %d, skipped %d in %s",
		r.stats.GetFilesRenamed(),
		r.stats.GetFilesSkipped(),
		statistics.FormatElapsed(r.stats.Duration))

	return nil
}

// processFile runs one file through classification, date resolution, name
// generation and the rename itself.
func (r *Renamer) processFile(path string) Outcome {
	kind := r.classify(path)
	if kind == namer.KindUnsupported {
		return Outcome{Status: StatusSkippedUnsupported, From: path}
	}

	ext := strings.ToUpper(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	r.stats.IncrementFileType(ext)

	tags, err := r.reader.Read(path)
	if err != nil {
		r.logger.Debugf("No metadata for %s: %v", path, err)
		return Outcome{Status: StatusSkippedNoDate, From: path}
	}

	moment := r.resolver.Resolve(tags)
	if moment == nil {
		return Outcome{Status: StatusSkippedNoDate, From: path}
	}

	target, err := r.namer.NextAvailableName(*moment, kind, path)
	if err != nil {
		switch {
		case errors.Is(err, namer.ErrAlreadyNamed):
			return Outcome{Status: StatusSkippedAlreadyNamed, From: path}
		case errors.Is(err, namer.ErrExhausted):
			return Outcome{Status: StatusExhausted, From: path, Err: err}
		default:
			return Outcome{Status: StatusFailedRename, From: path, Err: err}
		}
	}

	return r.apply(path, target)
}

// apply performs the filesystem rename and classifies the result. In
// dry-run mode the rename is logged but not executed.
func (r *Renamer) apply(from, to string) Outcome {
	if r.config.Security.DryRun {
		r.logger.Infof("DRY-RUN: Would rename %s -> %s", from, filepath.Base(to))
		return Outcome{Status: StatusRenamed, From: from, To: to}
	}

	if err := os.Rename(from, to); err != nil {
		return Outcome{Status: StatusFailedRename, From: from, To: to, Err: err}
	}
	return Outcome{Status: StatusRenamed, From: from, To: to}
}

// classify maps a path to its media kind by extension, case-insensitive.
func (r *Renamer) classify(path string) namer.Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case r.config.IsPhotoExtension(ext):
		return namer.KindPhoto
	case r.config.IsVideoExtension(ext):
		return namer.KindVideo
	default:
		return namer.KindUnsupported
	}
}

// record updates counters and writes the per-file transcript line.
func (r *Renamer) record(o Outcome) {
	switch o.Status {
	case StatusRenamed:
		r.stats.IncrementRenamed()
		if !r.config.Security.DryRun {
			r.logger.Infof("Renamed %s -> %s", o.From, filepath.Base(o.To))
		}
	case StatusSkippedUnsupported:
		r.stats.IncrementSkippedUnsupported()
		r.logger.Debugf("Skipped (unsupported): %s", o.From)
	case StatusSkippedNoDate:
		r.stats.IncrementSkippedNoDate()
		r.logger.Infof("Skipped (missing date): %s", o.From)
	case StatusSkippedAlreadyNamed:
		r.stats.IncrementSkippedAlreadyNamed()
		r.logger.Infof("Skipped (already renamed): %s", o.From)
	case StatusFailedRename:
		r.stats.IncrementFailedRename()
		r.stats.AddError(o.From, "rename", o.Err.Error())
		logger.WithFileOperation(r.logger, o.From, "rename").Warnf("Skipped (rename failed): %v", o.Err)
	case StatusExhausted:
		r.stats.IncrementExhausted()
		r.stats.AddError(o.From, "name_search", o.Err.Error())
		logger.WithFileOperation(r.logger, o.From, "name_search").Warn("Skipped (name search exhausted)")
	}
}

// cleanup removes the fixed list of installation artifacts from the scanned
// root. Missing entries are fine; any other failure is logged and the
// remaining entries are still attempted.
func (r *Renamer) cleanup(root string) {
	for _, rel := range r.config.CleanupPaths {
		path := filepath.Join(root, rel)
		if r.config.Security.DryRun {
			if _, err := os.Lstat(path); err == nil {
				r.logger.Infof("DRY-RUN: Would remove %s", path)
			}
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			r.stats.IncrementCleanupErrors()
			r.stats.AddError(path, "cleanup", err.Error())
			logger.WithFile(r.logger, path).Warnf("Cleanup failed: %v", err)
		}
	}
}

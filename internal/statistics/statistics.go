package statistics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Statistics contains all counters for a rename run. The renamed/skipped
// totals feed the end-of-run summary; the per-reason counters break the
// skips down for the transcript.
type Statistics struct {
	TotalFilesFound int64

	FilesRenamed int64
	FilesSkipped int64

	SkippedUnsupported  int64
	SkippedNoDate       int64
	SkippedAlreadyNamed int64
	FailedRenames       int64
	ExhaustedCollisions int64
	CleanupErrors       int64

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Errors []StatError

	mutex sync.RWMutex

	FileTypeStats map[string]int64
}

// StatError represents an error that occurred during processing.
type StatError struct {
	FilePath  string
	Operation string
	Error     string
	Timestamp time.Time
}

// NewStatistics returns a new Statistics instance.
func NewStatistics() *Statistics {
	return &Statistics{
		StartTime:     time.Now(),
		FileTypeStats: make(map[string]int64),
		Errors:        make([]StatError, 0),
	}
}

// IncrementFilesFound increases the count of discovered files by 1.
func (s *Statistics) IncrementFilesFound() {
	atomic.AddInt64(&s.TotalFilesFound, 1)
}

// IncrementRenamed increases the count of renamed files by 1.
func (s *Statistics) IncrementRenamed() {
	atomic.AddInt64(&s.FilesRenamed, 1)
}

// IncrementSkippedUnsupported counts a file outside both extension allowlists.
func (s *Statistics) IncrementSkippedUnsupported() {
	atomic.AddInt64(&s.FilesSkipped, 1)
	atomic.AddInt64(&s.SkippedUnsupported, 1)
}

// IncrementSkippedNoDate counts a file with no usable capture date.
func (s *Statistics) IncrementSkippedNoDate() {
	atomic.AddInt64(&s.FilesSkipped, 1)
	atomic.AddInt64(&s.SkippedNoDate, 1)
}

// IncrementSkippedAlreadyNamed counts a file already in canonical form.
func (s *Statistics) IncrementSkippedAlreadyNamed() {
	atomic.AddInt64(&s.FilesSkipped, 1)
	atomic.AddInt64(&s.SkippedAlreadyNamed, 1)
}

// IncrementFailedRename counts a filesystem rename failure.
func (s *Statistics) IncrementFailedRename() {
	atomic.AddInt64(&s.FilesSkipped, 1)
	atomic.AddInt64(&s.FailedRenames, 1)
}

// IncrementExhausted counts a file whose collision-suffix search hit the bound.
func (s *Statistics) IncrementExhausted() {
	atomic.AddInt64(&s.FilesSkipped, 1)
	atomic.AddInt64(&s.ExhaustedCollisions, 1)
}

// IncrementCleanupErrors counts a post-run cleanup failure.
func (s *Statistics) IncrementCleanupErrors() {
	atomic.AddInt64(&s.CleanupErrors, 1)
}

// IncrementFileType increases the counter for a specific file type.
func (s *Statistics) IncrementFileType(fileType string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.FileTypeStats[fileType]++
}

// AddError records an error that occurred during processing.
func (s *Statistics) AddError(filePath, operation, errorMsg string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Errors = append(s.Errors, StatError{
		FilePath:  filePath,
		Operation: operation,
		Error:     errorMsg,
		Timestamp: time.Now(),
	})
}

// Finalize computes derived values at the end of a run.
func (s *Statistics) Finalize() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}

// FormatElapsed renders a duration adaptively: H.MM.SS:mmm above an hour,
// MM.SS:mmm above a minute, S:mmm above a second, plain milliseconds below.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	millis := ms % 1000
	seconds := (ms / 1000) % 60
	minutes := (ms / 1000 / 60) % 60
	hours := ms / 1000 / 60 / 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d.%02d.%02d:%03d", hours, minutes, seconds, millis)
	case minutes > 0:
		return fmt.Sprintf("%02d.%02d:%03d", minutes, seconds, millis)
	case seconds > 0:
		return fmt.Sprintf("%d:%03d", seconds, millis)
	default:
		return fmt.Sprintf("%03d", millis)
	}
}

// GetSummary returns a formatted end-of-run summary.
func (s *Statistics) GetSummary() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var b strings.Builder

	b.WriteString("=== Timeline Renamer Summary ===\n")
	b.WriteString(fmt.Sprintf("Files found:      %d\n", atomic.LoadInt64(&s.TotalFilesFound)))
	b.WriteString(fmt.Sprintf("Files renamed:    %d\n", atomic.LoadInt64(&s.FilesRenamed)))
	b.WriteString(fmt.Sprintf("Files skipped:    %d\n", atomic.LoadInt64(&s.FilesSkipped)))

	if n := atomic.LoadInt64(&s.SkippedUnsupported); n > 0 {
		b.WriteString(fmt.Sprintf("  unsupported:    %d\n", n))
	}
	if n := atomic.LoadInt64(&s.SkippedNoDate); n > 0 {
		b.WriteString(fmt.Sprintf("  missing date:   %d\n", n))
	}
	if n := atomic.LoadInt64(&s.SkippedAlreadyNamed); n > 0 {
		b.WriteString(fmt.Sprintf("  already named:  %d\n", n))
	}
	if n := atomic.LoadInt64(&s.FailedRenames); n > 0 {
		b.WriteString(fmt.Sprintf("  rename errors:  %d\n", n))
	}
	if n := atomic.LoadInt64(&s.ExhaustedCollisions); n > 0 {
		b.WriteString(fmt.Sprintf("  name exhausted: %d\n", n))
	}

	if len(s.FileTypeStats) > 0 {
		b.WriteString("File types:\n")
		types := make([]string, 0, len(s.FileTypeStats))
		for t := range s.FileTypeStats {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			b.WriteString(fmt.Sprintf("  %-6s %d\n", t, s.FileTypeStats[t]))
		}
	}

	if len(s.Errors) > 0 {
		b.WriteString(fmt.Sprintf("Errors:           %d\n", len(s.Errors)))
	}

	b.WriteString(fmt.Sprintf("Elapsed:          %s\n", FormatElapsed(s.Duration)))

	return b.String()
}

// GetFilesRenamed returns the renamed-files counter.
func (s *Statistics) GetFilesRenamed() int64 {
	return atomic.LoadInt64(&s.FilesRenamed)
}

// GetFilesSkipped returns the skipped-files counter.
func (s *Statistics) GetFilesSkipped() int64 {
	return atomic.LoadInt64(&s.FilesSkipped)
}

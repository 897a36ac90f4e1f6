package namer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timeline-renamer-go/internal/resolver"
)

// Kind classifies a media file by its extension.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPhoto
	KindVideo
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPhoto:
		return "Photo"
	case KindVideo:
		return "Video"
	default:
		return "Unsupported"
	}
}

// ErrAlreadyNamed is returned when the generated name resolves back to the
// file itself: the file is already in canonical form and no rename is needed.
var ErrAlreadyNamed = errors.New("file already in canonical form")

// ErrExhausted is returned when every collision suffix up to the configured
// bound is taken. Bounding the search is a deliberate guard against a
// pathological loop under filesystem races.
var ErrExhausted = errors.New("collision suffix attempts exhausted")

// Namer formats a capture moment into a canonical filename and resolves
// collisions against the directory of the original file.
type Namer struct {
	photoPrefix string
	videoPrefix string
	maxSuffix   int
}

// New returns a Namer with the given prefixes and suffix bound.
func New(photoPrefix, videoPrefix string, maxSuffix int) *Namer {
	if maxSuffix <= 0 {
		maxSuffix = 10000
	}
	return &Namer{
		photoPrefix: photoPrefix,
		videoPrefix: videoPrefix,
		maxSuffix:   maxSuffix,
	}
}

// FormatStamp renders a capture moment as yyyy-MM-dd_HH-mm-ss.
func FormatStamp(m resolver.CaptureMoment) string {
	return fmt.Sprintf("%04d-%02d-%02d_%02d-%02d-%02d",
		m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second)
}

// NextAvailableName returns the target path for originalPath in its own
// directory: {prefix}{stamp}{ext} on the first free slot, {prefix}{stamp}_N{ext}
// for N >= 1 on collisions. It returns ErrAlreadyNamed when a candidate
// resolves to the original file itself (textually or through symlinks), and
// ErrExhausted when the suffix bound is hit.
func (n *Namer) NextAvailableName(m resolver.CaptureMoment, kind Kind, originalPath string) (string, error) {
	var prefix string
	switch kind {
	case KindPhoto:
		prefix = n.photoPrefix
	case KindVideo:
		prefix = n.videoPrefix
	default:
		return "", fmt.Errorf("cannot name a file of kind %s", kind)
	}

	dir := filepath.Dir(originalPath)
	ext := filepath.Ext(originalPath)
	stamp := FormatStamp(m)
	cleanOriginal := filepath.Clean(originalPath)

	for attempt := 0; attempt <= n.maxSuffix; attempt++ {
		suffix := ""
		if attempt > 0 {
			suffix = fmt.Sprintf("_%d", attempt)
		}
		candidate := filepath.Join(dir, prefix+stamp+suffix+ext)

		if candidate == cleanOriginal {
			return "", ErrAlreadyNamed
		}

		if _, err := os.Lstat(candidate); err != nil {
			if os.IsNotExist(err) {
				return candidate, nil
			}
			return "", fmt.Errorf("failed to stat candidate %s: %w", candidate, err)
		}

		// An existing entry that canonicalizes to the original file means
		// the file already carries its canonical name, possibly through a
		// symlink.
		if samePath(candidate, cleanOriginal) {
			return "", ErrAlreadyNamed
		}
	}

	return "", ErrExhausted
}

// samePath reports whether two existing paths resolve to the same canonical
// (symlink-followed) location.
func samePath(a, b string) bool {
	ca, errA := filepath.EvalSymlinks(a)
	cb, errB := filepath.EvalSymlinks(b)
	if errA != nil || errB != nil {
		return false
	}
	return ca == cb
}

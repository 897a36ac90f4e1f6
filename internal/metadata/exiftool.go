package metadata

import (
	"fmt"
	"sync"

	"github.com/barasher/go-exiftool"
	"github.com/sirupsen/logrus"
)

// ExifToolReader reads metadata through a single long-lived exiftool
// stay_open session. The session is opened on the first read and closed
// exactly once by Close.
type ExifToolReader struct {
	logger *logrus.Logger

	once    sync.Once
	session *exiftool.Exiftool
	openErr error
}

// NewExifToolReader returns a reader backed by the exiftool binary. No
// process is spawned until the first Read call.
func NewExifToolReader(logger *logrus.Logger) *ExifToolReader {
	return &ExifToolReader{logger: logger}
}

// Read extracts the metadata mapping for a single file. Any extraction
// error, including an unavailable exiftool binary, is returned to the caller
// to be treated as "no metadata".
func (r *ExifToolReader) Read(path string) (Tags, error) {
	r.once.Do(func() {
		r.session, r.openErr = exiftool.NewExiftool()
		if r.openErr != nil {
			r.logger.Debugf("exiftool session unavailable: %v", r.openErr)
		}
	})
	if r.openErr != nil {
		return nil, fmt.Errorf("exiftool session: %w", r.openErr)
	}

	infos := r.session.ExtractMetadata(path)
	if len(infos) == 0 {
		return nil, fmt.Errorf("no metadata returned for %s", path)
	}

	info := infos[0]
	if info.Err != nil {
		return nil, fmt.Errorf("metadata extraction failed: %w", info.Err)
	}

	tags := make(Tags, len(info.Fields))
	for name, value := range info.Fields {
		if s, ok := value.(string); ok && s != "" {
			tags[name] = TagValue{Raw: s}
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no usable metadata fields for %s", path)
	}

	return tags, nil
}

// Close shuts the exiftool session down. Safe to call when no session was
// ever opened.
func (r *ExifToolReader) Close() error {
	if r.session == nil {
		return nil
	}
	return r.session.Close()
}

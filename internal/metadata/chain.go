package metadata

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ChainReader tries each underlying reader in order until one returns a
// usable mapping. Readers later in the chain only run when every earlier one
// failed for the file at hand.
type ChainReader struct {
	logger  *logrus.Logger
	readers []Reader
}

// NewChainReader returns a reader that consults the given readers in order.
func NewChainReader(logger *logrus.Logger, readers ...Reader) *ChainReader {
	return &ChainReader{logger: logger, readers: readers}
}

// NewDefaultReader returns the standard reader chain: the exiftool session
// first, with in-process EXIF decoding as fallback for when the binary is
// not installed.
func NewDefaultReader(logger *logrus.Logger) *ChainReader {
	return NewChainReader(logger,
		NewExifToolReader(logger),
		NewGoExifReader(logger),
	)
}

// Read returns the first successful non-empty mapping.
func (c *ChainReader) Read(path string) (Tags, error) {
	var lastErr error
	for _, r := range c.readers {
		tags, err := r.Read(path)
		if err == nil && len(tags) > 0 {
			return tags, nil
		}
		if err != nil {
			c.logger.Debugf("metadata reader failed for %s: %v", path, err)
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no metadata available for %s", path)
	}
	return nil, lastErr
}

// Close tears down every underlying reader, returning the first error seen.
func (c *ChainReader) Close() error {
	var firstErr error
	for _, r := range c.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

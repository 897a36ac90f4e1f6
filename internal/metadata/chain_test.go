package metadata

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

type stubReader struct {
	tags   Tags
	err    error
	reads  int
	closed int
}

func (s *stubReader) Read(path string) (Tags, error) {
	s.reads++
	return s.tags, s.err
}

func (s *stubReader) Close() error {
	s.closed++
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestChainReaderFallsThrough(t *testing.T) {
	failing := &stubReader{err: errors.New("binary missing")}
	working := &stubReader{tags: Tags{"DateTimeOriginal": {Raw: "2023:06:01 10:15:02"}}}

	chain := NewChainReader(quietLogger(), failing, working)

	tags, err := chain.Read("/photos/a.jpg")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if _, ok := tags["DateTimeOriginal"]; !ok {
		t.Errorf("Read() = %v, want fallback reader's tags", tags)
	}
	if failing.reads != 1 || working.reads != 1 {
		t.Errorf("reads = %d/%d, want each reader consulted once", failing.reads, working.reads)
	}
}

func TestChainReaderStopsAtFirstSuccess(t *testing.T) {
	first := &stubReader{tags: Tags{"CreateDate": {Raw: "2021:01:01 00:00:00"}}}
	second := &stubReader{tags: Tags{"CreateDate": {Raw: "1999:01:01 00:00:00"}}}

	chain := NewChainReader(quietLogger(), first, second)

	if _, err := chain.Read("/photos/a.jpg"); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if second.reads != 0 {
		t.Error("second reader consulted despite first success")
	}
}

func TestChainReaderReportsFailure(t *testing.T) {
	failing := &stubReader{err: errors.New("no metadata")}
	chain := NewChainReader(quietLogger(), failing)

	if _, err := chain.Read("/photos/a.jpg"); err == nil {
		t.Error("Read() expected an error when every reader fails")
	}
}

func TestChainReaderClosesAll(t *testing.T) {
	a := &stubReader{err: errors.New("x")}
	b := &stubReader{err: errors.New("y")}
	chain := NewChainReader(quietLogger(), a, b)

	if err := chain.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if a.closed != 1 || b.closed != 1 {
		t.Errorf("closed = %d/%d, want each reader closed once", a.closed, b.closed)
	}
}

func TestStructuredFromExifString(t *testing.T) {
	sd := structuredFromExifString("2023:06:01 10:15:02")
	if sd == nil {
		t.Fatal("structuredFromExifString() = nil")
	}
	if sd.Year != 2023 || sd.Month != 6 || sd.Day != 1 || sd.Hour != 10 {
		t.Errorf("structuredFromExifString() = %+v", sd)
	}
	if sd.OffsetMinutes != 0 || sd.ZoneName != "" {
		t.Errorf("wall-clock EXIF value must carry no zone, got %+v", sd)
	}

	if structuredFromExifString("garbage") != nil {
		t.Error("structuredFromExifString() accepted garbage")
	}
}

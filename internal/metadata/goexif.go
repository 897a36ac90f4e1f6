package metadata

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/sirupsen/logrus"
)

// exifTimestampLayout is the wall-clock layout EXIF timestamp fields use.
const exifTimestampLayout = "2006:01:02 15:04:05"

// GoExifReader is a pure-Go fallback reader for photo files, used when the
// exiftool binary is not installed. It decodes EXIF directly and produces
// structured date records.
type GoExifReader struct {
	logger *logrus.Logger
}

// NewGoExifReader returns a reader backed by in-process EXIF decoding.
func NewGoExifReader(logger *logrus.Logger) *GoExifReader {
	return &GoExifReader{logger: logger}
}

// Read decodes EXIF data from the file and returns the date fields it knows
// about. Non-EXIF formats and files without EXIF blocks return an error.
func (r *GoExifReader) Read(path string) (Tags, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode EXIF: %w", err)
	}

	tags := make(Tags)
	fields := map[string]exif.FieldName{
		"DateTimeOriginal":  exif.DateTimeOriginal,
		"DateTimeDigitized": exif.DateTimeDigitized,
		"DateTime":          exif.DateTime,
	}
	for name, field := range fields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil || raw == "" {
			continue
		}
		if sd := structuredFromExifString(raw); sd != nil {
			tags[name] = TagValue{Raw: raw, Date: sd}
		}
	}

	if len(tags) == 0 {
		return nil, fmt.Errorf("no date fields in EXIF for %s", path)
	}

	return tags, nil
}

// Close is a no-op: the fallback reader holds no session.
func (r *GoExifReader) Close() error {
	return nil
}

// structuredFromExifString parses an EXIF wall-clock timestamp into a
// structured record with no zone attached.
func structuredFromExifString(raw string) *StructuredDate {
	t, err := time.Parse(exifTimestampLayout, raw)
	if err != nil {
		return nil
	}
	return &StructuredDate{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Raw:    raw,
	}
}

package resolver

import (
	"time"

	"timeline-renamer-go/internal/metadata"
)

// offsetLayouts parse textual values that embed their own offset. These are
// tried first so any explicit offset survives normalization.
var offsetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006:01:02 15:04:05Z07:00",
	"2006:01:02 15:04:05.999Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// plainLayouts parse offset-less wall-clock values, including the classic
// colon-separated EXIF form.
var plainLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006:01:02 15:04:05",
	"2006:01:02 15:04:05.999",
	"2006-01-02 15:04:05",
	"2006:01:02",
	"2006-01-02",
}

// Normalize converts a heterogeneous tag value (structured record or plain
// string) into one canonical structured date, so the resolver never has to
// sniff value shapes. Returns nil when the value cannot represent a valid
// date.
func Normalize(value metadata.TagValue) *metadata.StructuredDate {
	if value.Date != nil {
		sd := *value.Date
		if sd.Raw == "" {
			sd.Raw = value.Raw
		}
		// A raw form that parses strictly with an embedded offset wins over
		// the record's individual fields.
		for _, layout := range offsetLayouts {
			if t, err := time.Parse(layout, sd.Raw); err == nil {
				return structuredFromTime(t, sd.Raw)
			}
		}
		if !validComponents(&sd) {
			return nil
		}
		return &sd
	}

	raw := value.Raw
	if raw == "" {
		return nil
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return structuredFromTime(t, raw)
		}
	}
	for _, layout := range plainLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			sd := structuredFromTime(t, raw)
			sd.ZoneName = "" // parsed without a zone, none is known
			return sd
		}
	}

	return nil
}

// structuredFromTime decomposes a parsed instant into calendar components
// with its original offset. time.Parse keeps the wall clock as written, so
// the components are already local to the embedded offset.
func structuredFromTime(t time.Time, raw string) *metadata.StructuredDate {
	zoneName, offsetSeconds := t.Zone()
	return &metadata.StructuredDate{
		Year:          t.Year(),
		Month:         int(t.Month()),
		Day:           t.Day(),
		Hour:          t.Hour(),
		Minute:        t.Minute(),
		Second:        t.Second(),
		Millisecond:   t.Nanosecond() / int(time.Millisecond),
		OffsetMinutes: offsetSeconds / 60,
		ZoneName:      zoneName,
		Raw:           raw,
	}
}

// validComponents rejects structured records that cannot be a real calendar
// date, for example a zeroed-out EXIF placeholder.
func validComponents(sd *metadata.StructuredDate) bool {
	if sd.Year < 1 || sd.Month < 1 || sd.Month > 12 || sd.Day < 1 || sd.Day > 31 {
		return false
	}
	if sd.Hour < 0 || sd.Hour > 23 || sd.Minute < 0 || sd.Minute > 59 || sd.Second < 0 || sd.Second > 59 {
		return false
	}
	// Round-trip through time.Date catches impossible day-of-month values.
	t := time.Date(sd.Year, time.Month(sd.Month), sd.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == sd.Year && int(t.Month()) == sd.Month && t.Day() == sd.Day
}

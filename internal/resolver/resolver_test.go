package resolver

import (
	"io"
	"testing"
	"time"

	"timeline-renamer-go/internal/metadata"

	"github.com/sirupsen/logrus"
)

var (
	testLocalTags = []string{"DateTimeOriginal", "DateTimeDigitized", "CreateDate", "DateTime"}
	testZonedTags = []string{"CreationDate", "MediaCreateDate", "TrackCreateDate", "GPSDateTime"}
)

func newTestResolver(loc *time.Location) *Resolver {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, testLocalTags, testZonedTags, loc)
}

func moment(y, mo, d, h, mi, s int) *CaptureMoment {
	return &CaptureMoment{Year: y, Month: mo, Day: d, Hour: h, Minute: mi, Second: s}
}

func TestResolvePriorities(t *testing.T) {
	plusThree := time.FixedZone("UTC+3", 3*60*60)

	tests := []struct {
		name string
		tags metadata.Tags
		want *CaptureMoment
	}{
		{
			name: "local field taken verbatim",
			tags: metadata.Tags{
				"DateTimeOriginal": {Raw: "2023:06:01 10:15:02"},
			},
			want: moment(2023, 6, 1, 10, 15, 2),
		},
		{
			name: "local field wins over zoned field",
			tags: metadata.Tags{
				"DateTimeOriginal": {Raw: "2023:06:01 10:15:02"},
				"CreationDate":     {Raw: "2024-12-31T23:59:59Z"},
			},
			want: moment(2023, 6, 1, 10, 15, 2),
		},
		{
			name: "local sub-order is fixed",
			tags: metadata.Tags{
				"CreateDate":       {Raw: "2022:01:01 00:00:00"},
				"DateTimeOriginal": {Raw: "2023:06:01 10:15:02"},
			},
			want: moment(2023, 6, 1, 10, 15, 2),
		},
		{
			name: "zoned UTC value converted to local zone",
			tags: metadata.Tags{
				"CreationDate": {Raw: "2024-12-31T23:59:59Z"},
			},
			want: moment(2025, 1, 1, 2, 59, 59),
		},
		{
			name: "zoned value with explicit offset kept unconverted",
			tags: metadata.Tags{
				"CreationDate": {Raw: "2024-06-15T08:30:00+02:00"},
			},
			want: moment(2024, 6, 15, 8, 30, 0),
		},
		{
			name: "zoned exiftool form without offset treated as UTC",
			tags: metadata.Tags{
				"MediaCreateDate": {Raw: "2024:12:31 23:59:59"},
			},
			want: moment(2025, 1, 1, 2, 59, 59),
		},
		{
			name: "unparsable candidate skipped, search continues",
			tags: metadata.Tags{
				"DateTimeOriginal": {Raw: "0000:00:00 00:00:00"},
				"CreateDate":       {Raw: "2021:03:04 05:06:07"},
			},
			want: moment(2021, 3, 4, 5, 6, 7),
		},
		{
			name: "no recognized fields",
			tags: metadata.Tags{
				"Artist": {Raw: "someone"},
			},
			want: nil,
		},
		{
			name: "empty mapping",
			tags: metadata.Tags{},
			want: nil,
		},
	}

	r := newTestResolver(plusThree)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.tags)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Resolve() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve() = nil, want %+v", tt.want)
			}
			if *got != *tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveStructuredRecords(t *testing.T) {
	plusThree := time.FixedZone("UTC+3", 3*60*60)
	r := newTestResolver(plusThree)

	t.Run("structured local record used as-is", func(t *testing.T) {
		tags := metadata.Tags{
			"DateTimeOriginal": {
				Raw: "2023:06:01 10:15:02",
				Date: &metadata.StructuredDate{
					Year: 2023, Month: 6, Day: 1, Hour: 10, Minute: 15, Second: 2,
					Raw: "2023:06:01 10:15:02",
				},
			},
		}
		got := r.Resolve(tags)
		if got == nil || *got != *moment(2023, 6, 1, 10, 15, 2) {
			t.Errorf("Resolve() = %+v, want 2023-06-01 10:15:02", got)
		}
	})

	t.Run("structured zoned record with nonzero offset kept", func(t *testing.T) {
		tags := metadata.Tags{
			"CreationDate": {
				Date: &metadata.StructuredDate{
					Year: 2024, Month: 6, Day: 15, Hour: 8, Minute: 30, Second: 0,
					OffsetMinutes: 120,
					Raw:           "2024:06:15 08:30:00",
				},
			},
		}
		got := r.Resolve(tags)
		if got == nil || *got != *moment(2024, 6, 15, 8, 30, 0) {
			t.Errorf("Resolve() = %+v, want offset-local components kept", got)
		}
	})

	t.Run("structured zoned record with named zone kept", func(t *testing.T) {
		tags := metadata.Tags{
			"CreationDate": {
				Date: &metadata.StructuredDate{
					Year: 2024, Month: 6, Day: 15, Hour: 8, Minute: 30, Second: 0,
					ZoneName: "Europe/Berlin",
					Raw:      "2024:06:15 08:30:00",
				},
			},
		}
		got := r.Resolve(tags)
		if got == nil || *got != *moment(2024, 6, 15, 8, 30, 0) {
			t.Errorf("Resolve() = %+v, want named-zone components kept", got)
		}
	})

	t.Run("structured zoned record with UTC sentinel converted", func(t *testing.T) {
		tags := metadata.Tags{
			"CreationDate": {
				Date: &metadata.StructuredDate{
					Year: 2024, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59,
					ZoneName: "UTC",
					Raw:      "2024:12:31 23:59:59",
				},
			},
		}
		got := r.Resolve(tags)
		if got == nil || *got != *moment(2025, 1, 1, 2, 59, 59) {
			t.Errorf("Resolve() = %+v, want UTC converted to UTC+3", got)
		}
	})
}

func TestHasExplicitOffset(t *testing.T) {
	tests := []struct {
		name string
		sd   metadata.StructuredDate
		want bool
	}{
		{"trailing positive offset", metadata.StructuredDate{Raw: "2024-06-15T08:30:00+02:00"}, true},
		{"trailing negative offset", metadata.StructuredDate{Raw: "2024-06-15T08:30:00-07:00"}, true},
		{"trailing Z is not an offset pattern", metadata.StructuredDate{Raw: "2024-06-15T08:30:00Z"}, false},
		{"nonzero numeric offset", metadata.StructuredDate{OffsetMinutes: 60}, true},
		{"zero offset no zone", metadata.StructuredDate{}, false},
		{"named non-UTC zone", metadata.StructuredDate{ZoneName: "Europe/Berlin"}, true},
		{"UTC sentinel zone", metadata.StructuredDate{ZoneName: "UTC"}, false},
		{"GMT sentinel zone", metadata.StructuredDate{ZoneName: "gmt"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasExplicitOffset(&tt.sd); got != tt.want {
				t.Errorf("hasExplicitOffset(%+v) = %v, want %v", tt.sd, got, tt.want)
			}
		})
	}
}

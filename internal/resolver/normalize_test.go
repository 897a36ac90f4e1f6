package resolver

import (
	"testing"

	"timeline-renamer-go/internal/metadata"
)

func TestNormalizeStrings(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantNil       bool
		wantYear      int
		wantMonth     int
		wantDay       int
		wantHour      int
		wantOffsetMin int
	}{
		{
			name: "RFC3339 with Z", raw: "2024-12-31T23:59:59Z",
			wantYear: 2024, wantMonth: 12, wantDay: 31, wantHour: 23, wantOffsetMin: 0,
		},
		{
			name: "RFC3339 with positive offset", raw: "2024-06-15T08:30:00+02:00",
			wantYear: 2024, wantMonth: 6, wantDay: 15, wantHour: 8, wantOffsetMin: 120,
		},
		{
			name: "RFC3339 with negative offset", raw: "2024-06-15T08:30:00-07:00",
			wantYear: 2024, wantMonth: 6, wantDay: 15, wantHour: 8, wantOffsetMin: -420,
		},
		{
			name: "exiftool wall clock", raw: "2023:06:01 10:15:02",
			wantYear: 2023, wantMonth: 6, wantDay: 1, wantHour: 10,
		},
		{
			name: "exiftool with offset", raw: "2023:06:01 10:15:02+03:00",
			wantYear: 2023, wantMonth: 6, wantDay: 1, wantHour: 10, wantOffsetMin: 180,
		},
		{
			name: "ISO without zone", raw: "2023-06-01T10:15:02",
			wantYear: 2023, wantMonth: 6, wantDay: 1, wantHour: 10,
		},
		{
			name: "date only", raw: "2023:06:01",
			wantYear: 2023, wantMonth: 6, wantDay: 1,
		},
		{name: "zeroed EXIF placeholder", raw: "0000:00:00 00:00:00", wantNil: true},
		{name: "garbage", raw: "not a date", wantNil: true},
		{name: "empty", raw: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(metadata.TagValue{Raw: tt.raw})
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Normalize(%q) = %+v, want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Normalize(%q) = nil, want a structured date", tt.raw)
			}
			if got.Year != tt.wantYear || got.Month != tt.wantMonth || got.Day != tt.wantDay {
				t.Errorf("Normalize(%q) date = %d-%d-%d, want %d-%d-%d",
					tt.raw, got.Year, got.Month, got.Day, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
			if got.Hour != tt.wantHour {
				t.Errorf("Normalize(%q) hour = %d, want %d", tt.raw, got.Hour, tt.wantHour)
			}
			if got.OffsetMinutes != tt.wantOffsetMin {
				t.Errorf("Normalize(%q) offset = %d, want %d", tt.raw, got.OffsetMinutes, tt.wantOffsetMin)
			}
			if got.Raw != tt.raw {
				t.Errorf("Normalize(%q) raw = %q, want original preserved", tt.raw, got.Raw)
			}
		})
	}
}

func TestNormalizeStructured(t *testing.T) {
	t.Run("valid record passes through", func(t *testing.T) {
		in := metadata.TagValue{
			Date: &metadata.StructuredDate{
				Year: 2023, Month: 6, Day: 1, Hour: 10, Minute: 15, Second: 2,
				Raw: "2023:06:01 10:15:02",
			},
		}
		got := Normalize(in)
		if got == nil || got.Year != 2023 || got.Month != 6 || got.Day != 1 {
			t.Errorf("Normalize(structured) = %+v, want record preserved", got)
		}
	})

	t.Run("raw ISO form with offset wins over record fields", func(t *testing.T) {
		in := metadata.TagValue{
			Date: &metadata.StructuredDate{
				Year: 1999, Month: 1, Day: 1,
				Raw: "2024-06-15T08:30:00+02:00",
			},
		}
		got := Normalize(in)
		if got == nil {
			t.Fatal("Normalize() = nil")
		}
		if got.Year != 2024 || got.OffsetMinutes != 120 {
			t.Errorf("Normalize() = %+v, want the parsed raw form", got)
		}
	})

	t.Run("impossible record rejected", func(t *testing.T) {
		in := metadata.TagValue{
			Date: &metadata.StructuredDate{Year: 2023, Month: 2, Day: 30},
		}
		if got := Normalize(in); got != nil {
			t.Errorf("Normalize(Feb 30) = %+v, want nil", got)
		}
	})

	t.Run("leap-second record rejected", func(t *testing.T) {
		// A :60 second would render outside the HH-mm-ss stamp grammar.
		in := metadata.TagValue{
			Date: &metadata.StructuredDate{
				Year: 2016, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 60,
			},
		}
		if got := Normalize(in); got != nil {
			t.Errorf("Normalize(leap second) = %+v, want nil", got)
		}
	})

	t.Run("zeroed record rejected", func(t *testing.T) {
		in := metadata.TagValue{Date: &metadata.StructuredDate{}}
		if got := Normalize(in); got != nil {
			t.Errorf("Normalize(zero record) = %+v, want nil", got)
		}
	})
}

package resolver

import (
	"regexp"
	"strings"
	"time"

	"timeline-renamer-go/internal/metadata"

	"github.com/sirupsen/logrus"
)

// CaptureMoment is the calendar timestamp used to build the new filename.
// No timezone is retained: by the time a moment exists, any conversion the
// source field required has already happened.
type CaptureMoment struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Resolver selects one usable date field from a metadata mapping, following
// the configured priority tables, and normalizes it to a capture moment.
//
// Local tags are defined to carry no timezone and are taken verbatim. Zoned
// tags may carry an offset: when they do, the value's own offset-local
// components are kept; when they do not, the value is treated as UTC and
// converted to the resolver's location before components are extracted.
type Resolver struct {
	logger    *logrus.Logger
	localTags []string
	zonedTags []string
	localSet  map[string]bool
	location  *time.Location
}

// trailingOffsetPattern matches an explicit ±HH:MM offset at the end of a
// raw metadata value.
var trailingOffsetPattern = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)

// utcSentinels are zone names that mean plain UTC rather than a real named
// zone, so their presence alone does not count as explicit offset info.
var utcSentinels = map[string]bool{
	"UTC":    true,
	"Z":      true,
	"GMT":    true,
	"UTC+0":  true,
	"+00:00": true,
}

// New returns a Resolver for the given priority tables. location is the zone
// offset-less zoned values are converted into; pass time.Local for normal
// runs.
func New(logger *logrus.Logger, localTags, zonedTags []string, location *time.Location) *Resolver {
	localSet := make(map[string]bool, len(localTags))
	for _, tag := range localTags {
		localSet[tag] = true
	}
	if location == nil {
		location = time.Local
	}
	return &Resolver{
		logger:    logger,
		localTags: localTags,
		zonedTags: zonedTags,
		localSet:  localSet,
		location:  location,
	}
}

// Resolve picks the first usable date field from tags, local tags before
// zoned tags, in fixed sub-order. It returns nil when no field is present
// and parsable; that is a terminal skip, not an error.
func (r *Resolver) Resolve(tags metadata.Tags) *CaptureMoment {
	if len(tags) == 0 {
		return nil
	}

	for _, field := range r.searchOrder() {
		value, ok := tags[field]
		if !ok {
			continue
		}
		sd := Normalize(value)
		if sd == nil {
			// Unparsable value: keep searching, not fatal.
			r.logger.Debugf("date field %s has unusable value %q", field, value.Raw)
			continue
		}

		if r.localSet[field] {
			return momentFromComponents(sd)
		}
		return r.zonedMoment(sd)
	}

	return nil
}

// searchOrder returns the full candidate order: local tags first, then zoned
// tags, each in their fixed sub-order.
func (r *Resolver) searchOrder() []string {
	order := make([]string, 0, len(r.localTags)+len(r.zonedTags))
	order = append(order, r.localTags...)
	order = append(order, r.zonedTags...)
	return order
}

// zonedMoment extracts components from a zoned-field record. When the source
// carried no explicit offset information, the value is interpreted as UTC
// and converted to the resolver's location first.
func (r *Resolver) zonedMoment(sd *metadata.StructuredDate) *CaptureMoment {
	if hasExplicitOffset(sd) {
		return momentFromComponents(sd)
	}

	t := time.Date(sd.Year, time.Month(sd.Month), sd.Day,
		sd.Hour, sd.Minute, sd.Second, 0, time.UTC).In(r.location)
	return &CaptureMoment{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// hasExplicitOffset reports whether the source value carried its own offset
// information: a trailing ±HH:MM pattern in the raw text, a non-zero numeric
// offset, or a named zone that is not a UTC sentinel. The rule is a
// pragmatic heuristic, kept as-is on purpose.
func hasExplicitOffset(sd *metadata.StructuredDate) bool {
	if trailingOffsetPattern.MatchString(sd.Raw) {
		return true
	}
	if sd.OffsetMinutes != 0 {
		return true
	}
	if sd.ZoneName != "" && !utcSentinels[strings.ToUpper(sd.ZoneName)] {
		return true
	}
	return false
}

func momentFromComponents(sd *metadata.StructuredDate) *CaptureMoment {
	return &CaptureMoment{
		Year:   sd.Year,
		Month:  sd.Month,
		Day:    sd.Day,
		Hour:   sd.Hour,
		Minute: sd.Minute,
		Second: sd.Second,
	}
}

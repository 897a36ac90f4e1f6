package metadata

// StructuredDate is the canonical shape every raw metadata date value is
// normalized into before the resolver runs any branching logic. Offset and
// zone describe what the source itself carried; a zero offset with an empty
// zone name means "no zone known".
type StructuredDate struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int

	OffsetMinutes int    // embedded offset east of UTC, 0 when absent
	ZoneName      string // named zone if the source carried one
	Raw           string // original textual form
}

// TagValue is one metadata field value as returned by a reader: always the
// raw textual form, plus the structured form when the reader produced one.
type TagValue struct {
	Raw  string
	Date *StructuredDate
}

// Tags maps metadata field names to their values for a single file.
type Tags map[string]TagValue

// Reader is the metadata collaborator. Implementations hold at most one
// logical session per run: Read may open it lazily, Close tears it down once
// after the last file is processed. A failed read means "no metadata" for
// that file and is never fatal.
type Reader interface {
	Read(path string) (Tags, error)
	Close() error
}

package archival

import (
	"strings"

	"apmeta/internal/isad"
)

// FromRecord reads back the file-level facts an Item record carries. Fields
// promoted to a parent are absent from the child and come back empty.
func FromRecord(r isad.Record) FileRecord {
	f := FileRecord{
		Path:            r.Get(isad.DigitalObjectPath),
		Checksum:        r.Get(isad.DigitalObjectChecksum),
		TechnicalReport: r.Get(isad.GeneralNote),
		Names:           isad.SplitList(r.Get(isad.NameAccessPoints)),
		Subjects:        isad.SplitList(r.Get(isad.SubjectAccessPoints)),
	}
	if credits := strings.TrimSpace(r.Get(isad.ReproductionConditions)); credits != "" {
		f.Credits = strings.Split(credits, isad.CreditSeparator)
	}
	f.Dates = splitEvents(r)
	return f
}

func splitEvents(r isad.Record) []DateEvent {
	dates := strings.Split(r.Get(isad.EventDates), isad.ListSeparator)
	if len(dates) == 1 && dates[0] == "" {
		return nil
	}
	types := strings.Split(r.Get(isad.EventTypes), isad.ListSeparator)
	starts := strings.Split(r.Get(isad.EventStartDates), isad.ListSeparator)
	ends := strings.Split(r.Get(isad.EventEndDates), isad.ListSeparator)
	actors := strings.Split(r.Get(isad.EventActors), isad.ListSeparator)

	events := make([]DateEvent, len(dates))
	for i := range dates {
		events[i] = DateEvent{
			Dates:      nullToEmpty(dates, i),
			Types:      nullToEmpty(types, i),
			StartDates: nullToEmpty(starts, i),
			EndDates:   nullToEmpty(ends, i),
			Actors:     nullToEmpty(actors, i),
		}
	}
	return events
}

func nullToEmpty(values []string, i int) string {
	if i >= len(values) || values[i] == isad.NullValue {
		return ""
	}
	return values[i]
}

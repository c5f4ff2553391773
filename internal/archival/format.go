package archival

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"apmeta/internal/isad"
	"apmeta/internal/textutil"
)

// FormatOptions controls Item record derivation.
type FormatOptions struct {
	IncludeExtInTitle   bool
	LocationOfOriginals string
}

// Format orders files naturally by base name and maps each onto an Item
// record. Positions, and so identifiers, follow that order.
func Format(files []MatchedFile, opts FormatOptions) ([]isad.Record, []MatchedFile) {
	sorted := append([]MatchedFile(nil), files...)
	textutil.SortNatural(sorted, func(f MatchedFile) string { return baseName(f.Path) })

	records := make([]isad.Record, len(sorted))
	for i, f := range sorted {
		records[i] = FormatItem(f, i+1, len(sorted), opts)
	}
	return records, sorted
}

// FormatItem maps one file at 1-based position pos of a batch of total files.
func FormatItem(f MatchedFile, pos, total int, opts FormatOptions) isad.Record {
	r := isad.NewRecord()
	r.Set(isad.LegacyID, strconv.Itoa(pos))
	if total > 1 {
		r.Set(isad.Identifier, fmt.Sprintf("%03d", pos))
	}
	r.Set(isad.Title, ItemTitle(f.Path, opts.IncludeExtInTitle))
	r.Set(isad.LevelOfDescription, isad.LevelItem)
	r.Set(isad.ExtentAndMedium, ExtentAndMedium(f.Format))
	r.Set(isad.ReproductionConditions, strings.Join(f.Credits, isad.CreditSeparator))
	r.Set(isad.Language, "en")
	r.Set(isad.LocationOfOriginals, opts.LocationOfOriginals)
	r.Set(isad.DigitalObjectPath, f.Path)
	r.Set(isad.DigitalObjectChecksum, f.Checksum)
	r.Set(isad.GeneralNote, f.TechnicalReport)
	r.Set(isad.SubjectAccessPoints, isad.JoinList(f.Subjects))
	r.Set(isad.NameAccessPoints, isad.JoinList(f.Names))
	r.Set(isad.LanguageOfDescription, "en")
	r.Set(isad.PublicationStatus, "Draft")
	r.Set(isad.Culture, "en")

	r.Set(isad.EventDates, joinEvents(f.Dates, func(d DateEvent) string { return d.Dates }))
	r.Set(isad.EventTypes, joinEvents(f.Dates, func(d DateEvent) string { return d.Types }))
	r.Set(isad.EventStartDates, joinEvents(f.Dates, func(d DateEvent) string { return d.StartDates }))
	r.Set(isad.EventEndDates, joinEvents(f.Dates, func(d DateEvent) string { return d.EndDates }))
	r.Set(isad.EventActors, joinEvents(f.Dates, func(d DateEvent) string { return d.Actors }))
	return r
}

// ItemTitle derives a readable title from a file name.
func ItemTitle(path string, includeExt bool) string {
	name := filepath.Base(path)
	if !includeExt {
		name = baseName(path)
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return textutil.BreakCamelCase(name)
}

// ExtentAndMedium describes a single file by MIME major type and format name.
func ExtentAndMedium(m FormatMatch) string {
	kind := "digital object"
	if major, _, _ := strings.Cut(m.MIME, "/"); major != "" && major != "application" {
		kind = major + " file"
	}
	if m.Format != "" {
		return fmt.Sprintf("1 %s (%s)", kind, m.Format)
	}
	return "1 " + kind
}

func joinEvents(events []DateEvent, pick func(DateEvent) string) string {
	parts := make([]string, len(events))
	for i, e := range events {
		if v := pick(e); v != "" {
			parts[i] = v
		} else {
			parts[i] = isad.NullValue
		}
	}
	return isad.JoinList(parts)
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

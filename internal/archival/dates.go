package archival

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// EventCreation is the only event type the pipeline emits.
const EventCreation = "Creation"

const dateLayout = "2006-01-02"

// Filename date patterns in precedence order. Later matches override the
// fields of earlier ones, so a year-first date wins over an accidental
// month-day-year reading of its tail.
var filenameDatePatterns = []struct {
	re                    *regexp.Regexp
	month, day, yearGroup int
}{
	{regexp.MustCompile(`(\d{1,2})[-.](\d{1,2})[-.](\d{4})`), 1, 2, 3},
	{regexp.MustCompile(`(\d{1,2})[-.](\d{1,2})[-.](\d{2})\D`), 1, 2, 3},
	{regexp.MustCompile(`(\d{4})[-.](\d{1,2})[-.](\d{1,2})`), 2, 3, 1},
}

// InferDates adds the modification date and, when it differs, the date
// found in the file name. Events already present are not added again.
func InferDates(f IdentifiedFile) IdentifiedFile {
	out := IdentifiedFile{FileRecord: f.clone()}

	modified := out.Modified.Format(dateLayout)
	out.Dates = appendEvent(out.Dates, DateEvent{Dates: modified, Types: EventCreation})

	name := strings.TrimSuffix(filepath.Base(out.Path), filepath.Ext(out.Path))
	if fromName, ok := FilenameDate(name); ok && fromName != modified {
		out.Dates = appendEvent(out.Dates, DateEvent{Dates: fromName, Types: EventCreation})
	}
	return out
}

func appendEvent(events []DateEvent, event DateEvent) []DateEvent {
	if slices.Contains(events, event) {
		return events
	}
	return append(events, event)
}

// FilenameDate extracts a YYYY-MM-DD date from a file name without its
// extension. All patterns capture year, month and day, so ok is false only
// when nothing matched.
func FilenameDate(name string) (string, bool) {
	var year, month, day string
	for _, p := range filenameDatePatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		year, month, day = m[p.yearGroup], m[p.month], m[p.day]
	}
	if year == "" {
		return "", false
	}
	year = ExpandYear(year)
	switch {
	case month == "":
		return year, true
	case day == "":
		return fmt.Sprintf("%s-%s", year, pad2(month)), true
	default:
		return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day)), true
	}
}

// ExpandYear widens a two-digit year: 90-99 are 1900s, everything else 2000s.
// Other lengths are returned unchanged.
func ExpandYear(year string) string {
	if len(year) != 2 {
		return year
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	if n >= 90 {
		return "19" + year
	}
	return "20" + year
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

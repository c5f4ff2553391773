package archival

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"apmeta/internal/isad"
	"apmeta/internal/services"
)

// BatchLabel labels the batch identifier among alternative identifiers.
const BatchLabel = "apmeta-folderID"

const containerTitleSegments = 3

// Consolidate tags every record with batchID and, for batches of more than
// one record, prepends a folder-level parent that absorbs values shared by
// all children. The input is not modified.
func Consolidate(records []isad.Record, sourceDir, batchID string) ([]isad.Record, error) {
	if len(records) == 0 {
		return nil, services.Wrap(services.ErrValidation, "define", "consolidate", "No records to consolidate", nil)
	}
	children := isad.CloneAll(records)
	for _, r := range children {
		AttachBatchID(r, batchID)
	}
	if len(children) == 1 {
		return children, nil
	}

	parent := NewContainer(children, sourceDir, batchID)
	Promote(parent, children)
	parentID := parent.Get(isad.LegacyID)
	for _, child := range children {
		child.Set(isad.ParentID, parentID)
	}
	return append([]isad.Record{parent}, children...), nil
}

// AttachBatchID appends batchID to the alternative identifiers of r unless
// it is already there.
func AttachBatchID(r isad.Record, batchID string) {
	if batchID == "" {
		return
	}
	ids := isad.SplitList(r.Get(isad.AlternativeIdentifiers))
	if slices.Contains(ids, batchID) {
		return
	}
	labels := isad.SplitList(r.Get(isad.AlternativeIdentifierLabels))
	r.Set(isad.AlternativeIdentifiers, isad.JoinList(append(ids, batchID)))
	r.Set(isad.AlternativeIdentifierLabels, isad.JoinList(append(labels, BatchLabel)))
}

// NewContainer synthesizes the parent record for children.
func NewContainer(children []isad.Record, sourceDir, batchID string) isad.Record {
	parent := isad.NewRecord()
	parent.Set(isad.LegacyID, strconv.Itoa(nextLegacyID(children)))
	parent.Set(isad.Identifier, batchID)
	parent.Set(isad.Title, ContainerTitle(sourceDir))
	parent.Set(isad.LevelOfDescription, isad.LevelFile)
	parent.Set(isad.ExtentAndMedium, containerExtent(len(children)))
	parent.Set(isad.Language, "en")
	parent.Set(isad.LanguageOfDescription, "en")
	parent.Set(isad.PublicationStatus, "Draft")
	parent.Set(isad.Culture, "en")
	AttachBatchID(parent, batchID)

	for _, f := range isad.AccessPointFields {
		var union []string
		for _, child := range children {
			union = appendUnique(union, isad.SplitList(child.Get(f))...)
		}
		parent.Set(f, isad.JoinList(union))
	}

	dates, start, end, actors := containerEvents(children)
	parent.Set(isad.EventDates, dates)
	parent.Set(isad.EventTypes, EventCreation)
	parent.Set(isad.EventStartDates, start)
	parent.Set(isad.EventEndDates, end)
	parent.Set(isad.EventActors, actors)
	return parent
}

// Promote moves every non-event field whose non-empty value is identical
// across children onto parent, provided the parent holds nothing or the same
// value, and removes it from the children. Linkage and digital object fields
// never move. It returns the promoted fields; a second call on the same batch
// returns none.
func Promote(parent isad.Record, children []isad.Record) []isad.Field {
	if len(children) == 0 {
		return nil
	}
	var promoted []isad.Field
	for _, f := range isad.Schema {
		if f.IsEvent() || f == isad.LegacyID || f == isad.ParentID ||
			f == isad.DigitalObjectPath || f == isad.DigitalObjectChecksum {
			continue
		}
		value, ok := commonValue(children, f)
		if !ok {
			continue
		}
		if current := parent.Get(f); current != "" && current != value {
			continue
		}
		parent.Set(f, value)
		for _, child := range children {
			child.Delete(f)
		}
		promoted = append(promoted, f)
	}
	return promoted
}

func commonValue(records []isad.Record, f isad.Field) (string, bool) {
	value := records[0].Get(f)
	if value == "" {
		return "", false
	}
	for _, r := range records[1:] {
		if r.Get(f) != value {
			return "", false
		}
	}
	return value, true
}

// ContainerTitle joins the last three segments of dir with commas.
func ContainerTitle(dir string) string {
	var segments []string
	for _, s := range strings.Split(filepath.ToSlash(filepath.Clean(dir)), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return dir
	}
	if len(segments) > containerTitleSegments {
		segments = segments[len(segments)-containerTitleSegments:]
	}
	return strings.Join(segments, ", ")
}

func containerExtent(n int) string {
	if n == 1 {
		return "1 digital object"
	}
	return fmt.Sprintf("%d digital objects", n)
}

func nextLegacyID(children []isad.Record) int {
	highest := len(children)
	for _, child := range children {
		if n, err := strconv.Atoi(child.Get(isad.LegacyID)); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// containerEvents summarizes the children's events as one creation event:
// the shared date expression when all children agree, otherwise NULL, with
// the earliest and latest dates as the range and the union of actors.
func containerEvents(children []isad.Record) (dates, start, end, actors string) {
	dates = isad.NullValue
	if common, ok := commonValue(children, isad.EventDates); ok {
		dates = common
	}

	type dated struct {
		raw string
		at  time.Time
	}
	var tokens []dated
	var actorList []string
	for _, child := range children {
		for _, token := range isad.SplitList(child.Get(isad.EventDates)) {
			if at, ok := parseEventDate(token); ok {
				tokens = append(tokens, dated{raw: token, at: at})
			}
		}
		for _, actor := range isad.SplitList(child.Get(isad.EventActors)) {
			if actor != isad.NullValue {
				actorList = appendUnique(actorList, actor)
			}
		}
	}

	start, end = isad.NullValue, isad.NullValue
	if len(tokens) > 0 {
		slices.SortStableFunc(tokens, func(a, b dated) int {
			if c := a.at.Compare(b.at); c != 0 {
				return c
			}
			return strings.Compare(a.raw, b.raw)
		})
		start, end = tokens[0].raw, tokens[len(tokens)-1].raw
	}

	actors = isad.NullValue
	if len(actorList) > 0 {
		actors = isad.JoinList(actorList)
	}
	return dates, start, end, actors
}

var eventDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

func parseEventDate(token string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if at, err := time.Parse(layout, token); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}

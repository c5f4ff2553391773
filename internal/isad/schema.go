package isad

import "strings"

// Field names one column of the information-object import template.
type Field string

const (
	LegacyID                    Field = "legacyId"
	ParentID                    Field = "parentId"
	QubitParentSlug             Field = "qubitParentSlug"
	Identifier                  Field = "identifier"
	AccessionNumber             Field = "accessionNumber"
	Title                       Field = "title"
	LevelOfDescription          Field = "levelOfDescription"
	ExtentAndMedium             Field = "extentAndMedium"
	Repository                  Field = "repository"
	ArchivalHistory             Field = "archivalHistory"
	Acquisition                 Field = "acquisition"
	ScopeAndContent             Field = "scopeAndContent"
	Appraisal                   Field = "appraisal"
	Accruals                    Field = "accruals"
	Arrangement                 Field = "arrangement"
	AccessConditions            Field = "accessConditions"
	ReproductionConditions      Field = "reproductionConditions"
	Language                    Field = "language"
	Script                      Field = "script"
	LanguageNote                Field = "languageNote"
	PhysicalCharacteristics     Field = "physicalCharacteristics"
	FindingAids                 Field = "findingAids"
	LocationOfOriginals         Field = "locationOfOriginals"
	LocationOfCopies            Field = "locationOfCopies"
	RelatedUnitsOfDescription   Field = "relatedUnitsOfDescription"
	PublicationNote             Field = "publicationNote"
	DigitalObjectPath           Field = "digitalObjectPath"
	DigitalObjectURI            Field = "digitalObjectURI"
	DigitalObjectChecksum       Field = "digitalObjectChecksum"
	GeneralNote                 Field = "generalNote"
	SubjectAccessPoints         Field = "subjectAccessPoints"
	PlaceAccessPoints           Field = "placeAccessPoints"
	NameAccessPoints            Field = "nameAccessPoints"
	GenreAccessPoints           Field = "genreAccessPoints"
	DescriptionIdentifier       Field = "descriptionIdentifier"
	InstitutionIdentifier       Field = "institutionIdentifier"
	Rules                       Field = "rules"
	DescriptionStatus           Field = "descriptionStatus"
	LevelOfDetail               Field = "levelOfDetail"
	RevisionHistory             Field = "revisionHistory"
	LanguageOfDescription       Field = "languageOfDescription"
	ScriptOfDescription         Field = "scriptOfDescription"
	Sources                     Field = "sources"
	ArchivistNote               Field = "archivistNote"
	PublicationStatus           Field = "publicationStatus"
	PhysicalObjectName          Field = "physicalObjectName"
	PhysicalObjectLocation      Field = "physicalObjectLocation"
	PhysicalObjectType          Field = "physicalObjectType"
	AlternativeIdentifiers      Field = "alternativeIdentifiers"
	AlternativeIdentifierLabels Field = "alternativeIdentifierLabels"
	EventDates                  Field = "eventDates"
	EventTypes                  Field = "eventTypes"
	EventStartDates             Field = "eventStartDates"
	EventEndDates               Field = "eventEndDates"
	EventActors                 Field = "eventActors"
	EventActorHistories         Field = "eventActorHistories"
	Culture                     Field = "culture"
)

// Schema lists every field in import column order.
var Schema = []Field{
	LegacyID, ParentID, QubitParentSlug, Identifier, AccessionNumber, Title,
	LevelOfDescription, ExtentAndMedium, Repository, ArchivalHistory, Acquisition,
	ScopeAndContent, Appraisal, Accruals, Arrangement, AccessConditions,
	ReproductionConditions, Language, Script, LanguageNote, PhysicalCharacteristics,
	FindingAids, LocationOfOriginals, LocationOfCopies, RelatedUnitsOfDescription,
	PublicationNote, DigitalObjectPath, DigitalObjectURI, DigitalObjectChecksum,
	GeneralNote, SubjectAccessPoints, PlaceAccessPoints, NameAccessPoints,
	GenreAccessPoints, DescriptionIdentifier, InstitutionIdentifier, Rules,
	DescriptionStatus, LevelOfDetail, RevisionHistory, LanguageOfDescription,
	ScriptOfDescription, Sources, ArchivistNote, PublicationStatus,
	PhysicalObjectName, PhysicalObjectLocation, PhysicalObjectType,
	AlternativeIdentifiers, AlternativeIdentifierLabels, EventDates, EventTypes,
	EventStartDates, EventEndDates, EventActors, EventActorHistories, Culture,
}

// AccessPointFields are the pipe-separated access point columns.
var AccessPointFields = []Field{SubjectAccessPoints, PlaceAccessPoints, NameAccessPoints, GenreAccessPoints}

// IsEvent reports whether f belongs to the event series columns.
func (f Field) IsEvent() bool {
	return strings.HasPrefix(string(f), "event")
}

// Known reports whether f is part of Schema.
func (f Field) Known() bool {
	_, ok := schemaIndex[f]
	return ok
}

var schemaIndex = func() map[Field]int {
	idx := make(map[Field]int, len(Schema))
	for i, f := range Schema {
		idx[f] = i
	}
	return idx
}()

// Level values used by the pipeline.
const (
	LevelItem = "Item"
	LevelFile = "File"
)

// Separators for multi-valued columns.
const (
	ListSeparator   = "|"
	NullValue       = "NULL"
	CreditSeparator = " & "
)

// JoinList pipe-joins values.
func JoinList(values []string) string {
	return strings.Join(values, ListSeparator)
}

// SplitList splits a pipe-joined column, dropping empty entries.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ListSeparator)
	out := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

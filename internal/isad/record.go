package isad

import "maps"

// Record is one information object keyed by field.
type Record map[Field]string

// NewRecord returns a record with every schema field present and empty.
func NewRecord() Record {
	r := make(Record, len(Schema))
	for _, f := range Schema {
		r[f] = ""
	}
	return r
}

// Get returns the value of f, or "" when the field is absent.
func (r Record) Get(f Field) string {
	return r[f]
}

// Has reports whether f is present, even if empty.
func (r Record) Has(f Field) bool {
	_, ok := r[f]
	return ok
}

// Set assigns f.
func (r Record) Set(f Field, value string) {
	r[f] = value
}

// Delete removes f.
func (r Record) Delete(f Field) {
	delete(r, f)
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// IsContainer reports whether r describes a folder-level record.
func (r Record) IsContainer() bool {
	return r[LevelOfDescription] == LevelFile
}

// CloneAll copies every record in records.
func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

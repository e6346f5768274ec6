// Package models defines the record types held by the project's data
// documents and their default-value factories.
package models

// Record is one entry of a record-array document. Records are heterogeneous:
// only the integer "id" and string "name" fields are guaranteed for generic
// handling, everything else belongs to the record's kind.
type Record map[string]any

// ID returns the record's id field. JSON decoding yields float64 for numbers,
// so both in-memory and decoded records are handled.
func (r Record) ID() int {
	switch v := r["id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Name returns the record's name field, or "" when absent or not a string.
func (r Record) Name() string {
	if s, ok := r["name"].(string); ok {
		return s
	}
	return ""
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new record with partial overlaid on r. The merge is
// shallow: fields present in partial replace r's fields completely, fields
// absent from partial are left as they were. Neither input is modified.
func (r Record) Merge(partial Record) Record {
	out := r.Clone()
	for k, v := range partial {
		out[k] = v
	}
	return out
}

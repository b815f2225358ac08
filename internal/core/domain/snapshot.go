package domain

// Snapshot is the complete {fields, records} state of every module.
// It is the one document written to the durable slot.
type Snapshot struct {
	Records map[string][]Record          `json:"records"`
	Fields  map[string][]FieldDefinition `json:"fields"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() Snapshot {
	return Snapshot{
		Records: make(map[string][]Record),
		Fields:  make(map[string][]FieldDefinition),
	}
}

// Clone returns a deep copy so the copy can be encoded off the writer's
// goroutine without sharing mutable state.
func (s Snapshot) Clone() Snapshot {
	out := NewSnapshot()
	for id, recs := range s.Records {
		cloned := make([]Record, len(recs))
		for i, r := range recs {
			cloned[i] = r.Clone()
		}
		out.Records[id] = cloned
	}
	for id, fields := range s.Fields {
		cloned := make([]FieldDefinition, len(fields))
		for i, f := range fields {
			cloned[i] = f.Clone()
		}
		out.Fields[id] = cloned
	}
	return out
}

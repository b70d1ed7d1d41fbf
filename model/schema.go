package model

import "fmt"

// Schema is the ordered field list of a form. Steps are not stored: they
// are derived from the position of step_divider fields.
type Schema []Field

// Clone deep-copies the schema, options included.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for i, f := range s {
		out[i] = f.Clone()
	}
	return out
}

// IndexOf returns the position of the field with the given id, or -1.
func (s Schema) IndexOf(id string) int {
	for i, f := range s {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func (s Schema) Find(id string) (Field, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s[i], true
	}
	return Field{}, false
}

func (s Schema) Dividers() int {
	n := 0
	for _, f := range s {
		if f.IsDivider() {
			n++
		}
	}
	return n
}

// Repair returns a copy of s where every checkbox field has at least one
// option and options only appear on checkbox fields.
func (s Schema) Repair() Schema {
	out := s.Clone()
	for i := range out {
		switch {
		case out[i].Kind == KindCheckbox && len(out[i].Options) == 0:
			out[i].Options = []CheckboxOption{NewOption(DefaultOptionLabel)}
		case out[i].Kind != KindCheckbox:
			out[i].Options = nil
		}
	}
	return out
}

// Check rejects unknown kinds, missing ids and duplicate ids.
func (s Schema) Check() error {
	seen := make(map[string]bool, len(s))
	for i, f := range s {
		if !f.Kind.Valid() {
			return &SchemaError{Op: "check", FieldID: f.ID, Msg: fmt.Sprintf("field %d: unknown kind %q", i, f.Kind)}
		}
		if f.ID == "" {
			return &SchemaError{Op: "check", Msg: fmt.Sprintf("field %d: missing id", i)}
		}
		if seen[f.ID] {
			return &SchemaError{Op: "check", FieldID: f.ID, Msg: "duplicate field id"}
		}
		seen[f.ID] = true
	}
	return nil
}

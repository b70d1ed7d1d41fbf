// Package editor holds every schema transition used while authoring a form.
// Each function takes a schema and returns a new one; the input is never
// modified. Operations naming an unknown field id are no-ops.
package editor

import (
	"fmt"

	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/steps"
)

func schemaErr(op, id, format string, args ...any) error {
	return &model.SchemaError{Op: op, FieldID: id, Msg: fmt.Sprintf(format, args...)}
}

func insertAt(s model.Schema, i int, f model.Field) model.Schema {
	out := make(model.Schema, 0, len(s)+1)
	out = append(out, s[:i]...)
	out = append(out, f)
	out = append(out, s[i:]...)
	return out
}

func removeAt(s model.Schema, i int) model.Schema {
	out := make(model.Schema, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// stepEnd is the index right after the last field of step; a step past the
// last one means the last one.
func stepEnd(s model.Schema, step int) int {
	if total := steps.Total(s); step > total {
		step = total
	}
	_, end, _ := steps.Range(s, step)
	return end
}

// InsertField places f at the end of the given step.
func InsertField(s model.Schema, f model.Field, step int) (model.Schema, error) {
	if !f.Kind.Valid() {
		return nil, schemaErr("insert", f.ID, "unknown field kind %q", f.Kind)
	}
	if f.IsDivider() {
		return nil, schemaErr("insert", f.ID, "use InsertStepDivider to add a step")
	}
	if step < 1 {
		return nil, schemaErr("insert", f.ID, "invalid step %d", step)
	}
	if f.ID == "" {
		f.ID = model.NewID()
	}
	if s.IndexOf(f.ID) >= 0 {
		return nil, schemaErr("insert", f.ID, "duplicate field id")
	}

	out := s.Clone()
	f = model.Schema{f}.Repair()[0]
	return insertAt(out, stepEnd(out, step), f), nil
}

// InsertStepDivider appends a divider, opening a new last step.
func InsertStepDivider(s model.Schema) model.Schema {
	return append(s.Clone(), model.NewStepDivider())
}

// DuplicateField appends a copy of the field, with a new id, at the end of
// the schema. The copy does not necessarily land in the original's step.
func DuplicateField(s model.Schema, id string) (model.Schema, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s.Clone(), nil
	}
	if s[i].IsDivider() {
		return nil, schemaErr("duplicate", id, "step dividers cannot be duplicated")
	}

	dup := s[i].Clone()
	dup.ID = model.NewID()
	return append(s.Clone(), dup), nil
}

// Deletion describes what DeleteField removed.
type Deletion struct {
	Cascade bool
	Removed []model.Field
}

// DeleteField removes a field. Deleting a step divider also removes every
// field up to the next divider or the end of the schema.
func DeleteField(s model.Schema, id string) (model.Schema, Deletion) {
	i := s.IndexOf(id)
	if i < 0 {
		return s.Clone(), Deletion{}
	}
	if !s[i].IsDivider() {
		return removeAt(s.Clone(), i), Deletion{Removed: []model.Field{s[i].Clone()}}
	}

	end := len(s)
	for j := i + 1; j < len(s); j++ {
		if s[j].IsDivider() {
			end = j
			break
		}
	}
	out := s.Clone()
	removed := append(model.Schema(nil), out[i:end]...)
	out = append(out[:i:i], out[end:]...)
	return out, Deletion{Cascade: true, Removed: removed}
}

// MoveFieldToStep moves a field to the end of the target step. A target of
// Total+1 opens a new step holding only the moved field.
func MoveFieldToStep(s model.Schema, id string, step int) (model.Schema, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s.Clone(), nil
	}
	f := s[i].Clone()
	if f.IsDivider() {
		return nil, schemaErr("move", id, "step dividers cannot be moved between steps")
	}
	total := steps.Total(s)
	if step < 1 || step > total+1 {
		return nil, schemaErr("move", id, "invalid step %d (have %d)", step, total)
	}

	// Remove first, then compute the target on the shortened list so the
	// insertion index never needs shifting.
	rest := removeAt(s.Clone(), i)
	if step == total+1 {
		return append(rest, model.NewStepDivider(), f), nil
	}
	return insertAt(rest, stepEnd(rest, step), f), nil
}

// MoveField moves a field to a flat position; step membership follows from
// where it lands. Out-of-range positions are clamped.
func MoveField(s model.Schema, id string, index int) (model.Schema, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s.Clone(), nil
	}
	f := s[i].Clone()
	rest := removeAt(s.Clone(), i)
	if index < 0 {
		index = 0
	}
	if index > len(rest) {
		index = len(rest)
	}
	return insertAt(rest, index, f), nil
}

type FieldPatch struct {
	Label    *string `json:"label,omitempty"`
	Required *bool   `json:"required,omitempty"`
}

func UpdateField(s model.Schema, id string, p FieldPatch) (model.Schema, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s.Clone(), nil
	}
	out := s.Clone()
	if p.Required != nil {
		if !out[i].Kind.CollectsData() {
			return nil, schemaErr("update", id, "%s fields cannot be required", out[i].Kind)
		}
		out[i].Required = *p.Required
	}
	if p.Label != nil {
		out[i].Label = *p.Label
	}
	return out, nil
}

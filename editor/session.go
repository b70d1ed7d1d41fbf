package editor

import (
	"errors"

	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/steps"
)

var ErrCascadeUnconfirmed = errors.New("deleting a step divider removes its fields and must be confirmed")

// Session is the single-writer editing state of a form: the schema plus the
// step new fields go into.
type Session struct {
	Schema     model.Schema
	ActiveStep int
}

func NewSession(s model.Schema) *Session {
	return &Session{Schema: s.Clone(), ActiveStep: 1}
}

// SetStep points the session at step, clamped to the existing steps.
func (ss *Session) SetStep(step int) {
	total := steps.Total(ss.Schema)
	switch {
	case step < 1:
		step = 1
	case step > total:
		step = total
	}
	ss.ActiveStep = step
}

// Add creates a field of the given kind in the active step. Adding a
// divider opens a new step instead.
func (ss *Session) Add(kind model.Kind) (model.Field, error) {
	f, err := model.NewField(kind)
	if err != nil {
		return model.Field{}, err
	}
	if f.IsDivider() {
		ss.AddStep()
		return ss.Schema[len(ss.Schema)-1], nil
	}
	out, err := InsertField(ss.Schema, f, ss.ActiveStep)
	if err != nil {
		return model.Field{}, err
	}
	ss.Schema = out
	return f, nil
}

// AddStep appends a divider and advances the active step by one.
func (ss *Session) AddStep() {
	ss.Schema = InsertStepDivider(ss.Schema)
	ss.SetStep(ss.ActiveStep + 1)
}

// Delete removes a field. A divider takes its step's fields with it and is
// refused unless confirm is set.
func (ss *Session) Delete(id string, confirm bool) (Deletion, error) {
	if f, ok := ss.Schema.Find(id); ok && f.IsDivider() && !confirm {
		return Deletion{}, ErrCascadeUnconfirmed
	}
	out, d := DeleteField(ss.Schema, id)
	ss.Schema = out
	ss.SetStep(ss.ActiveStep)
	return d, nil
}

func (ss *Session) Duplicate(id string) error {
	out, err := DuplicateField(ss.Schema, id)
	if err != nil {
		return err
	}
	ss.Schema = out
	return nil
}

func (ss *Session) MoveToStep(id string, step int) error {
	out, err := MoveFieldToStep(ss.Schema, id, step)
	if err != nil {
		return err
	}
	ss.Schema = out
	return nil
}

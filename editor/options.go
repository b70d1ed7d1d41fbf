package editor

import (
	"fmt"

	"github.com/mbolis/quick-form/model"
)

// OptionOp is one change to the option list of a checkbox field.
type OptionOp interface {
	apply(f *model.Field) error
}

// AddOption appends an option. An empty label gets a numbered default.
type AddOption struct {
	Label string
}

type RenameOption struct {
	ID    string
	Label string
}

// RemoveOption deletes an option; the last option of a field cannot be removed.
type RemoveOption struct {
	ID string
}

func (op AddOption) apply(f *model.Field) error {
	label := op.Label
	if label == "" {
		label = fmt.Sprintf("Option %d", len(f.Options)+1)
	}
	f.Options = append(f.Options, model.NewOption(label))
	return nil
}

func (op RenameOption) apply(f *model.Field) error {
	for i := range f.Options {
		if f.Options[i].ID == op.ID {
			f.Options[i].Label = op.Label
		}
	}
	return nil
}

func (op RemoveOption) apply(f *model.Field) error {
	i := -1
	for j, o := range f.Options {
		if o.ID == op.ID {
			i = j
		}
	}
	if i < 0 {
		return nil
	}
	if len(f.Options) == 1 {
		return schemaErr("options", f.ID, "a checkbox field needs at least one option")
	}
	f.Options = append(f.Options[:i:i], f.Options[i+1:]...)
	return nil
}

func UpdateCheckboxOptions(s model.Schema, id string, op OptionOp) (model.Schema, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return s.Clone(), nil
	}
	if s[i].Kind != model.KindCheckbox {
		return nil, schemaErr("options", id, "%s fields have no options", s[i].Kind)
	}
	out := s.Clone()
	if err := op.apply(&out[i]); err != nil {
		return nil, err
	}
	return out, nil
}

package model

import (
	"fmt"

	"github.com/gofrs/uuid"
)

type Kind string

const (
	KindHeadline    Kind = "headline"
	KindText        Kind = "text"
	KindTextarea    Kind = "textarea"
	KindEmail       Kind = "email"
	KindPhone       Kind = "phone"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindLink        Kind = "link"
	KindNumber      Kind = "number"
	KindCheckbox    Kind = "checkbox"
	KindStepDivider Kind = "step_divider"
)

// Kinds lists every field kind in declaration order.
var Kinds = []Kind{
	KindHeadline, KindText, KindTextarea, KindEmail, KindPhone, KindDate,
	KindTime, KindLink, KindNumber, KindCheckbox, KindStepDivider,
}

const (
	DefaultOptionLabel  = "Option 1"
	DefaultDividerLabel = "Next Step"
)

func (k Kind) Valid() bool {
	switch k {
	case KindHeadline, KindText, KindTextarea, KindEmail, KindPhone, KindDate,
		KindTime, KindLink, KindNumber, KindCheckbox, KindStepDivider:
		return true
	}
	return false
}

// CollectsData reports whether fields of this kind receive an answer.
// Headlines and step dividers are display-only.
func (k Kind) CollectsData() bool {
	switch k {
	case KindHeadline, KindStepDivider:
		return false
	case KindText, KindTextarea, KindEmail, KindPhone, KindDate,
		KindTime, KindLink, KindNumber, KindCheckbox:
		return true
	}
	return false
}

type CheckboxOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Field struct {
	ID       string           `json:"id"`
	Kind     Kind             `json:"kind"`
	Label    string           `json:"label"`
	Required bool             `json:"required"`
	Options  []CheckboxOption `json:"checkboxOptions,omitempty"`
}

func (f Field) IsDivider() bool {
	return f.Kind == KindStepDivider
}

// Clone returns a copy of f that shares no memory with it.
func (f Field) Clone() Field {
	if f.Options != nil {
		f.Options = append([]CheckboxOption(nil), f.Options...)
	}
	return f
}

func (f Field) Option(id string) (CheckboxOption, bool) {
	for _, o := range f.Options {
		if o.ID == id {
			return o, true
		}
	}
	return CheckboxOption{}, false
}

// NewID returns a random identifier for fields and options.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func NewOption(label string) CheckboxOption {
	return CheckboxOption{ID: NewID(), Label: label}
}

// NewField returns a field of the given kind with its defaults set.
func NewField(kind Kind) (Field, error) {
	switch kind {
	case KindStepDivider:
		return NewStepDivider(), nil
	case KindCheckbox:
		return Field{
			ID:      NewID(),
			Kind:    kind,
			Options: []CheckboxOption{NewOption(DefaultOptionLabel)},
		}, nil
	case KindHeadline, KindText, KindTextarea, KindEmail, KindPhone, KindDate,
		KindTime, KindLink, KindNumber:
		return Field{ID: NewID(), Kind: kind}, nil
	}
	return Field{}, &SchemaError{Op: "new_field", Msg: fmt.Sprintf("unknown field kind %q", kind)}
}

func NewStepDivider() Field {
	return Field{
		ID:    NewID(),
		Kind:  KindStepDivider,
		Label: DefaultDividerLabel,
	}
}

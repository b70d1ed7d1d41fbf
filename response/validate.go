package response

import (
	"strings"

	"github.com/mbolis/quick-form/model"
)

// ValidationError lists every required field left unanswered.
type ValidationError struct {
	Fields []model.Field
}

func (e *ValidationError) Error() string {
	labels := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		labels[i] = f.Label
	}
	return "missing required fields: " + strings.Join(labels, ", ")
}

// Validate returns the required fields without a present answer, in schema
// order. An empty result means the response can be formatted and stored.
func Validate(s model.Schema, r model.Response) []model.Field {
	var missing []model.Field
	for _, f := range s {
		if !f.Kind.CollectsData() || !f.Required {
			continue
		}
		if !r[f.ID].Present(f.Kind) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Check is Validate returning a *ValidationError, or nil.
func Check(s model.Schema, r model.Response) error {
	if missing := Validate(s, r); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

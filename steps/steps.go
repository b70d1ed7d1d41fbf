// Package steps derives the pages of a form from the position of its
// step_divider fields.
package steps

import "github.com/mbolis/quick-form/model"

// Boundaries returns 0 followed by the index of every divider, in order.
//
// The result is strictly increasing except when the schema opens with a
// divider: then it starts [0, 0] and step 1 is empty. Session.AddStep on an
// empty form produces that shape.
func Boundaries(s model.Schema) []int {
	b := []int{0}
	for i, f := range s {
		if f.IsDivider() {
			b = append(b, i)
		}
	}
	return b
}

func Total(s model.Schema) int {
	return len(Boundaries(s))
}

// Range returns the half-open index range [start, end) holding the fields of
// step (1-based). The divider opening the step is left out of the range.
func Range(s model.Schema, step int) (start, end int, ok bool) {
	return rangeOf(Boundaries(s), len(s), step)
}

func rangeOf(b []int, n, step int) (start, end int, ok bool) {
	if step < 1 || step > len(b) {
		return 0, 0, false
	}
	start = b[step-1]
	if step > 1 {
		start++
	}
	end = n
	if step < len(b) {
		end = b[step]
	}
	return start, end, true
}

// Fields returns the fields of the given step in schema order, or nil when
// the step does not exist. An empty step yields an empty, non-nil slice.
func Fields(s model.Schema, step int) []model.Field {
	start, end, ok := Range(s, step)
	if !ok {
		return nil
	}
	out := []model.Field{}
	for _, f := range s[start:end] {
		if !f.IsDivider() {
			out = append(out, f)
		}
	}
	return out
}

// Partition returns the fields of every step, indexed from 0.
func Partition(s model.Schema) [][]model.Field {
	b := Boundaries(s)
	out := make([][]model.Field, len(b))
	for step := 1; step <= len(b); step++ {
		start, end, _ := rangeOf(b, len(s), step)
		out[step-1] = []model.Field{}
		for _, f := range s[start:end] {
			if !f.IsDivider() {
				out[step-1] = append(out[step-1], f)
			}
		}
	}
	return out
}

// Of returns the step holding the field with the given id. A divider belongs
// to the step it opens. Returns 0 if the id is unknown.
func Of(s model.Schema, id string) int {
	step := 1
	for _, f := range s {
		if f.IsDivider() {
			step++
		}
		if f.ID == id {
			return step
		}
	}
	return 0
}

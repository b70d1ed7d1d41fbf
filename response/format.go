package response

import (
	"strings"

	"github.com/mbolis/quick-form/model"
)

// Format turns a validated response into label-keyed display strings.
//
// Output is keyed by label: when two fields share a label, the later one in
// schema order overwrites the earlier one. DuplicateLabels reports those.
func Format(s model.Schema, r model.Response) model.FormattedResponse {
	out := model.FormattedResponse{}
	for _, f := range s {
		if !f.Kind.CollectsData() {
			continue
		}
		a, ok := r[f.ID]
		if !ok || !a.Present(f.Kind) {
			continue
		}
		out[f.Label] = formatAnswer(f, a)
	}
	return out
}

func formatAnswer(f model.Field, a model.Answer) string {
	switch f.Kind {
	case model.KindCheckbox:
		return checkboxLabels(f, a.Choices)
	case model.KindDate:
		return formatDate(a.Text)
	case model.KindText, model.KindTextarea, model.KindEmail, model.KindPhone,
		model.KindTime, model.KindLink, model.KindNumber:
		return a.Text
	case model.KindHeadline, model.KindStepDivider:
	}
	return a.Text
}

// checkboxLabels joins the labels of the selected options in declaration
// order. Unknown option ids are dropped.
func checkboxLabels(f model.Field, selected []string) string {
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}
	var labels []string
	for _, o := range f.Options {
		if picked[o.ID] {
			labels = append(labels, o.Label)
		}
	}
	return strings.Join(labels, ", ")
}

// formatDate turns YYYY-MM-DD into DD/MM/YYYY, passing anything else through.
func formatDate(v string) string {
	parts := strings.Split(v, "-")
	if len(parts) != 3 {
		return v
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// DuplicateLabels returns the labels shared by more than one data field, in
// order of first appearance.
func DuplicateLabels(s model.Schema) []string {
	count := map[string]int{}
	var order []string
	for _, f := range s {
		if !f.Kind.CollectsData() {
			continue
		}
		if count[f.Label] == 0 {
			order = append(order, f.Label)
		}
		count[f.Label]++
	}
	var dups []string
	for _, l := range order {
		if count[l] > 1 {
			dups = append(dups, l)
		}
	}
	return dups
}

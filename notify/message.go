package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/mbolis/quick-form/model"
	"github.com/microcosm-cc/bluemonday"
)

var htmlTemplate = template.Must(template.New("response.html").Parse(`<html><body>
<h2>New response to {{.Form}}</h2>
<table>
{{- range .Rows}}
<tr><th align="left">{{.Label}}</th><td>{{.Value}}</td></tr>
{{- end}}
</table>
</body></html>
`))

type row struct {
	Label string
	// Value is sanitizer output, which is safe to embed as-is.
	Value template.HTML
}

type message struct {
	Subject string
	HTML    string
	Text    string
}

// orderedLabels lists the answered labels in the order their fields appear in
// the schema. Labels no field carries any more come last, sorted.
func orderedLabels(schema model.Schema, answers model.FormattedResponse) []string {
	labels := make([]string, 0, len(answers))
	seen := make(map[string]bool, len(answers))
	for _, f := range schema {
		if _, ok := answers[f.Label]; ok && !seen[f.Label] {
			seen[f.Label] = true
			labels = append(labels, f.Label)
		}
	}

	var rest []string
	for label := range answers {
		if !seen[label] {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}

// render builds the notification. Respondent text in the HTML part goes
// through the sanitizer, which strips markup; everything else is escaped by
// the template.
func render(form model.Form, answers model.FormattedResponse, sanitizer *bluemonday.Policy) (message, error) {
	labels := orderedLabels(form.Schema, answers)

	rows := make([]row, len(labels))
	var text bytes.Buffer
	fmt.Fprintf(&text, "New response to %s\n\n", form.Name)
	for i, label := range labels {
		rows[i] = row{label, template.HTML(sanitizer.Sanitize(answers[label]))}
		fmt.Fprintf(&text, "%s: %s\n", label, answers[label])
	}

	var html bytes.Buffer
	err := htmlTemplate.Execute(&html, map[string]any{
		"Form": form.Name,
		"Rows": rows,
	})
	if err != nil {
		return message{}, fmt.Errorf("error during executing template %s: %v", htmlTemplate.Name(), err)
	}

	return message{
		Subject: "New response: " + form.Name,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

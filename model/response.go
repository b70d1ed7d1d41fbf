package model

import (
	"encoding/json"
	"errors"
	"strings"
)

// Answer holds the raw value for one field: Text for most kinds, Choices
// (option ids) for checkbox fields.
type Answer struct {
	Text    string
	Choices []string
}

func Text(v string) Answer {
	return Answer{Text: v}
}

func Choices(ids ...string) Answer {
	return Answer{Choices: ids}
}

// Present applies the presence rule for the given kind.
func (a Answer) Present(kind Kind) bool {
	if kind == KindCheckbox {
		return len(a.Choices) > 0
	}
	return strings.TrimSpace(a.Text) != ""
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Choices != nil {
		return json.Marshal(a.Choices)
	}
	return json.Marshal(a.Text)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = Answer{Text: text}
		return nil
	}
	var choices []string
	if err := json.Unmarshal(data, &choices); err == nil {
		if choices == nil {
			choices = []string{}
		}
		*a = Answer{Choices: choices}
		return nil
	}
	return errors.New("answer must be a string or an array of strings")
}

// Response maps field ids to raw answers.
type Response map[string]Answer

func (r Response) Set(fieldID, value string) {
	r[fieldID] = Text(value)
}

// Toggle flips the selection of a checkbox option.
func (r Response) Toggle(fieldID, optionID string) {
	a := r[fieldID]
	for i, id := range a.Choices {
		if id == optionID {
			a.Choices = append(a.Choices[:i:i], a.Choices[i+1:]...)
			r[fieldID] = a
			return
		}
	}
	a.Choices = append(a.Choices, optionID)
	r[fieldID] = a
}

// FormattedResponse maps field labels to display strings. It is persisted
// as-is and never modified afterwards.
type FormattedResponse map[string]string

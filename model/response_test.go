package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_Present(t *testing.T) {
	assert.False(t, Text("   ").Present(KindText))
	assert.True(t, Text(" a ").Present(KindText))
	assert.False(t, Choices().Present(KindCheckbox))
	assert.True(t, Choices("o1").Present(KindCheckbox))
	assert.False(t, Text("o1").Present(KindCheckbox))
}

func TestResponse_UnmarshalJSON(t *testing.T) {
	var r Response
	err := json.Unmarshal([]byte(`{"name":"Ann","color":["red","blue"],"none":[]}`), &r)
	require.NoError(t, err)

	assert.Equal(t, Text("Ann"), r["name"])
	assert.Equal(t, []string{"red", "blue"}, r["color"].Choices)
	assert.NotNil(t, r["none"].Choices)
	assert.False(t, r["none"].Present(KindCheckbox))
}

func TestResponse_UnmarshalJSON_RejectsOtherShapes(t *testing.T) {
	var r Response
	assert.Error(t, json.Unmarshal([]byte(`{"age":42}`), &r))
}

func TestResponse_Toggle(t *testing.T) {
	r := Response{}
	r.Toggle("color", "red")
	r.Toggle("color", "blue")
	assert.Equal(t, []string{"red", "blue"}, r["color"].Choices)

	r.Toggle("color", "red")
	assert.Equal(t, []string{"blue"}, r["color"].Choices)
}

func TestResponse_Set(t *testing.T) {
	r := Response{}
	r.Set("name", "Bob")

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bob"}`, string(raw))
}

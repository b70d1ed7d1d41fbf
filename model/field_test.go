package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField_Defaults(t *testing.T) {
	for _, kind := range Kinds {
		f, err := NewField(kind)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, f.Kind)
		assert.NotEmpty(t, f.ID)
		assert.False(t, f.Required)

		switch kind {
		case KindCheckbox:
			require.Len(t, f.Options, 1)
			assert.Equal(t, DefaultOptionLabel, f.Options[0].Label)
			assert.NotEmpty(t, f.Options[0].ID)
		case KindStepDivider:
			assert.Equal(t, DefaultDividerLabel, f.Label)
			assert.Nil(t, f.Options)
		default:
			assert.Empty(t, f.Label)
			assert.Nil(t, f.Options)
		}
	}
}

func TestNewField_UnknownKind(t *testing.T) {
	_, err := NewField("radio")

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "new_field", schemaErr.Op)
}

func TestNewID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestKind_CollectsData(t *testing.T) {
	assert.False(t, KindHeadline.CollectsData())
	assert.False(t, KindStepDivider.CollectsData())
	assert.False(t, Kind("bogus").CollectsData())
	assert.True(t, KindCheckbox.CollectsData())
	assert.True(t, KindDate.CollectsData())
}

func TestSchema_CloneDoesNotAlias(t *testing.T) {
	s := Schema{{ID: "c", Kind: KindCheckbox, Options: []CheckboxOption{{ID: "o1", Label: "Red"}}}}
	c := s.Clone()
	c[0].Options[0].Label = "Blue"
	c[0].Label = "changed"

	assert.Equal(t, "Red", s[0].Options[0].Label)
	assert.Empty(t, s[0].Label)
}

func TestSchema_Repair(t *testing.T) {
	s := Schema{
		{ID: "c", Kind: KindCheckbox},
		{ID: "t", Kind: KindText, Options: []CheckboxOption{{ID: "x"}}},
	}
	r := s.Repair()

	require.Len(t, r[0].Options, 1)
	assert.Equal(t, DefaultOptionLabel, r[0].Options[0].Label)
	assert.Nil(t, r[1].Options)
	assert.Nil(t, s[0].Options, "input must not change")
}

func TestSchema_Check(t *testing.T) {
	assert.NoError(t, Schema{{ID: "a", Kind: KindText}, {ID: "b", Kind: KindStepDivider}}.Check())
	assert.Error(t, Schema{{ID: "a", Kind: "bogus"}}.Check())
	assert.Error(t, Schema{{Kind: KindText}}.Check())
	assert.Error(t, Schema{{ID: "a", Kind: KindText}, {ID: "a", Kind: KindEmail}}.Check())
}

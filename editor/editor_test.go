package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(id string) model.Field {
	return model.Field{ID: id, Kind: model.KindText, Label: id}
}

func divider(id string) model.Field {
	return model.Field{ID: id, Kind: model.KindStepDivider, Label: model.DefaultDividerLabel}
}

func checkbox(id string, options ...string) model.Field {
	f := model.Field{ID: id, Kind: model.KindCheckbox, Label: id}
	for _, o := range options {
		f.Options = append(f.Options, model.CheckboxOption{ID: o, Label: o})
	}
	return f
}

func ids(s model.Schema) []string {
	out := []string{}
	for _, f := range s {
		out = append(out, f.ID)
	}
	return out
}

// a b | c | d e
func threeSteps() model.Schema {
	return model.Schema{field("a"), field("b"), divider("d1"), field("c"), divider("d2"), field("d"), field("e")}
}

func requireSchemaErr(t *testing.T, err error) {
	t.Helper()
	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestInsertField(t *testing.T) {
	cases := []struct {
		name string
		step int
		want []string
	}{
		{"first step", 1, []string{"a", "b", "x", "d1", "c", "d2", "d", "e"}},
		{"middle step", 2, []string{"a", "b", "d1", "c", "x", "d2", "d", "e"}},
		{"last step", 3, []string{"a", "b", "d1", "c", "d2", "d", "e", "x"}},
		{"past last step", 9, []string{"a", "b", "d1", "c", "d2", "d", "e", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := threeSteps()
			out, err := InsertField(in, field("x"), tc.step)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(out))
			assert.Equal(t, ids(threeSteps()), ids(in), "input must not change")
		})
	}
}

func TestInsertField_NoDividersAppends(t *testing.T) {
	out, err := InsertField(model.Schema{field("a"), field("b")}, field("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "x"}, ids(out))
}

func TestInsertField_Rejects(t *testing.T) {
	_, err := InsertField(threeSteps(), divider("dx"), 1)
	requireSchemaErr(t, err)

	_, err = InsertField(threeSteps(), field("x"), 0)
	requireSchemaErr(t, err)

	_, err = InsertField(threeSteps(), field("a"), 1)
	requireSchemaErr(t, err)

	_, err = InsertField(threeSteps(), model.Field{ID: "x", Kind: "radio"}, 1)
	requireSchemaErr(t, err)
}

func TestInsertField_RepairsEmptyCheckbox(t *testing.T) {
	out, err := InsertField(nil, checkbox("c"), 1)
	require.NoError(t, err)
	require.Len(t, out[0].Options, 1)
	assert.Equal(t, model.DefaultOptionLabel, out[0].Options[0].Label)
}

func TestInsertStepDivider(t *testing.T) {
	in := model.Schema{field("a")}
	out := InsertStepDivider(in)

	require.Len(t, out, 2)
	assert.True(t, out[1].IsDivider())
	assert.Equal(t, 2, steps.Total(out))
	assert.Len(t, in, 1)
}

func TestDuplicateField(t *testing.T) {
	in := model.Schema{checkbox("a", "red", "blue"), divider("d1"), field("b")}
	out, err := DuplicateField(in, "a")
	require.NoError(t, err)

	require.Len(t, out, 4)
	dup := out[3]
	assert.NotEqual(t, "a", dup.ID)
	assert.Equal(t, "a", dup.Label)
	assert.Equal(t, 2, steps.Of(out, dup.ID), "copies go to the end of the schema")

	dup.Options[0].Label = "green"
	assert.Equal(t, "red", out[0].Options[0].Label)
}

func TestDuplicateField_Divider(t *testing.T) {
	_, err := DuplicateField(threeSteps(), "d1")
	requireSchemaErr(t, err)
}

func TestDeleteField_Regular(t *testing.T) {
	out, d := DeleteField(threeSteps(), "c")

	assert.Equal(t, []string{"a", "b", "d1", "d2", "d", "e"}, ids(out))
	assert.False(t, d.Cascade)
	assert.Equal(t, []string{"c"}, ids(d.Removed))
	assert.Equal(t, 3, steps.Total(out), "the emptied step still exists")
}

func TestDeleteField_DividerCascades(t *testing.T) {
	cases := []struct {
		id      string
		want    []string
		removed []string
	}{
		{"d1", []string{"a", "b", "d2", "d", "e"}, []string{"d1", "c"}},
		{"d2", []string{"a", "b", "d1", "c"}, []string{"d2", "d", "e"}},
	}
	for _, tc := range cases {
		in := threeSteps()
		out, d := DeleteField(in, tc.id)

		assert.Equal(t, tc.want, ids(out))
		assert.True(t, d.Cascade)
		assert.Equal(t, tc.removed, ids(d.Removed))
		assert.Equal(t, steps.Total(in)-1, steps.Total(out))
	}
}

func TestMoveFieldToStep(t *testing.T) {
	cases := []struct {
		name string
		id   string
		step int
		want []string
	}{
		{"forward", "a", 2, []string{"b", "d1", "c", "a", "d2", "d", "e"}},
		{"to last", "b", 3, []string{"a", "d1", "c", "d2", "d", "e", "b"}},
		{"backward", "e", 1, []string{"a", "b", "e", "d1", "c", "d2", "d"}},
		{"same step goes last", "a", 1, []string{"b", "a", "d1", "c", "d2", "d", "e"}},
		{"empties a step", "c", 3, []string{"a", "b", "d1", "d2", "d", "e", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := threeSteps()
			out, err := MoveFieldToStep(in, tc.id, tc.step)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(out))
			assert.Equal(t, tc.step, steps.Of(out, tc.id))
			assert.Equal(t, in.Dividers(), out.Dividers())
		})
	}
}

func TestMoveFieldToStep_Idempotent(t *testing.T) {
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		for step := 1; step <= 4; step++ {
			once, err := MoveFieldToStep(threeSteps(), id, step)
			require.NoError(t, err)
			twice, err := MoveFieldToStep(once, id, step)
			require.NoError(t, err)

			if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
				t.Fatalf("move %s to %d: mismatch (-once +twice):\n%s", id, step, diff)
			}
		}
	}
}

func TestMoveFieldToStep_NewStep(t *testing.T) {
	// Title, Name, Color | Comment
	in := model.Schema{
		{ID: "title", Kind: model.KindHeadline}, field("name"), checkbox("color", "red", "blue"),
		divider("d1"), field("comment"),
	}
	out, err := MoveFieldToStep(in, "comment", 3)
	require.NoError(t, err)

	assert.Equal(t, 3, steps.Total(out))
	assert.Equal(t, []string{"comment"}, ids(steps.Fields(out, 3)))
	assert.Empty(t, steps.Fields(out, 2))
}

func TestMoveFieldToStep_Rejects(t *testing.T) {
	_, err := MoveFieldToStep(threeSteps(), "d1", 1)
	requireSchemaErr(t, err)

	_, err = MoveFieldToStep(threeSteps(), "a", 0)
	requireSchemaErr(t, err)

	_, err = MoveFieldToStep(threeSteps(), "a", 5)
	requireSchemaErr(t, err)
}

func TestUnknownIDIsNoop(t *testing.T) {
	in := threeSteps()
	want := ids(in)

	out, err := DuplicateField(in, "nope")
	require.NoError(t, err)
	assert.Equal(t, want, ids(out))

	out, d := DeleteField(in, "nope")
	assert.Equal(t, want, ids(out))
	assert.Empty(t, d.Removed)

	out, err = MoveFieldToStep(in, "nope", 2)
	require.NoError(t, err)
	assert.Equal(t, want, ids(out))

	out, err = MoveField(in, "nope", 0)
	require.NoError(t, err)
	assert.Equal(t, want, ids(out))

	out, err = UpdateCheckboxOptions(in, "nope", RemoveOption{ID: "x"})
	require.NoError(t, err)
	assert.Equal(t, want, ids(out))

	label := "x"
	out, err = UpdateField(in, "nope", FieldPatch{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, want, ids(out))
}

func TestMoveField(t *testing.T) {
	out, err := MoveField(threeSteps(), "e", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "a", "b", "d1", "c", "d2", "d"}, ids(out))

	out, err = MoveField(threeSteps(), "a", 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d1", "c", "d2", "d", "e", "a"}, ids(out))
	assert.Equal(t, 3, steps.Of(out, "a"))
}

func TestUpdateField(t *testing.T) {
	label, required := "Your name", true
	out, err := UpdateField(threeSteps(), "a", FieldPatch{Label: &label, Required: &required})
	require.NoError(t, err)
	assert.Equal(t, "Your name", out[0].Label)
	assert.True(t, out[0].Required)

	_, err = UpdateField(threeSteps(), "d1", FieldPatch{Required: &required})
	requireSchemaErr(t, err)
}

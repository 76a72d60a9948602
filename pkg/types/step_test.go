package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepInputNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    StepInput
		count    int
		wantNum  int
		wantFail bool
	}{
		{name: "first step defaults to 1", input: StepInput{Description: "Boil water"}, count: 0, wantNum: 1},
		{name: "omitted number appends", input: StepInput{Description: "Serve"}, count: 3, wantNum: 4},
		{name: "explicit insert at front", input: StepInput{StepNumber: 1, Description: "Prep"}, count: 3, wantNum: 1},
		{name: "explicit append", input: StepInput{StepNumber: 4, Description: "Serve"}, count: 3, wantNum: 4},
		{name: "gap rejected", input: StepInput{StepNumber: 6, Description: "Serve"}, count: 3, wantFail: true},
		{name: "negative rejected", input: StepInput{StepNumber: -1, Description: "Serve"}, count: 3, wantFail: true},
		{name: "empty description rejected", input: StepInput{Description: " "}, count: 0, wantFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.Normalize(tt.count)
			if tt.wantFail {
				require.ErrorIs(t, err, ErrInvalidData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNum, got.StepNumber)
		})
	}
}

func TestStepPatchApply(t *testing.T) {
	s := Step{ID: 1, RecipeID: 1, StepNumber: 2, Description: "Whisk eggs"}

	moveTo := func(n int) *int { return &n }

	got, err := StepPatch{StepNumber: moveTo(3)}.Apply(s, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StepNumber)
	assert.Equal(t, "Whisk eggs", got.Description)

	_, err = StepPatch{StepNumber: moveTo(4)}.Apply(s, 3)
	assert.ErrorIs(t, err, ErrInvalidData)

	blank := ""
	_, err = StepPatch{Description: &blank}.Apply(s, 3)
	assert.ErrorIs(t, err, ErrInvalidData)
}

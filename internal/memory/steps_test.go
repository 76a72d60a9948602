package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// stepOrder returns the descriptions of the recipe's steps in number order
// and checks that the numbers are exactly 1..N.
func stepOrder(t *testing.T, s *Store, recipeID int64) []string {
	t.Helper()
	steps, err := s.GetRecipeSteps(recipeID)
	require.NoError(t, err)
	out := make([]string, 0, len(steps))
	for i, st := range steps {
		require.Equal(t, i+1, st.StepNumber, "steps must be numbered 1..N")
		out = append(out, st.Description)
	}
	return out
}

func addSteps(t *testing.T, s *Store, recipeID int64, descriptions ...string) []types.Step {
	t.Helper()
	out := make([]types.Step, 0, len(descriptions))
	for _, desc := range descriptions {
		st, err := s.AddStepToRecipe(recipeID, types.StepInput{Description: desc})
		require.NoError(t, err)
		out = append(out, st)
	}
	return out
}

func TestAddStepDefaultsToNextNumber(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})

	steps := addSteps(t, s, r.ID, "Boil", "Cook", "Drain")
	assert.Equal(t, 1, steps[0].StepNumber)
	assert.Equal(t, 2, steps[1].StepNumber)
	assert.Equal(t, 3, steps[2].StepNumber)
}

func TestAddStepAtPositionShiftsLaterSteps(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})
	addSteps(t, s, r.ID, "Boil", "Drain")

	_, err := s.AddStepToRecipe(r.ID, types.StepInput{StepNumber: 2, Description: "Cook"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Boil", "Cook", "Drain"}, stepOrder(t, s, r.ID))

	_, err = s.AddStepToRecipe(r.ID, types.StepInput{StepNumber: 9, Description: "Serve"})
	require.ErrorIs(t, err, types.ErrInvalidData)
	assert.Equal(t, []string{"Boil", "Cook", "Drain"}, stepOrder(t, s, r.ID))
}

func TestAddStepToMissingRecipe(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddStepToRecipe(5, types.StepInput{Description: "Boil"})
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
}

func TestDeleteStepRenumbers(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})
	steps := addSteps(t, s, r.ID, "one", "two", "three")

	removed, err := s.DeleteStep(steps[1].ID)
	require.NoError(t, err)
	require.True(t, removed)

	got, err := s.GetRecipeSteps(r.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, steps[2].ID, got[1].ID)
	assert.Equal(t, 2, got[1].StepNumber, "former step 3 becomes step 2")
}

func TestStepContiguityUnderMixedOperations(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})
	other := mustRecipe(t, s, types.RecipeInput{Name: "Other"})
	steps := addSteps(t, s, r.ID, "a", "b", "c", "d", "e")
	addSteps(t, s, other.ID, "x", "y")

	_, err := s.DeleteStep(steps[0].ID)
	require.NoError(t, err)
	_, err = s.AddStepToRecipe(r.ID, types.StepInput{StepNumber: 1, Description: "f"})
	require.NoError(t, err)
	_, err = s.DeleteStep(steps[4].ID)
	require.NoError(t, err)
	_, err = s.DeleteStep(steps[2].ID)
	require.NoError(t, err)
	addSteps(t, s, r.ID, "g")

	assert.Equal(t, []string{"f", "b", "d", "g"}, stepOrder(t, s, r.ID))
	assert.Equal(t, []string{"x", "y"}, stepOrder(t, s, other.ID), "other recipes are untouched")
}

func TestUpdateStepMoves(t *testing.T) {
	tests := []struct {
		name string
		move int // index of the step to move
		to   int
		want []string
	}{
		{name: "move down", move: 0, to: 3, want: []string{"b", "c", "a", "d"}},
		{name: "move up", move: 3, to: 1, want: []string{"d", "a", "b", "c"}},
		{name: "move to same place", move: 1, to: 2, want: []string{"a", "b", "c", "d"}},
		{name: "move to end", move: 1, to: 4, want: []string{"a", "c", "d", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})
			steps := addSteps(t, s, r.ID, "a", "b", "c", "d")

			got, err := s.UpdateStep(steps[tt.move].ID, types.StepPatch{StepNumber: &tt.to})
			require.NoError(t, err)
			assert.Equal(t, tt.to, got.StepNumber)
			assert.Equal(t, tt.want, stepOrder(t, s, r.ID))
		})
	}
}

func TestUpdateStepRejectsOutOfRange(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})
	steps := addSteps(t, s, r.ID, "a", "b")

	n := 3
	_, err := s.UpdateStep(steps[0].ID, types.StepPatch{StepNumber: &n})
	require.ErrorIs(t, err, types.ErrInvalidData)
	assert.Equal(t, []string{"a", "b"}, stepOrder(t, s, r.ID))

	desc := "A"
	got, err := s.UpdateStep(steps[0].ID, types.StepPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "A", got.Description)
	assert.Equal(t, 1, got.StepNumber)
}

package memory

import (
	"fmt"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// GetRecipeSteps returns the recipe's steps ordered by step number.
func (s *Store) GetRecipeSteps(recipeID int64) ([]types.Step, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return nil, fmt.Errorf("listing steps of recipe %d: %w", recipeID, types.ErrRecipeNotFound)
	}
	steps := s.stepsOf(recipeID)
	if steps == nil {
		steps = []types.Step{}
	}
	return steps, nil
}

// AddStepToRecipe inserts a step. Without a step number the step is
// appended; with one, the steps at and after that position move down.
func (s *Store) AddStepToRecipe(recipeID int64, in types.StepInput) (types.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[recipeID]; !ok {
		return types.Step{}, fmt.Errorf("adding step to recipe %d: %w", recipeID, types.ErrRecipeNotFound)
	}
	siblings := s.stepsOf(recipeID)
	in, err := in.Normalize(len(siblings))
	if err != nil {
		return types.Step{}, err
	}

	for _, st := range siblings {
		if st.StepNumber >= in.StepNumber {
			st.StepNumber++
			s.steps[st.ID] = st
		}
	}
	s.seq.Step++
	st := types.Step{
		ID:          s.seq.Step,
		RecipeID:    recipeID,
		StepNumber:  in.StepNumber,
		Description: in.Description,
	}
	s.steps[st.ID] = st
	return st, nil
}

// UpdateStep merges p into the step. A new step number moves the step and
// shifts the steps between its old and new position by one.
func (s *Store) UpdateStep(id int64, p types.StepPatch) (types.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.steps[id]
	if !ok {
		return types.Step{}, fmt.Errorf("updating step %d: %w", id, types.ErrStepNotFound)
	}
	siblings := s.stepsOf(cur.RecipeID)
	next, err := p.Apply(cur, len(siblings))
	if err != nil {
		return types.Step{}, err
	}

	from, to := cur.StepNumber, next.StepNumber
	for _, st := range siblings {
		switch {
		case st.ID == id:
		case to < from && st.StepNumber >= to && st.StepNumber < from:
			st.StepNumber++
			s.steps[st.ID] = st
		case to > from && st.StepNumber > from && st.StepNumber <= to:
			st.StepNumber--
			s.steps[st.ID] = st
		}
	}
	s.steps[id] = next
	return next, nil
}

// DeleteStep removes the step and renumbers the later steps of its recipe
// down by one.
func (s *Store) DeleteStep(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.steps[id]
	if !ok {
		return false, nil
	}
	delete(s.steps, id)
	for _, st := range s.stepsOf(cur.RecipeID) {
		if st.StepNumber > cur.StepNumber {
			st.StepNumber--
			s.steps[st.ID] = st
		}
	}
	return true, nil
}

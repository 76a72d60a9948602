package types

import "strings"

// Step is one ordered instruction of a recipe. Step numbers within a recipe
// are always 1..N with no gaps.
type Step struct {
	ID          int64  `json:"id"`
	RecipeID    int64  `json:"recipeId"`
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
}

// Validate checks a stored step's number and description.
func (s Step) Validate() error {
	if s.StepNumber < 1 {
		return invalid("stepNumber", "must be at least 1")
	}
	if strings.TrimSpace(s.Description) == "" {
		return invalid("description", "must not be empty")
	}
	return nil
}

// StepInput carries the fields of a new step. A zero StepNumber appends the
// step after the last one.
type StepInput struct {
	StepNumber  int    `json:"stepNumber,omitempty"`
	Description string `json:"description"`
}

// Normalize validates the input against a recipe that currently has count
// steps and returns it with the description trimmed and the step number
// resolved.
func (in StepInput) Normalize(count int) (StepInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return in, invalid("description", "must not be empty")
	}
	if in.StepNumber == 0 {
		in.StepNumber = count + 1
	}
	if in.StepNumber < 1 || in.StepNumber > count+1 {
		return in, invalid("stepNumber", "must be between 1 and %d", count+1)
	}
	return in, nil
}

// StepPatch is a partial update. A new StepNumber moves the step within its
// recipe. A step cannot be moved to another recipe.
type StepPatch struct {
	StepNumber  *int    `json:"stepNumber"`
	Description *string `json:"description"`
}

// Apply merges the patch into s for a recipe with count steps and validates
// the result.
func (p StepPatch) Apply(s Step, count int) (Step, error) {
	out := s
	if p.Description != nil {
		out.Description = strings.TrimSpace(*p.Description)
		if out.Description == "" {
			return s, invalid("description", "must not be empty")
		}
	}
	if p.StepNumber != nil {
		n := *p.StepNumber
		if n < 1 || n > count {
			return s, invalid("stepNumber", "must be between 1 and %d", count)
		}
		out.StepNumber = n
	}
	return out, nil
}

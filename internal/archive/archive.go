// Package archive exports a store snapshot as a bundle of JSONL files and
// imports it back. Bundles are written to a Sink: a local directory or an
// S3 bucket.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Bundle file names.
const (
	IngredientsFile       = "ingredients.jsonl"
	RecipesFile           = "recipes.jsonl"
	RecipeIngredientsFile = "recipe_ingredients.jsonl"
	StepsFile             = "steps.jsonl"
	SequencesFile         = "sequences.jsonl"
)

// Sink stores named bundle files. Read returns an error wrapping
// fs.ErrNotExist for a missing file.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
}

// Export writes snap to sink, one file per collection.
func Export(ctx context.Context, sink Sink, snap types.Snapshot) error {
	files := []struct {
		name   string
		encode func() ([]byte, error)
	}{
		{IngredientsFile, func() ([]byte, error) { return encodeJSONL(snap.Ingredients) }},
		{RecipesFile, func() ([]byte, error) { return encodeJSONL(snap.Recipes) }},
		{RecipeIngredientsFile, func() ([]byte, error) { return encodeJSONL(snap.RecipeIngredients) }},
		{StepsFile, func() ([]byte, error) { return encodeJSONL(snap.Steps) }},
		{SequencesFile, func() ([]byte, error) { return encodeJSONL([]types.Sequences{snap.Sequences}) }},
	}
	for _, f := range files {
		data, err := f.encode()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", f.name, err)
		}
		if err := sink.Write(ctx, f.name, data); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	return nil
}

// Import reads a bundle from sink. Missing files read as empty and malformed
// lines are skipped. Sequences are raised to at least the largest identifier
// present so imported identifiers are never reissued. The result is
// validated before it is returned.
func Import(ctx context.Context, sink Sink, log *zap.Logger) (types.Snapshot, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var snap types.Snapshot
	var err error

	if snap.Ingredients, err = readFile[types.Ingredient](ctx, sink, IngredientsFile, log); err != nil {
		return snap, err
	}
	if snap.Recipes, err = readFile[types.Recipe](ctx, sink, RecipesFile, log); err != nil {
		return snap, err
	}
	if snap.RecipeIngredients, err = readFile[types.RecipeIngredient](ctx, sink, RecipeIngredientsFile, log); err != nil {
		return snap, err
	}
	if snap.Steps, err = readFile[types.Step](ctx, sink, StepsFile, log); err != nil {
		return snap, err
	}
	seqs, err := readFile[types.Sequences](ctx, sink, SequencesFile, log)
	if err != nil {
		return snap, err
	}
	if len(seqs) > 0 {
		snap.Sequences = seqs[len(seqs)-1]
	}
	raiseSequences(&snap)

	if err := snap.Validate(); err != nil {
		return snap, fmt.Errorf("validating bundle: %w", err)
	}
	return snap, nil
}

func readFile[T any](ctx context.Context, sink Sink, name string, log *zap.Logger) ([]T, error) {
	data, err := sink.Read(ctx, name)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("bundle file missing, treating as empty", zap.String("file", name))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	records, skipped, err := decodeJSONL[T](data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	if skipped > 0 {
		log.Warn("skipped malformed lines", zap.String("file", name), zap.Int("lines", skipped))
	}
	return records, nil
}

func raiseSequences(snap *types.Snapshot) {
	for _, ing := range snap.Ingredients {
		snap.Sequences.Ingredient = max(snap.Sequences.Ingredient, ing.ID)
	}
	for _, r := range snap.Recipes {
		snap.Sequences.Recipe = max(snap.Sequences.Recipe, r.ID)
	}
	for _, ri := range snap.RecipeIngredients {
		snap.Sequences.RecipeIngredient = max(snap.Sequences.RecipeIngredient, ri.ID)
	}
	for _, st := range snap.Steps {
		snap.Sequences.Step = max(snap.Sequences.Step, st.ID)
	}
}

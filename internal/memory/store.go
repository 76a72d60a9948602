// Package memory implements the recipe store over in-memory maps. It is the
// engine behind every backend: durable backends hydrate a memory store on
// open and persist its snapshot after each mutation.
package memory

import (
	"cmp"
	"maps"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store holds all four entity maps and the per-type identifier sequences.
// A single RWMutex serializes writers, so a costing pass never interleaves
// with another mutation.
type Store struct {
	mu sync.RWMutex

	ingredients       map[int64]types.Ingredient
	recipes           map[int64]types.Recipe
	recipeIngredients map[int64]types.RecipeIngredient
	steps             map[int64]types.Step
	seq               types.Sequences

	now func() time.Time
	log *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source for recipe timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		ingredients:       make(map[int64]types.Ingredient),
		recipes:           make(map[int64]types.Recipe),
		recipeIngredients: make(map[int64]types.RecipeIngredient),
		steps:             make(map[int64]types.Step),
		now:               func() time.Time { return time.Now().UTC() },
		log:               zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close is a no-op; the memory store holds no external resources.
func (s *Store) Close() error { return nil }

// ExportState returns a deep copy of the store, each collection in
// identifier order.
func (s *Store) ExportState() (types.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := types.Snapshot{
		Ingredients:       make([]types.Ingredient, 0, len(s.ingredients)),
		Recipes:           make([]types.Recipe, 0, len(s.recipes)),
		RecipeIngredients: make([]types.RecipeIngredient, 0, len(s.recipeIngredients)),
		Steps:             make([]types.Step, 0, len(s.steps)),
		Sequences:         s.seq,
	}
	for _, id := range sortedKeys(s.ingredients) {
		snap.Ingredients = append(snap.Ingredients, s.ingredients[id].Clone())
	}
	for _, id := range sortedKeys(s.recipes) {
		snap.Recipes = append(snap.Recipes, s.recipes[id].Clone())
	}
	for _, id := range sortedKeys(s.recipeIngredients) {
		snap.RecipeIngredients = append(snap.RecipeIngredients, s.recipeIngredients[id])
	}
	for _, id := range sortedKeys(s.steps) {
		snap.Steps = append(snap.Steps, s.steps[id])
	}
	return snap, nil
}

// ImportState validates snap and replaces the store contents with it.
// Derived cost fields are taken as given.
func (s *Store) ImportState(snap types.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ingredients = make(map[int64]types.Ingredient, len(snap.Ingredients))
	for _, ing := range snap.Ingredients {
		s.ingredients[ing.ID] = ing.Clone()
	}
	s.recipes = make(map[int64]types.Recipe, len(snap.Recipes))
	for _, r := range snap.Recipes {
		s.recipes[r.ID] = r.Clone()
	}
	s.recipeIngredients = make(map[int64]types.RecipeIngredient, len(snap.RecipeIngredients))
	for _, ri := range snap.RecipeIngredients {
		s.recipeIngredients[ri.ID] = ri
	}
	s.steps = make(map[int64]types.Step, len(snap.Steps))
	for _, st := range snap.Steps {
		s.steps[st.ID] = st
	}
	s.seq = snap.Sequences
	return nil
}

// sortedKeys returns the map's identifiers in ascending order. Identifiers
// are issued monotonically, so this is insertion order.
func sortedKeys[V any](m map[int64]V) []int64 {
	return slices.Sorted(maps.Keys(m))
}

// rowsOf returns the recipe ingredient rows of a recipe in insertion order.
func (s *Store) rowsOf(recipeID int64) []types.RecipeIngredient {
	var rows []types.RecipeIngredient
	for _, id := range sortedKeys(s.recipeIngredients) {
		if ri := s.recipeIngredients[id]; ri.RecipeID == recipeID {
			rows = append(rows, ri)
		}
	}
	return rows
}

// stepsOf returns the steps of a recipe ordered by step number.
func (s *Store) stepsOf(recipeID int64) []types.Step {
	var out []types.Step
	for _, st := range s.steps {
		if st.RecipeID == recipeID {
			out = append(out, st)
		}
	}
	slices.SortFunc(out, func(a, b types.Step) int {
		return cmp.Or(cmp.Compare(a.StepNumber, b.StepNumber), cmp.Compare(a.ID, b.ID))
	})
	return out
}

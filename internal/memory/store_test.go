package memory

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeClock advances one second per call so timestamp refreshes are visible.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := New(WithClock(clock.Now))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustIngredient(t *testing.T, s *Store, name, cost string) types.Ingredient {
	t.Helper()
	ing, err := s.CreateIngredient(types.IngredientInput{Name: name, UnitCost: d(cost), Unit: types.UnitGram})
	require.NoError(t, err)
	return ing
}

func mustRecipe(t *testing.T, s *Store, in types.RecipeInput) types.Recipe {
	t.Helper()
	if in.Category == "" {
		in.Category = types.CategoryMain
	}
	if in.Servings == 0 {
		in.Servings = 1
	}
	if in.PrepTime == 0 {
		in.PrepTime = 10
	}
	r, err := s.CreateRecipe(in)
	require.NoError(t, err)
	return r
}

func mustAdd(t *testing.T, s *Store, recipeID, ingredientID int64, qty string) types.RecipeIngredient {
	t.Helper()
	ri, err := s.AddIngredientToRecipe(recipeID, types.RecipeIngredientInput{IngredientID: ingredientID, Quantity: d(qty), Unit: types.UnitGram})
	require.NoError(t, err)
	return ri
}

func TestIdentifiersAreNeverReused(t *testing.T) {
	s := newTestStore(t)

	a := mustIngredient(t, s, "A", "1")
	b := mustIngredient(t, s, "B", "1")
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	removed, err := s.DeleteIngredient(b.ID)
	require.NoError(t, err)
	require.True(t, removed)

	c := mustIngredient(t, s, "C", "1")
	assert.Equal(t, int64(3), c.ID)

	r := mustRecipe(t, s, types.RecipeInput{Name: "R"})
	assert.Equal(t, int64(1), r.ID, "sequences are per entity type")
}

func TestGetMissingReportsAbsence(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.GetIngredient(42)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = s.GetRecipe(42)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = s.GetFullRecipe(42)
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = s.GetRecipeIngredient(42)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetRecipeIngredient(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Flour", "0.01")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Bread"})
	ri := mustAdd(t, s, r.ID, ing.ID, "500")

	got, found, err := s.GetRecipeIngredient(ri.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, r.ID, got.RecipeID)
	assert.True(t, d("500").Equal(got.Quantity))
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "x"

	_, err := s.UpdateIngredient(1, types.IngredientPatch{Name: &name})
	assert.ErrorIs(t, err, types.ErrIngredientNotFound)
	_, err = s.UpdateRecipe(1, types.RecipePatch{Name: &name})
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
	_, err = s.UpdateRecipeIngredient(1, types.RecipeIngredientPatch{})
	assert.ErrorIs(t, err, types.ErrRecipeIngredientNotFound)
	_, err = s.UpdateStep(1, types.StepPatch{Description: &name})
	assert.ErrorIs(t, err, types.ErrStepNotFound)
	_, err = s.CalculateRecipeCosts(1)
	assert.ErrorIs(t, err, types.ErrRecipeNotFound)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteMissingReturnsFalse(t *testing.T) {
	s := newTestStore(t)

	for name, del := range map[string]func(int64) (bool, error){
		"ingredient":        s.DeleteIngredient,
		"recipe":            s.DeleteRecipe,
		"recipe ingredient": s.RemoveIngredientFromRecipe,
		"step":              s.DeleteStep,
	} {
		removed, err := del(99)
		require.NoError(t, err, name)
		assert.False(t, removed, name)
	}
}

func TestCreateRecipeStartsUncosted(t *testing.T) {
	s := newTestStore(t)
	price := d("5")

	r := mustRecipe(t, s, types.RecipeInput{Name: "Carbonara", SellingPrice: &price})

	assert.False(t, r.TotalCost.Valid)
	assert.False(t, r.CostPerServing.Valid)
	assert.False(t, r.ProfitMargin.Valid)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestUpdateRecipeRefreshesTimestamp(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Carbonara"})

	name := "Gricia"
	got, err := s.UpdateRecipe(r.ID, types.RecipePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Gricia", got.Name)
	assert.True(t, got.UpdatedAt.After(r.UpdatedAt))
	assert.Equal(t, r.CreatedAt, got.CreatedAt)
	assert.False(t, got.Costed(), "a name change does not cost the recipe")
}

func TestUpdateRecipeValidationLeavesRecipeUnchanged(t *testing.T) {
	s := newTestStore(t)
	r := mustRecipe(t, s, types.RecipeInput{Name: "Carbonara", Servings: 4})

	zero := 0
	_, err := s.UpdateRecipe(r.ID, types.RecipePatch{Servings: &zero})
	require.ErrorIs(t, err, types.ErrInvalidData)

	got, _, err := s.GetRecipe(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Servings)
	assert.Equal(t, r.UpdatedAt, got.UpdatedAt)
}

func TestDeleteRecipeCascades(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Spaghetti", "0.002")
	keep := mustRecipe(t, s, types.RecipeInput{Name: "Keep"})
	gone := mustRecipe(t, s, types.RecipeInput{Name: "Gone"})

	mustAdd(t, s, keep.ID, ing.ID, "100")
	mustAdd(t, s, gone.ID, ing.ID, "100")
	_, err := s.AddStepToRecipe(gone.ID, types.StepInput{Description: "Boil"})
	require.NoError(t, err)
	_, err = s.AddStepToRecipe(keep.ID, types.StepInput{Description: "Boil"})
	require.NoError(t, err)

	removed, err := s.DeleteRecipe(gone.ID)
	require.NoError(t, err)
	require.True(t, removed)

	_, found, err := s.GetFullRecipe(gone.ID)
	require.NoError(t, err)
	assert.False(t, found)

	snap, err := s.ExportState()
	require.NoError(t, err)
	for _, ri := range snap.RecipeIngredients {
		assert.NotEqual(t, gone.ID, ri.RecipeID)
	}
	for _, st := range snap.Steps {
		assert.NotEqual(t, gone.ID, st.RecipeID)
	}
	assert.Len(t, snap.RecipeIngredients, 1)
	assert.Len(t, snap.Steps, 1)
}

func TestDeleteIngredientInUse(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Eggs", "0.25")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Omelette"})
	ri := mustAdd(t, s, r.ID, ing.ID, "3")

	removed, err := s.DeleteIngredient(ing.ID)
	require.ErrorIs(t, err, types.ErrIngredientInUse)
	assert.False(t, removed)

	_, found, err := s.GetIngredient(ing.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, err = s.RemoveIngredientFromRecipe(ri.ID)
	require.NoError(t, err)
	removed, err = s.DeleteIngredient(ing.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestGetFullRecipe(t *testing.T) {
	s := newTestStore(t)
	pasta := mustIngredient(t, s, "Spaghetti", "0.002")
	salt := mustIngredient(t, s, "Salt", "0.001")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta"})

	t.Run("empty lists", func(t *testing.T) {
		full, found, err := s.GetFullRecipe(r.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.NotNil(t, full.Ingredients)
		assert.NotNil(t, full.Steps)
		assert.Empty(t, full.Ingredients)
		assert.Empty(t, full.Steps)
	})

	mustAdd(t, s, r.ID, salt.ID, "10")
	mustAdd(t, s, r.ID, pasta.ID, "500")
	_, err := s.AddStepToRecipe(r.ID, types.StepInput{Description: "Drain"})
	require.NoError(t, err)
	_, err = s.AddStepToRecipe(r.ID, types.StepInput{StepNumber: 1, Description: "Boil"})
	require.NoError(t, err)

	t.Run("ingredients in insertion order and steps by number", func(t *testing.T) {
		full, found, err := s.GetFullRecipe(r.ID)
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, full.Ingredients, 2)
		assert.Equal(t, "Salt", full.Ingredients[0].Ingredient.Name)
		assert.Equal(t, "Spaghetti", full.Ingredients[1].Ingredient.Name)
		require.Len(t, full.Steps, 2)
		assert.Equal(t, "Boil", full.Steps[0].Description)
		assert.Equal(t, 1, full.Steps[0].StepNumber)
		assert.Equal(t, "Drain", full.Steps[1].Description)
		assert.Equal(t, 2, full.Steps[1].StepNumber)
		assert.True(t, full.Costed())
	})
}

func TestReadsReturnCopies(t *testing.T) {
	s := newTestStore(t)
	ing, err := s.CreateIngredient(types.IngredientInput{
		Name: "Eggs", UnitCost: d("0.25"), Unit: types.UnitPiece, Allergens: []types.Allergen{types.AllergenEggs},
	})
	require.NoError(t, err)

	ing.Allergens[0] = types.AllergenFish
	got, _, err := s.GetIngredient(ing.ID)
	require.NoError(t, err)
	assert.Equal(t, types.AllergenEggs, got.Allergens[0])
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Spaghetti", "0.002")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pasta", Servings: 2})
	mustAdd(t, s, r.ID, ing.ID, "200")
	_, err := s.AddStepToRecipe(r.ID, types.StepInput{Description: "Boil"})
	require.NoError(t, err)
	removed, err := s.DeleteStep(1)
	require.NoError(t, err)
	require.True(t, removed)

	snap, err := s.ExportState()
	require.NoError(t, err)

	other := newTestStore(t)
	require.NoError(t, other.ImportState(snap))

	got, err := other.ExportState()
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	st, err := other.AddStepToRecipe(r.ID, types.StepInput{Description: "Serve"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.ID, "imported sequences continue")
}

func TestImportRejectsInvalidSnapshot(t *testing.T) {
	s := newTestStore(t)
	mustIngredient(t, s, "Salt", "0.001")

	bad := types.Snapshot{
		Recipes:           []types.Recipe{{ID: 1, Name: "R", Category: types.CategoryMain, Servings: 1, PrepTime: 1}},
		RecipeIngredients: []types.RecipeIngredient{{ID: 1, RecipeID: 1, IngredientID: 7, Quantity: d("1"), Unit: types.UnitGram}},
		Sequences:         types.Sequences{Recipe: 1, RecipeIngredient: 1},
	}
	require.ErrorIs(t, s.ImportState(bad), types.ErrDanglingIngredient)

	list, err := s.ListIngredients()
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed import leaves the store unchanged")
}

func TestImportRejectsInvalidEntities(t *testing.T) {
	s := newTestStore(t)
	bad := types.Snapshot{
		Ingredients: []types.Ingredient{{ID: 1, Name: "Salt", UnitCost: d("-5"), Unit: "furlong"}},
		Recipes: []types.Recipe{{
			ID: 1, Name: "R", Category: "bogus", Servings: 0, PrepTime: 1,
			TotalCost: decimal.NewNullDecimal(d("3")),
		}},
		RecipeIngredients: []types.RecipeIngredient{{ID: 1, RecipeID: 1, IngredientID: 1, Quantity: d("-2"), Unit: types.UnitGram}},
		Sequences:         types.Sequences{Ingredient: 1, Recipe: 1, RecipeIngredient: 1},
	}
	require.ErrorIs(t, s.ImportState(bad), types.ErrInvalidData)

	recipes, err := s.GetRecipes(types.RecipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestConcurrentRowAdditionsKeepCostsConsistent(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Salt", "0.01")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Brine", Servings: 2})

	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddIngredientToRecipe(r.ID, types.RecipeIngredientInput{IngredientID: ing.ID, Quantity: d("1"), Unit: types.UnitGram})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _, err := s.GetRecipe(r.ID)
	require.NoError(t, err)
	assert.True(t, d("0.2").Equal(got.TotalCost.Decimal), "total %s", got.TotalCost.Decimal)
	assert.True(t, d("0.1").Equal(got.CostPerServing.Decimal))
}

func TestConcurrentCostedAdditionsReportTheirOwnTotals(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Flour", "1")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Bread"})

	const workers = 20
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		totals []int64
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := s.AddIngredientToRecipeCosted(r.ID, types.RecipeIngredientInput{IngredientID: ing.ID, Quantity: d("1"), Unit: types.UnitGram})
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, c.Row.RecipeID, c.Recipe.ID)
			mu.Lock()
			totals = append(totals, c.Recipe.TotalCost.Decimal.IntPart())
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Each addition sees exactly the rows present when it committed.
	slices.Sort(totals)
	want := make([]int64, workers)
	for i := range want {
		want[i] = int64(i + 1)
	}
	assert.Equal(t, want, totals)
}

func TestRowChangeCarriesStoredCosts(t *testing.T) {
	s := newTestStore(t)
	ing := mustIngredient(t, s, "Rice", "0.002")
	r := mustRecipe(t, s, types.RecipeInput{Name: "Pilaf", Servings: 2})

	added, err := s.AddIngredientToRecipeCosted(r.ID, types.RecipeIngredientInput{IngredientID: ing.ID, Quantity: d("200"), Unit: types.UnitGram})
	require.NoError(t, err)
	assert.True(t, d("0.4").Equal(added.Recipe.TotalCost.Decimal))
	assert.True(t, d("0.2").Equal(added.Recipe.CostPerServing.Decimal))

	qty := d("500")
	updated, err := s.UpdateRecipeIngredientCosted(added.Row.ID, types.RecipeIngredientPatch{Quantity: &qty})
	require.NoError(t, err)
	stored, _, err := s.GetRecipe(r.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, updated.Recipe)
	assert.True(t, d("1").Equal(updated.Recipe.TotalCost.Decimal))

	removed, ok, err := s.RemoveIngredientFromRecipeCosted(added.Row.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, added.Row.ID, removed.Row.ID)
	assert.True(t, removed.Recipe.TotalCost.Decimal.IsZero())

	_, ok, err = s.RemoveIngredientFromRecipeCosted(added.Row.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)

	n, err := Seed(s)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = Seed(s)
	require.NoError(t, err)
	assert.Zero(t, n, "seeding a non-empty store is a no-op")

	list, err := s.ListIngredients()
	require.NoError(t, err)
	require.Len(t, list, 6)
	assert.Equal(t, "Spaghetti", list[0].Name)
	assert.Equal(t, []types.Allergen{types.AllergenGluten}, list[0].Allergens)
	assert.Equal(t, types.UnitPiece, list[1].Unit)
}

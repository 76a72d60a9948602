package archive

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSnapshot() types.Snapshot {
	notes := "Dried pasta"
	sub := types.Subcategory("italian")
	created := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	return types.Snapshot{
		Ingredients: []types.Ingredient{
			{ID: 1, Name: "Spaghetti", UnitCost: d("0.002"), Unit: types.UnitGram, Allergens: []types.Allergen{types.AllergenGluten}, Notes: &notes},
			{ID: 3, Name: "Salt", UnitCost: d("0.001"), Unit: types.UnitGram, Allergens: []types.Allergen{types.AllergenNone}},
		},
		Recipes: []types.Recipe{{
			ID: 2, Name: "Aglio e Olio", Category: types.CategoryMain, Subcategory: &sub,
			Servings: 2, PrepTime: 15,
			TotalCost:      decimal.NewNullDecimal(d("1.01")),
			CostPerServing: decimal.NewNullDecimal(d("0.505")),
			SellingPrice:   decimal.NewNullDecimal(d("8")),
			ProfitMargin:   decimal.NewNullDecimal(d("93.6875")),
			CreatedAt:      created,
			UpdatedAt:      created.Add(time.Minute),
		}},
		RecipeIngredients: []types.RecipeIngredient{
			{ID: 1, RecipeID: 2, IngredientID: 1, Quantity: d("500"), Unit: types.UnitGram},
			{ID: 2, RecipeID: 2, IngredientID: 3, Quantity: d("10"), Unit: types.UnitGram},
		},
		Steps: []types.Step{
			{ID: 4, RecipeID: 2, StepNumber: 1, Description: "Boil water"},
			{ID: 5, RecipeID: 2, StepNumber: 2, Description: "Cook pasta"},
		},
		Sequences: types.Sequences{Ingredient: 3, Recipe: 2, RecipeIngredient: 2, Step: 5},
	}
}

func assertSnapshotsMatch(t *testing.T, want, got types.Snapshot) {
	t.Helper()
	assert.Equal(t, want.Sequences, got.Sequences)
	assert.Equal(t, want.Steps, got.Steps)
	require.Len(t, got.Ingredients, len(want.Ingredients))
	for i := range want.Ingredients {
		assert.Equal(t, want.Ingredients[i].Name, got.Ingredients[i].Name)
		assert.True(t, want.Ingredients[i].UnitCost.Equal(got.Ingredients[i].UnitCost))
		assert.Equal(t, want.Ingredients[i].Allergens, got.Ingredients[i].Allergens)
	}
	require.Len(t, got.Recipes, len(want.Recipes))
	assert.True(t, want.Recipes[0].ProfitMargin.Decimal.Equal(got.Recipes[0].ProfitMargin.Decimal))
	assert.True(t, want.Recipes[0].CreatedAt.Equal(got.Recipes[0].CreatedAt))
	require.Len(t, got.RecipeIngredients, len(want.RecipeIngredients))
	assert.True(t, want.RecipeIngredients[0].Quantity.Equal(got.RecipeIngredients[0].Quantity))
}

func TestDirSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	sink := DirSink{Dir: filepath.Join(t.TempDir(), "bundle")}
	want := sampleSnapshot()

	require.NoError(t, Export(ctx, sink, want))
	for _, name := range []string{IngredientsFile, RecipesFile, RecipeIngredientsFile, StepsFile, SequencesFile} {
		_, err := os.Stat(filepath.Join(sink.Dir, name))
		require.NoError(t, err, name)
	}

	got, err := Import(ctx, sink, zap.NewNop())
	require.NoError(t, err)
	assertSnapshotsMatch(t, want, got)
}

func TestExportWritesOneObjectPerLine(t *testing.T) {
	ctx := context.Background()
	sink := DirSink{Dir: t.TempDir()}
	require.NoError(t, Export(ctx, sink, sampleSnapshot()))

	data, err := sink.Read(ctx, StepsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"description":"Boil water"`)
}

func TestImportSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	sink := DirSink{Dir: t.TempDir()}
	require.NoError(t, Export(ctx, sink, sampleSnapshot()))

	data, err := sink.Read(ctx, IngredientsFile)
	require.NoError(t, err)
	corrupted := "{not json\n" + string(data) + "\n[1,2]\n"
	require.NoError(t, sink.Write(ctx, IngredientsFile, []byte(corrupted)))

	got, err := Import(ctx, sink, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, got.Ingredients, 2)
}

func TestImportMissingFilesReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	sink := DirSink{Dir: t.TempDir()}
	snap := types.Snapshot{
		Ingredients: []types.Ingredient{{ID: 7, Name: "Salt", UnitCost: d("0.001"), Unit: types.UnitGram, Allergens: []types.Allergen{types.AllergenNone}}},
	}
	data, err := encodeJSONL(snap.Ingredients)
	require.NoError(t, err)
	require.NoError(t, sink.Write(ctx, IngredientsFile, data))

	got, err := Import(ctx, sink, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, got.Ingredients, 1)
	assert.Empty(t, got.Recipes)
	assert.Equal(t, int64(7), got.Sequences.Ingredient, "sequence raised to the largest id")
}

func TestImportRejectsDanglingReferences(t *testing.T) {
	ctx := context.Background()
	sink := DirSink{Dir: t.TempDir()}
	snap := sampleSnapshot()
	snap.Ingredients = snap.Ingredients[:1]
	require.NoError(t, Export(ctx, sink, snap))

	_, err := Import(ctx, sink, zap.NewNop())
	assert.ErrorIs(t, err, types.ErrDanglingIngredient)
}

func TestDirSinkReadMissing(t *testing.T) {
	_, err := DirSink{Dir: t.TempDir()}.Read(context.Background(), "nope.jsonl")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestS3SinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	sink, fake := newFakeS3Sink(t, "nightly/2026-02-01")
	want := sampleSnapshot()

	require.NoError(t, Export(ctx, sink, want))
	assert.Contains(t, fake.objects, "backups/nightly/2026-02-01/recipes.jsonl")

	got, err := Import(ctx, sink, zap.NewNop())
	require.NoError(t, err)
	assertSnapshotsMatch(t, want, got)
}

func TestS3SinkReadMissing(t *testing.T) {
	sink, _ := newFakeS3Sink(t, "")
	_, err := sink.Read(context.Background(), StepsFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewS3SinkRequiresBucket(t *testing.T) {
	_, err := NewS3Sink(context.Background(), S3Config{})
	assert.Error(t, err)
}

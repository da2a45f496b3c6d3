package builder

import (
	"testing"

	"trackfit/workout-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func catalogExercise(id, name string) domain.CatalogExercise {
	return domain.CatalogExercise{ID: id, Name: name, GifURL: "https://cdn.example.com/" + id + ".gif"}
}

func sessionWith(t *testing.T, ids ...string) *Builder {
	t.Helper()
	b := New()
	selection := make([]domain.CatalogExercise, 0, len(ids))
	for _, id := range ids {
		selection = append(selection, catalogExercise(id, "Exercise "+id))
	}
	b.MergeExercises(selection)
	require.Len(t, b.Exercises(), len(ids))
	return b
}

func exerciseIDs(b *Builder) []string {
	ids := make([]string, 0, len(b.Exercises()))
	for _, ex := range b.Exercises() {
		ids = append(ids, ex.ID)
	}
	return ids
}

func TestMergeExercisesIsIdempotent(t *testing.T) {
	b := New()
	b.MergeExercises([]domain.CatalogExercise{catalogExercise("0001", "Bench Press")})
	require.Len(t, b.Exercises(), 1)
	assert.Equal(t, []domain.Set{{KG: "", Reps: "", RepDisplay: ""}}, b.Exercises()[0].Sets)

	// user fills in a set, then re-opens the picker with the same selection
	require.NoError(t, b.UpdateSet("0001", 0, "kg", "80"))
	b.MergeExercises([]domain.CatalogExercise{
		catalogExercise("0001", "Bench Press"),
		catalogExercise("0002", "Squat"),
	})

	require.Len(t, b.Exercises(), 2)
	assert.Equal(t, "80", b.Exercises()[0].Sets[0].KG)
	assert.Equal(t, []string{"0001", "0002"}, exerciseIDs(b))
}

func TestAddSetAppendsEmptySet(t *testing.T) {
	b := sessionWith(t, "0001")
	require.NoError(t, b.UpdateSet("0001", 0, "reps", "10"))

	require.NoError(t, b.AddSet("0001"))
	require.Len(t, b.Exercises()[0].Sets, 2)
	assert.Equal(t, "10", b.Exercises()[0].Sets[0].Reps)
	assert.Equal(t, domain.Set{}, b.Exercises()[0].Sets[1])

	assert.ErrorIs(t, b.AddSet("nope"), ErrExerciseNotFound)
}

func TestUpdateSetTouchesOnlyTheNamedField(t *testing.T) {
	b := sessionWith(t, "0001")
	require.NoError(t, b.AddSet("0001"))

	require.NoError(t, b.UpdateSet("0001", 0, "kg", "100"))
	require.NoError(t, b.UpdateSet("0001", 1, "reps", "8"))

	sets := b.Exercises()[0].Sets
	assert.Equal(t, "100", sets[0].KG)
	assert.Equal(t, "", sets[0].Reps)
	assert.Equal(t, "", sets[1].KG)
	assert.Equal(t, "8", sets[1].Reps)

	assert.ErrorIs(t, b.UpdateSet("0001", 5, "kg", "1"), ErrSetOutOfRange)
	assert.ErrorIs(t, b.UpdateSet("0001", -1, "kg", "1"), ErrSetOutOfRange)
	assert.ErrorIs(t, b.UpdateSet("0001", 0, "tempo", "3-1-3"), ErrInvalidField)
	assert.ErrorIs(t, b.UpdateSet("nope", 0, "kg", "1"), ErrExerciseNotFound)
}

func TestSelectUnitMaxForcesKGSentinel(t *testing.T) {
	b := sessionWith(t, "0001")
	require.NoError(t, b.UpdateSet("0001", 0, "kg", "60"))

	require.NoError(t, b.SelectUnit("0001", 0, domain.WeightUnitMax))
	assert.Equal(t, "MAX", b.Exercises()[0].Sets[0].KG)

	// switching back to KG keeps whatever the kg field holds
	require.NoError(t, b.SelectUnit("0001", 0, domain.WeightUnitKG))
	assert.Equal(t, "MAX", b.Exercises()[0].Sets[0].KG)
	require.NoError(t, b.UpdateSet("0001", 0, "kg", "62.5"))
	assert.Equal(t, "62.5", b.Exercises()[0].Sets[0].KG)
}

func TestSelectUnitMWLocksKGColumn(t *testing.T) {
	b := sessionWith(t, "0001")
	require.NoError(t, b.SelectUnit("0001", 0, domain.WeightUnitMW))

	assert.ErrorIs(t, b.UpdateSet("0001", 0, "kg", "80"), ErrFieldLocked)
	// reps stays editable under a bodyweight unit
	require.NoError(t, b.UpdateSet("0001", 0, "reps", "12"))

	require.NoError(t, b.SelectUnit("0001", 0, domain.WeightUnitKG))
	require.NoError(t, b.UpdateSet("0001", 0, "kg", "80"))
}

func TestSelectRepTypeKeepsRepsAndDisplayExclusive(t *testing.T) {
	b := sessionWith(t, "0001")
	require.NoError(t, b.UpdateSet("0001", 0, "reps", "10"))

	require.NoError(t, b.SelectRepType("0001", 0, domain.RepTypeFailure))
	set := b.Exercises()[0].Sets[0]
	assert.Equal(t, domain.RepDisplayFailure, set.RepDisplay)
	assert.Equal(t, "", set.Reps)

	// reps column is locked while a label is showing
	assert.ErrorIs(t, b.UpdateSet("0001", 0, "reps", "10"), ErrFieldLocked)

	require.NoError(t, b.SelectRepType("0001", 0, domain.RepTypeDropset))
	assert.Equal(t, domain.RepDisplayDropset, b.Exercises()[0].Sets[0].RepDisplay)

	require.NoError(t, b.SelectRepType("0001", 0, domain.RepTypeReps))
	set = b.Exercises()[0].Sets[0]
	assert.Equal(t, "", set.RepDisplay)
	require.NoError(t, b.UpdateSet("0001", 0, "reps", "8"))
}

func TestPairSupersetIsSymmetricWithSharedColor(t *testing.T) {
	b := sessionWith(t, "a", "b", "c")

	require.NoError(t, b.PairSuperset("a", "b"))
	assert.Equal(t, "b", b.Supersets()["a"])
	assert.Equal(t, "a", b.Supersets()["b"])
	assert.Equal(t, b.ColorIndexes()["a"], b.ColorIndexes()["b"])
	assert.Equal(t, 0, b.ColorIndexes()["a"])

	assert.ErrorIs(t, b.PairSuperset("a", "c"), ErrAlreadyPaired)
	assert.ErrorIs(t, b.PairSuperset("c", "b"), ErrAlreadyPaired)
	assert.ErrorIs(t, b.PairSuperset("c", "c"), ErrSelfPair)
	assert.ErrorIs(t, b.PairSuperset("c", "nope"), ErrExerciseNotFound)
}

func TestPairSupersetColorProgression(t *testing.T) {
	b := sessionWith(t, "a", "b", "c", "d", "e", "f", "g", "h")

	// each pair adds two color entries, so indexes advance by two
	require.NoError(t, b.PairSuperset("a", "b"))
	require.NoError(t, b.PairSuperset("c", "d"))
	require.NoError(t, b.PairSuperset("e", "f"))
	require.NoError(t, b.PairSuperset("g", "h"))

	assert.Equal(t, 0, b.ColorIndexes()["a"])
	assert.Equal(t, 2, b.ColorIndexes()["c"])
	assert.Equal(t, 4, b.ColorIndexes()["e"])
	assert.Equal(t, 1, b.ColorIndexes()["g"])
}

func TestSupersetCandidatesExcludeSubjectAndPaired(t *testing.T) {
	b := sessionWith(t, "a", "b", "c", "d")
	require.NoError(t, b.PairSuperset("a", "b"))

	candidates := b.SupersetCandidates("c")
	require.Len(t, candidates, 1)
	assert.Equal(t, "d", candidates[0].ID)

	// with everything paired, nothing is offered
	require.NoError(t, b.PairSuperset("c", "d"))
	assert.Empty(t, b.SupersetCandidates("a"))
}

func TestDeleteExerciseDissolvesSupersetOnBothSides(t *testing.T) {
	b := sessionWith(t, "a", "b", "c")
	require.NoError(t, b.PairSuperset("a", "b"))

	require.NoError(t, b.DeleteExercise("a"))
	assert.Equal(t, []string{"b", "c"}, exerciseIDs(b))
	assert.Empty(t, b.Supersets())
	assert.Empty(t, b.ColorIndexes())

	// b is free to pair again
	require.NoError(t, b.PairSuperset("b", "c"))
}

func TestSwapExchangesPositionsAndIsItsOwnInverse(t *testing.T) {
	b := sessionWith(t, "a", "b", "c")

	require.NoError(t, b.StartSwap("a"))
	require.NoError(t, b.ConfirmSwap("c"))
	assert.Equal(t, []string{"c", "b", "a"}, exerciseIDs(b))
	_, pending := b.SwapPending()
	assert.False(t, pending)

	require.NoError(t, b.StartSwap("a"))
	require.NoError(t, b.ConfirmSwap("c"))
	assert.Equal(t, []string{"a", "b", "c"}, exerciseIDs(b))
}

func TestConfirmSwapOnSourceStaysInSwapMode(t *testing.T) {
	b := sessionWith(t, "a", "b")

	require.NoError(t, b.StartSwap("a"))
	require.NoError(t, b.ConfirmSwap("a"))

	source, pending := b.SwapPending()
	assert.True(t, pending)
	assert.Equal(t, "a", source)
	assert.Equal(t, []string{"a", "b"}, exerciseIDs(b))

	b.CancelSwap()
	_, pending = b.SwapPending()
	assert.False(t, pending)
	assert.ErrorIs(t, b.ConfirmSwap("b"), ErrNotInSwapMode)
}

func TestBuildPayloadResolvesDefaultsAndColors(t *testing.T) {
	b := sessionWith(t, "a", "b")
	require.NoError(t, b.UpdateSet("a", 0, "kg", "90"))
	require.NoError(t, b.UpdateSet("a", 0, "reps", "5"))
	require.NoError(t, b.AddSet("a"))
	require.NoError(t, b.SelectUnit("a", 1, domain.WeightUnitMax))
	require.NoError(t, b.SelectRepType("a", 1, domain.RepTypeFailure))
	require.NoError(t, b.PairSuperset("a", "b"))
	b.SetName("Push Day")

	payload := b.BuildPayload()

	assert.Equal(t, "Push Day", payload.Name)
	require.Len(t, payload.Exercises, 2)

	first := payload.Exercises[0].Sets[0]
	assert.Equal(t, domain.WeightUnitKG, first.WeightUnit)
	assert.Equal(t, domain.RepTypeReps, first.RepType)
	assert.Equal(t, "90", first.KG)
	assert.Equal(t, "5", first.Reps)

	second := payload.Exercises[0].Sets[1]
	assert.Equal(t, domain.WeightUnitMax, second.WeightUnit)
	assert.Equal(t, domain.RepTypeFailure, second.RepType)
	assert.Equal(t, "MAX", second.KG)
	assert.Equal(t, domain.RepDisplayFailure, second.RepDisplay)

	assert.Equal(t, map[string]string{"a": "b", "b": "a"}, payload.Supersets)
	assert.Equal(t, SupersetPalette[0].Text, payload.SupersetColors["a"])
	assert.Equal(t, payload.SupersetColors["a"], payload.SupersetColors["b"])

	// the session's own sets still carry no resolved unit/type
	assert.Equal(t, domain.WeightUnit(""), b.Exercises()[0].Sets[0].WeightUnit)
}

func TestBuildPayloadClampsOutOfRangeColorIndex(t *testing.T) {
	b := sessionWith(t, "a", "b")
	require.NoError(t, b.PairSuperset("a", "b"))
	b.colorIndex["a"] = 42
	b.colorIndex["b"] = -1

	payload := b.BuildPayload()
	assert.Equal(t, SupersetPalette[0].Text, payload.SupersetColors["a"])
	assert.Equal(t, SupersetPalette[0].Text, payload.SupersetColors["b"])
}

func TestHydrateRoundTrip(t *testing.T) {
	b := sessionWith(t, "a", "b")
	require.NoError(t, b.UpdateSet("a", 0, "kg", "70"))
	require.NoError(t, b.SelectUnit("a", 0, domain.WeightUnitMW))
	require.NoError(t, b.SelectRepType("a", 0, domain.RepTypeDropset))
	require.NoError(t, b.PairSuperset("a", "b"))
	b.SetName("Leg Day")
	payload := b.BuildPayload()

	stored := &domain.Workout{
		ID:             primitive.NewObjectID(),
		Name:           payload.Name,
		Exercises:      payload.Exercises,
		Supersets:      payload.Supersets,
		SupersetColors: payload.SupersetColors,
	}

	h := Hydrate(stored)
	assert.True(t, h.EditMode())
	assert.Equal(t, stored.ID.Hex(), h.WorkoutID())
	assert.Equal(t, "Leg Day", h.Name())
	assert.Equal(t, payload.Supersets, h.Supersets())
	assert.Equal(t, b.ColorIndexes(), h.ColorIndexes())

	// transient selections were reconstructed: kg is still locked under
	// MW and reps under the dropset label, same as before the save
	assert.ErrorIs(t, h.UpdateSet("a", 0, "kg", "80"), ErrFieldLocked)
	assert.ErrorIs(t, h.UpdateSet("a", 0, "reps", "8"), ErrFieldLocked)

	// saving again produces the same document
	assert.Equal(t, payload, h.BuildPayload())
}

func TestHydrateDropsUnknownColorValues(t *testing.T) {
	stored := &domain.Workout{
		ID:   primitive.NewObjectID(),
		Name: "Old Routine",
		Exercises: []domain.WorkoutExercise{
			{ID: "a", Name: "Row", Sets: []domain.Set{{}}},
			{ID: "b", Name: "Curl", Sets: []domain.Set{{}}},
		},
		Supersets:      map[string]string{"a": "b", "b": "a"},
		SupersetColors: map[string]string{"a": "#123456", "b": SupersetPalette[3].Text},
	}

	h := Hydrate(stored)
	assert.NotContains(t, h.ColorIndexes(), "a")
	assert.Equal(t, 3, h.ColorIndexes()["b"])
}

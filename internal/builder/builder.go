package builder

import (
	"errors"
	"fmt"

	"trackfit/workout-app/internal/domain"
)

// DefaultSessionName is the initial name of a fresh editing session.
const DefaultSessionName = "New Workout"

// PaletteColor is one entry of the fixed superset palette: a translucent
// background and the matching text/accent value. The accent value is
// what gets persisted.
type PaletteColor struct {
	BG   string
	Text string
}

// SupersetPalette is the fixed 5-entry color palette shared by every
// session. A pair formed in the builder holds a palette index; the
// stored document holds the Text value of that entry.
var SupersetPalette = [5]PaletteColor{
	{BG: "rgba(255, 99, 132, 0.15)", Text: "#ff6384"},
	{BG: "rgba(54, 162, 235, 0.15)", Text: "#36a2eb"},
	{BG: "rgba(255, 206, 86, 0.15)", Text: "#ffce56"},
	{BG: "rgba(75, 192, 192, 0.15)", Text: "#4bc0c0"},
	{BG: "rgba(153, 102, 255, 0.15)", Text: "#9966ff"},
}

var (
	ErrExerciseNotFound = errors.New("exercise not in session")
	ErrSetOutOfRange    = errors.New("set index out of range")
	ErrFieldLocked      = errors.New("field is not editable for this set")
	ErrInvalidField     = errors.New("field must be kg or reps")
	ErrAlreadyPaired    = errors.New("exercise already has a superset partner")
	ErrSelfPair         = errors.New("cannot superset an exercise with itself")
	ErrNotInSwapMode    = errors.New("no swap in progress")
)

// Builder is the in-memory editing session for one workout being
// created or edited. It is not safe for concurrent use; the Manager
// serializes access per session.
//
// Superset colors live here as palette indices only. Color values exist
// solely in the persisted payload and in hydration input.
type Builder struct {
	workoutID string // hex id of the workout being edited, "" when creating
	name      string
	exercises []domain.WorkoutExercise

	// transient per-(exercise,set) selections keyed "<exerciseID>-<index>"
	weightUnits map[string]domain.WeightUnit
	repTypes    map[string]domain.RepType

	supersets   map[string]string
	colorIndex  map[string]int
	swapMode    bool
	swapSource  string
}

// New starts an empty create-mode session.
func New() *Builder {
	return &Builder{
		name:        DefaultSessionName,
		exercises:   []domain.WorkoutExercise{},
		weightUnits: map[string]domain.WeightUnit{},
		repTypes:    map[string]domain.RepType{},
		supersets:   map[string]string{},
		colorIndex:  map[string]int{},
	}
}

// Hydrate seeds the session from a stored workout, switching it to edit
// mode. Persisted color values map back to palette indices; values not
// present in the palette are dropped. Transient unit and rep-type
// selections are seeded from the stored set fields so a later save does
// not silently reset them.
func Hydrate(w *domain.Workout) *Builder {
	b := New()
	b.workoutID = w.ID.Hex()
	if w.Name != "" {
		b.name = w.Name
	}
	b.exercises = append(b.exercises, w.Exercises...)
	for k, v := range w.Supersets {
		b.supersets[k] = v
	}
	for exerciseID, colorValue := range w.SupersetColors {
		if idx := paletteIndexOf(colorValue); idx >= 0 {
			b.colorIndex[exerciseID] = idx
		}
	}
	for _, ex := range b.exercises {
		for i, set := range ex.Sets {
			if set.WeightUnit != "" && set.WeightUnit != domain.WeightUnitKG {
				b.weightUnits[setKey(ex.ID, i)] = set.WeightUnit
			}
			if set.RepType != "" && set.RepType != domain.RepTypeReps {
				b.repTypes[setKey(ex.ID, i)] = set.RepType
			}
		}
	}
	return b
}

func setKey(exerciseID string, setIndex int) string {
	return fmt.Sprintf("%s-%d", exerciseID, setIndex)
}

func paletteIndexOf(colorValue string) int {
	for i, c := range SupersetPalette {
		if c.Text == colorValue {
			return i
		}
	}
	return -1
}

func emptySet() domain.Set {
	return domain.Set{KG: "", Reps: "", RepDisplay: ""}
}

// WorkoutID returns the id of the workout being edited, empty in create
// mode.
func (b *Builder) WorkoutID() string { return b.workoutID }

// EditMode reports whether the session was hydrated from a stored
// workout.
func (b *Builder) EditMode() bool { return b.workoutID != "" }

// Name returns the session's workout name.
func (b *Builder) Name() string { return b.name }

// SetName replaces the session's workout name.
func (b *Builder) SetName(name string) { b.name = name }

// Exercises returns the ordered exercise list.
func (b *Builder) Exercises() []domain.WorkoutExercise { return b.exercises }

// SwapPending reports whether a swap is in progress and which exercise
// started it.
func (b *Builder) SwapPending() (string, bool) { return b.swapSource, b.swapMode }

// Supersets returns the live pairing map.
func (b *Builder) Supersets() map[string]string { return b.supersets }

// ColorIndexes returns the live palette-index map.
func (b *Builder) ColorIndexes() map[string]int { return b.colorIndex }

func (b *Builder) findExercise(exerciseID string) (int, bool) {
	for i, ex := range b.exercises {
		if ex.ID == exerciseID {
			return i, true
		}
	}
	return -1, false
}

// MergeExercises appends catalog selections not already present by id,
// each with one default empty set. Re-applying the same selection is a
// no-op: existing exercises and their sets are never touched.
func (b *Builder) MergeExercises(selected []domain.CatalogExercise) {
	for _, chosen := range selected {
		if _, ok := b.findExercise(chosen.ID); ok {
			continue
		}
		b.exercises = append(b.exercises, domain.WorkoutExercise{
			ID:     chosen.ID,
			Name:   chosen.Name,
			GifURL: chosen.GifURL,
			Sets:   []domain.Set{emptySet()},
		})
	}
}

// AddSet appends one empty set to the named exercise.
func (b *Builder) AddSet(exerciseID string) error {
	i, ok := b.findExercise(exerciseID)
	if !ok {
		return ErrExerciseNotFound
	}
	b.exercises[i].Sets = append(b.exercises[i].Sets, emptySet())
	return nil
}

// UpdateSet replaces the kg or reps value of one set, leaving every
// other field and set untouched. The kg column is locked while the
// set's unit is MW; the reps column is locked while a rep-type label is
// showing.
func (b *Builder) UpdateSet(exerciseID string, setIndex int, field, value string) error {
	i, ok := b.findExercise(exerciseID)
	if !ok {
		return ErrExerciseNotFound
	}
	if setIndex < 0 || setIndex >= len(b.exercises[i].Sets) {
		return ErrSetOutOfRange
	}

	switch field {
	case "kg":
		if b.weightUnits[setKey(exerciseID, setIndex)] == domain.WeightUnitMW {
			return ErrFieldLocked
		}
		b.exercises[i].Sets[setIndex].KG = value
	case "reps":
		if b.exercises[i].Sets[setIndex].RepDisplay != "" {
			return ErrFieldLocked
		}
		b.exercises[i].Sets[setIndex].Reps = value
	default:
		return ErrInvalidField
	}
	return nil
}

// SelectUnit records the weight unit for one set. Choosing MAX forces
// the set's kg to the sentinel; choosing KG leaves a previous value,
// MAX included, in place.
func (b *Builder) SelectUnit(exerciseID string, setIndex int, unit domain.WeightUnit) error {
	i, ok := b.findExercise(exerciseID)
	if !ok {
		return ErrExerciseNotFound
	}
	if setIndex < 0 || setIndex >= len(b.exercises[i].Sets) {
		return ErrSetOutOfRange
	}

	b.weightUnits[setKey(exerciseID, setIndex)] = unit
	if unit == domain.WeightUnitMax {
		b.exercises[i].Sets[setIndex].KG = "MAX"
	}
	return nil
}

// SelectRepType records the rep type for one set and keeps the
// reps/repDisplay exclusivity invariant: a numeric count and a label
// never coexist.
func (b *Builder) SelectRepType(exerciseID string, setIndex int, repType domain.RepType) error {
	i, ok := b.findExercise(exerciseID)
	if !ok {
		return ErrExerciseNotFound
	}
	if setIndex < 0 || setIndex >= len(b.exercises[i].Sets) {
		return ErrSetOutOfRange
	}

	b.repTypes[setKey(exerciseID, setIndex)] = repType
	set := &b.exercises[i].Sets[setIndex]
	switch repType {
	case domain.RepTypeFailure:
		set.RepDisplay = domain.RepDisplayFailure
		set.Reps = ""
	case domain.RepTypeDropset:
		set.RepDisplay = domain.RepDisplayDropset
		set.Reps = ""
	default:
		set.RepDisplay = ""
	}
	return nil
}

// DeleteExercise removes the exercise from the session. If it was part
// of a superset pair, the partner's pairing and color entries are
// cleaned up as well, so the symmetry invariant keeps holding.
func (b *Builder) DeleteExercise(exerciseID string) error {
	i, ok := b.findExercise(exerciseID)
	if !ok {
		return ErrExerciseNotFound
	}
	b.exercises = append(b.exercises[:i], b.exercises[i+1:]...)

	if partner, paired := b.supersets[exerciseID]; paired {
		delete(b.supersets, exerciseID)
		delete(b.supersets, partner)
		delete(b.colorIndex, exerciseID)
		delete(b.colorIndex, partner)
	}
	return nil
}

// SupersetCandidates lists every exercise eligible to pair with the
// subject: everything except the subject itself and except exercises
// that already have a partner. The at-most-one-partner rule is enforced
// by construction here, not validated later.
func (b *Builder) SupersetCandidates(subjectID string) []domain.WorkoutExercise {
	candidates := []domain.WorkoutExercise{}
	for _, ex := range b.exercises {
		if ex.ID == subjectID {
			continue
		}
		if _, paired := b.supersets[ex.ID]; paired {
			continue
		}
		candidates = append(candidates, ex)
	}
	return candidates
}

// PairSuperset links two exercises as a superset and assigns both the
// same palette index: the current number of color assignments modulo
// the palette size.
func (b *Builder) PairSuperset(firstID, secondID string) error {
	if firstID == secondID {
		return ErrSelfPair
	}
	if _, ok := b.findExercise(firstID); !ok {
		return ErrExerciseNotFound
	}
	if _, ok := b.findExercise(secondID); !ok {
		return ErrExerciseNotFound
	}
	if _, paired := b.supersets[firstID]; paired {
		return ErrAlreadyPaired
	}
	if _, paired := b.supersets[secondID]; paired {
		return ErrAlreadyPaired
	}

	colorIdx := len(b.colorIndex) % len(SupersetPalette)
	b.supersets[firstID] = secondID
	b.supersets[secondID] = firstID
	b.colorIndex[firstID] = colorIdx
	b.colorIndex[secondID] = colorIdx
	return nil
}

// StartSwap enters swap mode with the subject as the pending source.
func (b *Builder) StartSwap(exerciseID string) error {
	if _, ok := b.findExercise(exerciseID); !ok {
		return ErrExerciseNotFound
	}
	b.swapMode = true
	b.swapSource = exerciseID
	return nil
}

// ConfirmSwap exchanges the positions of the pending source and the
// target and leaves swap mode. Selecting the source itself is a no-op
// that stays in swap mode. Only list order changes; swap is its own
// inverse.
func (b *Builder) ConfirmSwap(targetID string) error {
	if !b.swapMode {
		return ErrNotInSwapMode
	}
	if targetID == b.swapSource {
		return nil
	}
	first, ok := b.findExercise(b.swapSource)
	if !ok {
		return ErrExerciseNotFound
	}
	second, ok := b.findExercise(targetID)
	if !ok {
		return ErrExerciseNotFound
	}

	b.exercises[first], b.exercises[second] = b.exercises[second], b.exercises[first]
	b.swapMode = false
	b.swapSource = ""
	return nil
}

// CancelSwap leaves swap mode without reordering.
func (b *Builder) CancelSwap() {
	b.swapMode = false
	b.swapSource = ""
}

// Payload is the normalized form of the session, ready for persistence.
type Payload struct {
	Name           string
	Exercises      []domain.WorkoutExercise
	Supersets      map[string]string
	SupersetColors map[string]string
}

// BuildPayload resolves the transient selections onto the sets (unit
// defaults to KG, rep type to Reps) and converts palette indices into
// persisted color values; an out-of-range index falls back to the first
// palette entry. The session itself is left untouched so a failed save
// can be retried.
func (b *Builder) BuildPayload() Payload {
	exercises := make([]domain.WorkoutExercise, len(b.exercises))
	for i, ex := range b.exercises {
		sets := make([]domain.Set, len(ex.Sets))
		for j, set := range ex.Sets {
			resolved := set
			resolved.WeightUnit = domain.WeightUnitKG
			if unit, ok := b.weightUnits[setKey(ex.ID, j)]; ok {
				resolved.WeightUnit = unit
			}
			resolved.RepType = domain.RepTypeReps
			if repType, ok := b.repTypes[setKey(ex.ID, j)]; ok {
				resolved.RepType = repType
			}
			sets[j] = resolved
		}
		exercises[i] = domain.WorkoutExercise{
			ID:     ex.ID,
			Name:   ex.Name,
			GifURL: ex.GifURL,
			Sets:   sets,
		}
	}

	supersets := make(map[string]string, len(b.supersets))
	for k, v := range b.supersets {
		supersets[k] = v
	}

	colors := make(map[string]string, len(b.supersets))
	for exerciseID := range b.supersets {
		idx, ok := b.colorIndex[exerciseID]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(SupersetPalette) {
			idx = 0
		}
		colors[exerciseID] = SupersetPalette[idx].Text
	}

	return Payload{
		Name:           b.name,
		Exercises:      exercises,
		Supersets:      supersets,
		SupersetColors: colors,
	}
}

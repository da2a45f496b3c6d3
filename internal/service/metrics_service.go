package service

import (
	"errors"
	"math"
	"strconv"

	"trackfit/workout-app/internal/localstore"
)

// --- Error Definitions ---
var (
	ErrMissingInput   = errors.New("metric input missing or not numeric")
	ErrRepsOutOfRange = errors.New("rep count must be below 37 for a one-rep-max estimate")
)

// BodyParts are the tracked measurement sites, in display order.
var BodyParts = []string{
	"chest", "shoulders", "biceps", "forearm",
	"waist", "hip", "thigh", "calf",
}

// Lifts are the tracked personal-record lifts.
var Lifts = []string{"bench", "squat", "deadlift"}

// Local storage key namespaces.
const (
	bodyKeyPrefix = "@body_"
	prKeyPrefix   = "@pr_"
)

// BMIResult is a computed body-mass index with its category label.
type BMIResult struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// PersonalRecords are the stored powerlifting PR strings. No validation
// beyond numeric parsing at calculation time, matching how they are
// entered.
type PersonalRecords struct {
	Bench    string `json:"bench"`
	Squat    string `json:"squat"`
	Deadlift string `json:"deadlift"`
}

// MetricsService hosts the pure metric calculators and the local
// persistence of their raw inputs.
type MetricsService struct {
	store *localstore.Store
}

// NewMetricsService creates a metrics service over the local store.
func NewMetricsService(store *localstore.Store) *MetricsService {
	return &MetricsService{store: store}
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, ErrMissingInput
	}
	return v, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CalculateBMI computes weight/(height m)^2, rounded to one decimal.
// The category comes from the unrounded value with strict thresholds,
// so exactly 24.9 classifies as Overweight.
func CalculateBMI(weightKG, heightCM string) (BMIResult, error) {
	weight, err := parsePositive(weightKG)
	if err != nil {
		return BMIResult{}, err
	}
	height, err := parsePositive(heightCM)
	if err != nil {
		return BMIResult{}, err
	}

	heightM := height / 100
	bmi := weight / (heightM * heightM)

	var category string
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 24.9:
		category = "Normal"
	case bmi < 29.9:
		category = "Overweight"
	default:
		category = "Obese"
	}

	return BMIResult{Value: round1(bmi), Category: category}, nil
}

// CalculateOneRepMax estimates a one-rep max with the Brzycki formula
// weight*36/(37-reps), rounded to one decimal. Rep counts of 37 or more
// are rejected rather than dividing by zero or going negative.
func CalculateOneRepMax(weightKG, reps string) (float64, error) {
	weight, err := parsePositive(weightKG)
	if err != nil {
		return 0, err
	}
	repCount, err := parsePositive(reps)
	if err != nil {
		return 0, err
	}
	if repCount >= 37 {
		return 0, ErrRepsOutOfRange
	}
	return round1(weight * 36 / (37 - repCount)), nil
}

// CalculateCalories estimates daily calorie need with the
// Mifflin-St Jeor equation (male coefficients) and a fixed
// moderate-activity multiplier of 1.55.
func CalculateCalories(weightKG, heightCM, age string) (int, error) {
	weight, err := parsePositive(weightKG)
	if err != nil {
		return 0, err
	}
	height, err := parsePositive(heightCM)
	if err != nil {
		return 0, err
	}
	years, err := parsePositive(age)
	if err != nil {
		return 0, err
	}

	bmr := 10*weight + 6.25*height - 5*years + 5
	return int(math.Round(bmr * 1.55)), nil
}

// SaveMeasurements writes the given body-part values to local storage.
// Unknown part names are rejected before anything is written.
func (s *MetricsService) SaveMeasurements(measurements map[string]string) error {
	for part := range measurements {
		if !knownBodyPart(part) {
			return ErrValidationFailed
		}
	}
	for part, value := range measurements {
		if err := s.store.Set(bodyKeyPrefix+part, value); err != nil {
			return err
		}
	}
	return nil
}

// LoadMeasurements returns all tracked body-part values, empty strings
// for parts never recorded.
func (s *MetricsService) LoadMeasurements() (map[string]string, error) {
	out := make(map[string]string, len(BodyParts))
	for _, part := range BodyParts {
		value, err := s.store.Get(bodyKeyPrefix + part)
		if err != nil {
			return nil, err
		}
		out[part] = value
	}
	return out, nil
}

// SavePersonalRecords writes the three PR lifts to local storage.
func (s *MetricsService) SavePersonalRecords(records PersonalRecords) error {
	entries := map[string]string{
		"bench":    records.Bench,
		"squat":    records.Squat,
		"deadlift": records.Deadlift,
	}
	for lift, value := range entries {
		if err := s.store.Set(prKeyPrefix+lift, value); err != nil {
			return err
		}
	}
	return nil
}

// LoadPersonalRecords reads the three PR lifts from local storage.
func (s *MetricsService) LoadPersonalRecords() (PersonalRecords, error) {
	var records PersonalRecords
	var err error
	if records.Bench, err = s.store.Get(prKeyPrefix + "bench"); err != nil {
		return PersonalRecords{}, err
	}
	if records.Squat, err = s.store.Get(prKeyPrefix + "squat"); err != nil {
		return PersonalRecords{}, err
	}
	if records.Deadlift, err = s.store.Get(prKeyPrefix + "deadlift"); err != nil {
		return PersonalRecords{}, err
	}
	return records, nil
}

func knownBodyPart(part string) bool {
	for _, p := range BodyParts {
		if p == part {
			return true
		}
	}
	return false
}

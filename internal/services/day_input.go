package services

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/bloom/internal/models"
)

const (
	MaxDayNotesLength = 2000
	MaxSleepHours     = 24
)

var (
	ErrInvalidDayIntensity = errors.New("invalid day intensity")
	ErrUnknownSymptom      = errors.New("unknown symptom")
	ErrUnknownMood         = errors.New("unknown mood")
	ErrInvalidWaterIntake  = errors.New("invalid water intake")
	ErrInvalidSleepHours   = errors.New("invalid sleep hours")
)

type DayEntryInput struct {
	IsPeriod     bool
	Intensity    models.Intensity
	Symptoms     []string
	Moods        []string
	Notes        string
	MedicalNotes string
	WaterIntake  *int
	SleepHours   *int
}

func NormalizeDayEntryInput(input DayEntryInput) (DayEntryInput, error) {
	input.Intensity = models.Intensity(strings.ToLower(strings.TrimSpace(string(input.Intensity))))
	if !input.Intensity.Valid() {
		return input, ErrInvalidDayIntensity
	}
	if !input.IsPeriod {
		input.Intensity = models.IntensityNone
	}

	symptoms, err := normalizeTags(input.Symptoms, models.SymptomCatalog(), models.ResolveSymptomID, ErrUnknownSymptom)
	if err != nil {
		return input, err
	}
	moods, err := normalizeTags(input.Moods, models.MoodCatalog(), models.ResolveMoodID, ErrUnknownMood)
	if err != nil {
		return input, err
	}
	input.Symptoms = symptoms
	input.Moods = moods

	if input.WaterIntake != nil && *input.WaterIntake < 0 {
		return input, ErrInvalidWaterIntake
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > MaxSleepHours) {
		return input, ErrInvalidSleepHours
	}

	input.Notes = TrimDayNotes(strings.TrimSpace(input.Notes))
	input.MedicalNotes = TrimDayNotes(strings.TrimSpace(input.MedicalNotes))
	return input, nil
}

func TrimDayNotes(value string) string {
	if len(value) <= MaxDayNotesLength {
		return value
	}
	cut := MaxDayNotesLength
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}

// normalizeTags resolves raw values to catalog ids, drops duplicates and
// orders the result by catalog position.
func normalizeTags(values []string, catalog []models.Tag, resolve func(string) (string, bool), unknownErr error) ([]string, error) {
	seen := make(map[string]struct{}, len(values))
	ids := make([]string, 0, len(values))
	for _, value := range values {
		id, ok := resolve(value)
		if !ok {
			return nil, unknownErr
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return models.TagOrder(catalog, ids[i]) < models.TagOrder(catalog, ids[j])
	})
	return ids, nil
}

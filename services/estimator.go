package services

import (
	"math"
	"strings"
)

// DefaultMET is used when an exercise name matches nothing in the table.
const DefaultMET = 4.0

// DefaultBodyWeightKg is assumed when the caller supplies no weight.
const DefaultBodyWeightKg = 70.0

type metEntry struct {
	Name string
	MET  float64
}

// METTable resolves exercise names to MET values. Entries are ordered so
// substring fallback is deterministic: the first containment match in
// declaration order wins.
type METTable struct {
	entries []metEntry
}

func NewMETTable(entries []metEntry) *METTable {
	return &METTable{entries: entries}
}

// Lookup resolves a name: exact (case-insensitive) match first, then the
// first entry whose name contains the query or is contained by it, then
// DefaultMET.
func (t *METTable) Lookup(name string) float64 {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return DefaultMET
	}
	for _, e := range t.entries {
		if e.Name == query {
			return e.MET
		}
	}
	for _, e := range t.entries {
		if strings.Contains(query, e.Name) || strings.Contains(e.Name, query) {
			return e.MET
		}
	}
	return DefaultMET
}

// ExerciseEstimator derives calories burned from the MET formula:
// calories = MET x weight(kg) x duration(hours).
type ExerciseEstimator struct {
	table *METTable
}

func NewExerciseEstimator(table *METTable) *ExerciseEstimator {
	if table == nil {
		table = CompendiumMETTable()
	}
	return &ExerciseEstimator{table: table}
}

// Estimate is pure and total: unknown names fall back to DefaultMET and a
// missing weight to DefaultBodyWeightKg, so it always returns a value.
func (e *ExerciseEstimator) Estimate(name string, durationMinutes, weightKg float64) (calories float64, met float64) {
	if weightKg <= 0 {
		weightKg = DefaultBodyWeightKg
	}
	met = e.table.Lookup(name)
	calories = math.Round(met * weightKg * (durationMinutes / 60))
	return calories, met
}

// CompendiumMETTable holds MET values from the 2024 Compendium of Physical
// Activities for the exercises the app suggests.
func CompendiumMETTable() *METTable {
	return NewMETTable([]metEntry{
		// Cardio
		{"running", 9.8},
		{"running (slow, 5mph)", 8.3},
		{"running (moderate, 6mph)", 9.8},
		{"running (fast, 7.5mph)", 11.0},
		{"running (very fast, 10mph)", 14.5},
		{"jogging", 7.0},
		{"walking (slow)", 2.5},
		{"walking (moderate)", 3.5},
		{"walking (brisk)", 4.3},
		{"walking (uphill)", 6.0},
		{"cycling (leisure)", 4.0},
		{"cycling (moderate, 12-14mph)", 8.0},
		{"cycling (vigorous, 16-19mph)", 10.0},
		{"cycling (stationary, moderate)", 5.5},
		{"cycling (stationary, vigorous)", 8.8},
		{"swimming (leisure)", 6.0},
		{"swimming (laps, moderate)", 7.0},
		{"swimming (laps, vigorous)", 10.0},
		{"jump rope (moderate)", 10.0},
		{"jump rope (fast)", 12.3},
		{"stair climbing", 8.8},
		{"elliptical (moderate)", 5.0},
		{"elliptical (vigorous)", 6.5},
		{"rowing (moderate)", 7.0},
		{"rowing (vigorous)", 8.5},

		// HIIT and cardio classes
		{"hiit", 8.0},
		{"hiit (vigorous)", 10.0},
		{"circuit training", 8.0},
		{"aerobics (low impact)", 5.0},
		{"aerobics (high impact)", 7.0},
		{"zumba", 6.5},
		{"cardio kickboxing", 7.0},
		{"tabata", 8.0},
		{"crossfit", 9.0},

		// Strength training
		{"weight training (general)", 3.5},
		{"weight training (vigorous)", 6.0},
		{"bench press", 3.8},
		{"squat", 5.0},
		{"deadlift", 6.0},
		{"pull ups", 4.0},
		{"push ups", 3.8},
		{"sit ups", 2.8},
		{"plank", 3.0},
		{"dumbbell training", 3.5},
		{"barbell training", 5.0},
		{"kettlebell training", 8.0},
		{"bodyweight exercises", 4.0},
		{"resistance bands", 3.0},
		{"powerlifting", 6.0},

		// Flexibility and recovery
		{"yoga (hatha)", 2.5},
		{"yoga (vinyasa)", 4.0},
		{"yoga (power)", 4.5},
		{"stretching", 2.3},
		{"pilates", 3.0},
		{"pilates (vigorous)", 4.0},
		{"foam rolling", 2.0},
		{"meditation", 1.3},

		// Sports
		{"football (soccer)", 7.0},
		{"basketball", 6.5},
		{"cricket", 4.8},
		{"badminton", 5.5},
		{"tennis (singles)", 8.0},
		{"tennis (doubles)", 5.0},
		{"table tennis", 4.0},
		{"volleyball", 4.0},
		{"boxing (sparring)", 9.0},
		{"boxing (bag)", 6.0},
		{"martial arts (general)", 8.0},
		{"kabaddi", 7.0},
		{"hockey", 7.5},
		{"rugby", 8.3},

		// Other
		{"dancing (general)", 5.0},
		{"dancing (vigorous)", 7.0},
		{"hiking", 6.0},
		{"rock climbing", 8.0},
		{"skateboarding", 5.0},
		{"surfing", 3.0},
	})
}

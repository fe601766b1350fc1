package services

import "testing"

func TestEstimate_KnownExercise(t *testing.T) {
	est := NewExerciseEstimator(nil)

	// 9.8 MET x 70kg x 0.5h
	calories, met := est.Estimate("Running (moderate, 6mph)", 30, 70)
	if met != 9.8 {
		t.Errorf("met = %v, want 9.8", met)
	}
	if calories != 343 {
		t.Errorf("calories = %v, want 343", calories)
	}
}

func TestEstimate_UnknownExerciseUsesDefaultMET(t *testing.T) {
	est := NewExerciseEstimator(nil)

	calories, met := est.Estimate("underwater basket weaving", 30, 70)
	if met != DefaultMET {
		t.Errorf("met = %v, want %v", met, DefaultMET)
	}
	// 4.0 x 70 x 0.5
	if calories != 140 {
		t.Errorf("calories = %v, want 140", calories)
	}
}

func TestEstimate_MissingWeightUsesDefault(t *testing.T) {
	est := NewExerciseEstimator(nil)

	calories, _ := est.Estimate("plank", 60, 0)
	// 3.0 x 70 x 1h
	if calories != 210 {
		t.Errorf("calories = %v, want 210", calories)
	}
}

func TestMETTableLookup(t *testing.T) {
	table := CompendiumMETTable()

	cases := []struct {
		name  string
		query string
		want  float64
	}{
		{"exact", "squat", 5.0},
		{"exact case-insensitive", "HIIT", 8.0},
		{"trimmed", "  jogging  ", 7.0},
		{"entry inside query", "Morning Zumba Class", 6.5},
		{"query inside entry", "bench", 3.8},
		// Several cycling entries match; the first declared one wins.
		{"first containment wins", "cycling", 4.0},
		{"unknown", "underwater basket weaving", DefaultMET},
		{"empty", "", DefaultMET},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.Lookup(tc.query); got != tc.want {
				t.Errorf("Lookup(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestMETTableLookup_Deterministic(t *testing.T) {
	table := CompendiumMETTable()
	first := table.Lookup("running with the dog")
	for i := 0; i < 50; i++ {
		if got := table.Lookup("running with the dog"); got != first {
			t.Fatalf("lookup not deterministic: got %v then %v", first, got)
		}
	}
}

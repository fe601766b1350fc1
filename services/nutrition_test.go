package services

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	result *Nutrition
	err    error
	calls  int
}

func (p *stubProvider) Lookup(ctx context.Context, foodName string, quantity float64, unit string) (*Nutrition, error) {
	p.calls++
	return p.result, p.err
}

func TestFoodTableEstimate_ScalesByQuantity(t *testing.T) {
	table := BaselineFoodTable()

	// "Brown Rice" matches the rice baseline (130/2.7/28/0.3 per 100g).
	got := table.Estimate("Brown Rice", 150)
	if got.Calories != 195 {
		t.Errorf("calories = %v, want 195", got.Calories)
	}
	if got.Protein != 4.1 {
		t.Errorf("protein = %v, want 4.1", got.Protein)
	}
	if got.Carbs != 42 {
		t.Errorf("carbs = %v, want 42", got.Carbs)
	}
	// Raw fat is 0.45 which rounds down at one decimal.
	if got.Fat != 0.4 {
		t.Errorf("fat = %v, want 0.4", got.Fat)
	}
	if got.Source != "estimated" {
		t.Errorf("source = %q, want estimated", got.Source)
	}
}

func TestFoodTableEstimate_UnknownFoodUsesDefault(t *testing.T) {
	table := BaselineFoodTable()

	got := table.Estimate("dragonfruit smoothie bowl", 200)
	if got.Calories != 200 || got.Protein != 10 || got.Carbs != 30 || got.Fat != 6 {
		t.Errorf("default baseline not applied: %+v", got)
	}
}

func TestResolverLookup_ProviderWins(t *testing.T) {
	want := Nutrition{Calories: 111, Protein: 9, Source: "nutritionix"}
	p := &stubProvider{result: &want}
	r := NewNutritionResolver(nil, p)

	got := r.Lookup(context.Background(), "paneer", 100, "g")
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1", p.calls)
	}
}

func TestResolverLookup_FailingProviderFallsThrough(t *testing.T) {
	failing := &stubProvider{err: errors.New("upstream down")}
	noMatch := &stubProvider{}
	r := NewNutritionResolver(nil, failing, noMatch)

	got := r.Lookup(context.Background(), "apple", 100, "g")
	if got.Source != "estimated" {
		t.Errorf("source = %q, want estimated fallback", got.Source)
	}
	if got.Calories != 52 {
		t.Errorf("calories = %v, want 52", got.Calories)
	}
	if failing.calls != 1 || noMatch.calls != 1 {
		t.Errorf("providers called %d/%d times, want 1/1", failing.calls, noMatch.calls)
	}
}

func TestResolverLookup_FirstMatchShortCircuits(t *testing.T) {
	first := &stubProvider{result: &Nutrition{Calories: 50, Source: "edamam"}}
	second := &stubProvider{result: &Nutrition{Calories: 99, Source: "nutritionix"}}
	r := NewNutritionResolver(nil, first, second)

	got := r.Lookup(context.Background(), "banana", 100, "g")
	if got.Source != "edamam" {
		t.Errorf("source = %q, want edamam", got.Source)
	}
	if second.calls != 0 {
		t.Errorf("second provider called %d times, want 0", second.calls)
	}
}

func TestResolverLookup_ZeroQuantityDefaultsTo100g(t *testing.T) {
	r := NewNutritionResolver(nil)

	got := r.Lookup(context.Background(), "banana", 0, "")
	if got.Calories != 89 {
		t.Errorf("calories = %v, want 89 (per 100g)", got.Calories)
	}
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Nutrition is the result of a food lookup, scaled to the requested
// quantity. Source identifies which provider produced it.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Source   string  `json:"source"`
}

// NutritionProvider is one lookup backend. A nil result with a nil error
// means "no match, try the next provider".
type NutritionProvider interface {
	Lookup(ctx context.Context, foodName string, quantity float64, unit string) (*Nutrition, error)
}

// NutritionResolver runs providers in order and falls back to the static
// per-100g table. Provider failures are logged and swallowed: a lookup can
// degrade but never fail, so item creation is never blocked.
type NutritionResolver struct {
	providers []NutritionProvider
	table     *FoodTable
}

func NewNutritionResolver(table *FoodTable, providers ...NutritionProvider) *NutritionResolver {
	if table == nil {
		table = BaselineFoodTable()
	}
	return &NutritionResolver{providers: providers, table: table}
}

// NewDefaultNutritionResolver wires the external providers that have
// credentials configured, in the order Edamam then Nutritionix.
func NewDefaultNutritionResolver() *NutritionResolver {
	var providers []NutritionProvider
	if os.Getenv("EDAMAM_APP_ID") != "" && os.Getenv("EDAMAM_APP_KEY") != "" {
		providers = append(providers, NewEdamamProvider())
	}
	if os.Getenv("NUTRITIONIX_APP_ID") != "" && os.Getenv("NUTRITIONIX_API_KEY") != "" {
		providers = append(providers, NewNutritionixProvider())
	}
	return NewNutritionResolver(BaselineFoodTable(), providers...)
}

func (r *NutritionResolver) Lookup(ctx context.Context, foodName string, quantity float64, unit string) Nutrition {
	if quantity <= 0 {
		quantity = 100
	}
	if unit == "" {
		unit = "g"
	}
	for _, p := range r.providers {
		n, err := p.Lookup(ctx, foodName, quantity, unit)
		if err != nil {
			log.Printf("nutrition provider error for %q: %v", foodName, err)
			continue
		}
		if n != nil {
			return *n
		}
	}
	return r.table.Estimate(foodName, quantity)
}

type foodBaseline struct {
	Name     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// FoodTable is the static per-100g fallback. Like the MET table it is an
// ordered slice so substring matching is deterministic.
type FoodTable struct {
	entries []foodBaseline
	def     foodBaseline
}

func NewFoodTable(entries []foodBaseline, def foodBaseline) *FoodTable {
	return &FoodTable{entries: entries, def: def}
}

// Estimate scales the first matching baseline linearly by quantity/100.
// Calories round to the nearest integer, macros to one decimal.
func (t *FoodTable) Estimate(foodName string, quantity float64) Nutrition {
	query := strings.ToLower(strings.TrimSpace(foodName))
	base := t.def
	for _, e := range t.entries {
		if strings.Contains(query, e.Name) {
			base = e
			break
		}
	}
	factor := quantity / 100
	return Nutrition{
		Calories: math.Round(base.Calories * factor),
		Protein:  round1(base.Protein * factor),
		Carbs:    round1(base.Carbs * factor),
		Fat:      round1(base.Fat * factor),
		Fiber:    0,
		Sugar:    0,
		Source:   "estimated",
	}
}

// BaselineFoodTable holds rough per-100g averages for staple foods.
func BaselineFoodTable() *FoodTable {
	return NewFoodTable([]foodBaseline{
		{"rice", 130, 2.7, 28, 0.3},
		{"chicken", 165, 31, 0, 3.6},
		{"egg", 155, 13, 1.1, 11},
		{"bread", 265, 9, 49, 3.2},
		{"milk", 42, 3.4, 5, 1},
		{"apple", 52, 0.3, 14, 0.2},
		{"banana", 89, 1.1, 23, 0.3},
		{"pasta", 131, 5, 25, 1.1},
		{"beef", 250, 26, 0, 15},
		{"fish", 100, 20, 0, 2},
	}, foodBaseline{"default", 100, 5, 15, 3})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ---- Edamam ----

type EdamamProvider struct {
	appID  string
	appKey string
	client *http.Client
}

func NewEdamamProvider() *EdamamProvider {
	return &EdamamProvider{
		appID:  os.Getenv("EDAMAM_APP_ID"),
		appKey: os.Getenv("EDAMAM_APP_KEY"),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type edamamParserResponse struct {
	Hints []struct {
		Food struct {
			Nutrients struct {
				Energy  float64 `json:"ENERC_KCAL"`
				Protein float64 `json:"PROCNT"`
				Carbs   float64 `json:"CHOCDF"`
				Fat     float64 `json:"FAT"`
				Fiber   float64 `json:"FIBTG"`
			} `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

func (p *EdamamProvider) Lookup(ctx context.Context, foodName string, quantity float64, unit string) (*Nutrition, error) {
	q := url.Values{}
	q.Set("app_id", p.appID)
	q.Set("app_key", p.appKey)
	q.Set("ingr", fmt.Sprintf("%g%s %s", quantity, unit, foodName))
	q.Set("nutrition-type", "logging")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.edamam.com/api/food-database/v2/parser?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Edamam parser: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Edamam response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edamam API error %d: %s", resp.StatusCode, string(body))
	}

	var pr edamamParserResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse Edamam JSON: %w", err)
	}
	if len(pr.Hints) == 0 {
		return nil, nil
	}

	n := pr.Hints[0].Food.Nutrients
	factor := quantity / 100
	return &Nutrition{
		Calories: math.Round(n.Energy * factor),
		Protein:  round1(n.Protein * factor),
		Carbs:    round1(n.Carbs * factor),
		Fat:      round1(n.Fat * factor),
		Fiber:    round1(n.Fiber * factor),
		Source:   "edamam",
	}, nil
}

// ---- Nutritionix ----

type NutritionixProvider struct {
	appID  string
	apiKey string
	client *http.Client
}

func NewNutritionixProvider() *NutritionixProvider {
	return &NutritionixProvider{
		appID:  os.Getenv("NUTRITIONIX_APP_ID"),
		apiKey: os.Getenv("NUTRITIONIX_API_KEY"),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type nutritionixResponse struct {
	Foods []struct {
		Calories float64 `json:"nf_calories"`
		Protein  float64 `json:"nf_protein"`
		Carbs    float64 `json:"nf_total_carbohydrate"`
		Fat      float64 `json:"nf_total_fat"`
		Fiber    float64 `json:"nf_dietary_fiber"`
		Sugar    float64 `json:"nf_sugars"`
	} `json:"foods"`
}

func (p *NutritionixProvider) Lookup(ctx context.Context, foodName string, quantity float64, unit string) (*Nutrition, error) {
	payload, err := json.Marshal(map[string]string{
		"query": fmt.Sprintf("%g%s %s", quantity, unit, foodName),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://trackapi.nutritionix.com/v2/natural/nutrients", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-app-id", p.appID)
	req.Header.Set("x-app-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Nutritionix: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Nutritionix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutritionix API error %d: %s", resp.StatusCode, string(body))
	}

	var nr nutritionixResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("failed to parse Nutritionix JSON: %w", err)
	}
	if len(nr.Foods) == 0 {
		return nil, nil
	}

	f := nr.Foods[0]
	return &Nutrition{
		Calories: math.Round(f.Calories),
		Protein:  round1(f.Protein),
		Carbs:    round1(f.Carbs),
		Fat:      round1(f.Fat),
		Fiber:    round1(f.Fiber),
		Sugar:    round1(f.Sugar),
		Source:   "nutritionix",
	}, nil
}

package models

import "math"

// NutrientValue is the per-serving (or scaled) nutrition snapshot that flows
// through the whole system. Values are grams except Calories (kcal).
type NutrientValue struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Sugars   float64 `json:"sugars"`
	Fats     float64 `json:"fats"`
}

// Truncate2 truncates toward negative infinity at the hundredths place.
// The ledger truncates, it does not round; the difference is user-visible
// on every add/remove.
func Truncate2(x float64) float64 {
	return math.Floor(x*100) / 100
}

func (v NutrientValue) truncate2() NutrientValue {
	return NutrientValue{
		Calories: Truncate2(v.Calories),
		Protein:  Truncate2(v.Protein),
		Carbs:    Truncate2(v.Carbs),
		Sugars:   Truncate2(v.Sugars),
		Fats:     Truncate2(v.Fats),
	}
}

// Scale multiplies a per-serving value by quantity and truncates each
// component. An entry written with Scale always matches its contribution
// to the running total exactly.
func (v NutrientValue) Scale(quantity int) NutrientValue {
	q := float64(quantity)
	return NutrientValue{
		Calories: v.Calories * q,
		Protein:  v.Protein * q,
		Carbs:    v.Carbs * q,
		Sugars:   v.Sugars * q,
		Fats:     v.Fats * q,
	}.truncate2()
}

// Add returns truncate2(v + o) per component. Each component is truncated
// independently at every step, not once at the end.
func (v NutrientValue) Add(o NutrientValue) NutrientValue {
	return NutrientValue{
		Calories: v.Calories + o.Calories,
		Protein:  v.Protein + o.Protein,
		Carbs:    v.Carbs + o.Carbs,
		Sugars:   v.Sugars + o.Sugars,
		Fats:     v.Fats + o.Fats,
	}.truncate2()
}

// Sub returns truncate2(v - o) per component. The result may go negative
// when the stored total was edited out-of-band; it is not clamped.
func (v NutrientValue) Sub(o NutrientValue) NutrientValue {
	return NutrientValue{
		Calories: v.Calories - o.Calories,
		Protein:  v.Protein - o.Protein,
		Carbs:    v.Carbs - o.Carbs,
		Sugars:   v.Sugars - o.Sugars,
		Fats:     v.Fats - o.Fats,
	}.truncate2()
}

// FoodItem is the normalized output of the food lookup service, regardless
// of which provider (barcode, search, photo) produced it. Read-only
// downstream.
type FoodItem struct {
	Name                string        `json:"name"`
	Brand               string        `json:"brand,omitempty"`
	Nutrients           NutrientValue `json:"nutrients"`
	SaturatedFat        float64       `json:"saturated_fat,omitempty"`
	Sodium              float64       `json:"sodium,omitempty"`
	Fiber               float64       `json:"fiber,omitempty"`
	Potassium           float64       `json:"potassium,omitempty"`
	ServingQty          int           `json:"serving_qty,omitempty"`
	ServingUnit         string        `json:"serving_unit,omitempty"`
	ServingWeightGrams  float64       `json:"serving_weight_grams,omitempty"`
	IngredientStatement string        `json:"ingredient_statement,omitempty"`
	Barcode             string        `json:"barcode,omitempty"`
	NixItemID           string        `json:"nix_item_id,omitempty"`
	PhotoURL            string        `json:"photo,omitempty"`
}

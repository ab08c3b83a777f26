package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyLedger is the per-user, per-date running total of consumed
// nutrients. Created lazily on the first entry for a date, never deleted
// automatically. Invariant: the total equals the sum of its entries'
// values with truncate2 applied at every incremental update.
type DailyLedger struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_user_date;not null" json:"-"`
	Date   string `gorm:"uniqueIndex:idx_user_date;type:varchar(10);not null" json:"date"` // yyyy-MM-dd

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Sugars   float64 `json:"sugars"`
	Fats     float64 `json:"fats"`

	Entries []FoodLogEntry `gorm:"foreignKey:LedgerID" json:"entries,omitempty"`
}

func (l *DailyLedger) Total() NutrientValue {
	return NutrientValue{
		Calories: l.Calories,
		Protein:  l.Protein,
		Carbs:    l.Carbs,
		Sugars:   l.Sugars,
		Fats:     l.Fats,
	}
}

func (l *DailyLedger) SetTotal(v NutrientValue) {
	l.Calories = v.Calories
	l.Protein = v.Protein
	l.Carbs = v.Carbs
	l.Sugars = v.Sugars
	l.Fats = v.Fats
}

// FoodLogEntry is one logged food. It snapshots the food name and the
// quantity-scaled NutrientValue at log time; later provider changes never
// rewrite history. Owned exclusively by one DailyLedger.
type FoodLogEntry struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	LedgerID  uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Sugars    float64   `json:"sugars"`
	Fats      float64   `json:"fats"`
	Photo     string    `json:"photo"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}

func (e *FoodLogEntry) Value() NutrientValue {
	return NutrientValue{
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Sugars:   e.Sugars,
		Fats:     e.Fats,
	}
}

func (e *FoodLogEntry) SetValue(v NutrientValue) {
	e.Calories = v.Calories
	e.Protein = v.Protein
	e.Carbs = v.Carbs
	e.Sugars = v.Sugars
	e.Fats = v.Fats
}

package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	Name     string

	// Intake goals. Zero means "never set"; reads go through
	// GoalProfileOrDefaults so absent goals surface as the defaults.
	GoalCalories float64
	GoalProtein  float64
	GoalCarbs    float64
	GoalSugars   float64
	GoalFats     float64

	// Allergy flags in the stored wire convention (0 allergic, 1 safe).
	// Everything outside (de)serialization uses AllergenSet.
	AllergyNuts    int `gorm:"default:1"`
	AllergyDairy   int `gorm:"default:1"`
	AllergySeafood int `gorm:"default:1"`
}

// GoalProfile is the user's daily target intake as exposed on the API,
// field names matching the persisted user document contract.
type GoalProfile struct {
	Name        string             `json:"name"`
	IntakeGoals map[string]float64 `json:"intakeGoals"`
}

// Default daily targets injected when a user never set goals.
const (
	DefaultGoalCalories = 2000
	DefaultGoalProtein  = 50
	DefaultGoalCarbs    = 300
	DefaultGoalSugars   = 50
	DefaultGoalFats     = 70
)

// GoalProfileOrDefaults builds the goal profile, substituting the default
// for any target that was never set.
func (u *User) GoalProfileOrDefaults() GoalProfile {
	orDefault := func(v, def float64) float64 {
		if v <= 0 {
			return def
		}
		return v
	}
	return GoalProfile{
		Name: u.Name,
		IntakeGoals: map[string]float64{
			"calories": orDefault(u.GoalCalories, DefaultGoalCalories),
			"protein":  orDefault(u.GoalProtein, DefaultGoalProtein),
			"carbs":    orDefault(u.GoalCarbs, DefaultGoalCarbs),
			"sugars":   orDefault(u.GoalSugars, DefaultGoalSugars),
			"fats":     orDefault(u.GoalFats, DefaultGoalFats),
		},
	}
}

func (u *User) Allergies() AllergenSet {
	return AllergenSetFromFlags(map[string]int{
		AllergenNuts:    u.AllergyNuts,
		AllergenDairy:   u.AllergyDairy,
		AllergenSeafood: u.AllergySeafood,
	})
}

func (u *User) SetAllergies(s AllergenSet) {
	flags := s.Flags()
	u.AllergyNuts = flags[AllergenNuts]
	u.AllergyDairy = flags[AllergenDairy]
	u.AllergySeafood = flags[AllergenSeafood]
}

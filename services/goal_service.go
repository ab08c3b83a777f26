package services

import (
	"errors"
	"fmt"
	"math"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// GoalService reads and writes the per-user goal and allergy profiles and
// derives suggested goals from body metrics.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) GetProfile(userID uint) (models.GoalProfile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GoalProfile{}, fmt.Errorf("%w: user %d", models.ErrNotFound, userID)
		}
		return models.GoalProfile{}, err
	}
	return user.GoalProfileOrDefaults(), nil
}

func (s *GoalService) UpdateGoals(userID uint, goals map[string]float64) (models.GoalProfile, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return models.GoalProfile{}, err
	}

	if v, ok := goals["calories"]; ok {
		user.GoalCalories = v
	}
	if v, ok := goals["protein"]; ok {
		user.GoalProtein = v
	}
	if v, ok := goals["carbs"]; ok {
		user.GoalCarbs = v
	}
	if v, ok := goals["sugars"]; ok {
		user.GoalSugars = v
	}
	if v, ok := goals["fats"]; ok {
		user.GoalFats = v
	}

	if err := s.db.Save(&user).Error; err != nil {
		return models.GoalProfile{}, err
	}
	return user.GoalProfileOrDefaults(), nil
}

func (s *GoalService) GetAllergies(userID uint) (models.AllergenSet, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return models.AllergenSet{}, err
	}
	return user.Allergies(), nil
}

func (s *GoalService) UpdateAllergies(userID uint, set models.AllergenSet) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}
	user.SetAllergies(set)
	return s.db.Save(&user).Error
}

// ActivityMultipliers are the five accepted TDEE activity factors, from
// sedentary to extra active.
var ActivityMultipliers = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

// Goal directions and their daily calorie adjustment.
const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

var goalAdjustments = map[string]float64{
	GoalLose:     -250,
	GoalMaintain: 0,
	GoalGain:     250,
}

type EstimateInput struct {
	WeightLbs    float64 `json:"weight_lbs"`
	HeightFeet   int     `json:"height_feet"`
	HeightInches int     `json:"height_inches"`
	Age          int     `json:"age"`
	Sex          string  `json:"sex"`            // "male" or "female"
	ActivityIdx  int     `json:"activity_level"` // index into ActivityMultipliers
	Goal         string  `json:"goal"`           // lose | maintain | gain
}

type EstimatedGoals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// EstimateGoals computes suggested daily targets. Pure function, no I/O.
//
// BMR is Mifflin-St Jeor; TDEE applies the activity multiplier and the
// goal-direction adjustment. Macros split 25% protein / 50% carbs / 25%
// fat by calories at 4, 4, and 9 kcal per gram, each standard-rounded.
// Macro rounding is intentionally different from the ledger's truncation.
func EstimateGoals(in EstimateInput) (EstimatedGoals, error) {
	if in.WeightLbs <= 0 || in.Age <= 0 {
		return EstimatedGoals{}, fmt.Errorf("%w: weight and age must be positive", models.ErrValidation)
	}
	if in.HeightFeet <= 0 || in.HeightInches < 0 || in.HeightInches > 11 {
		return EstimatedGoals{}, fmt.Errorf("%w: height out of range", models.ErrValidation)
	}
	if in.ActivityIdx < 0 || in.ActivityIdx >= len(ActivityMultipliers) {
		return EstimatedGoals{}, fmt.Errorf("%w: unknown activity level", models.ErrValidation)
	}
	if in.Sex != "male" && in.Sex != "female" {
		return EstimatedGoals{}, fmt.Errorf("%w: sex must be male or female", models.ErrValidation)
	}
	adjustment, ok := goalAdjustments[in.Goal]
	if !ok {
		return EstimatedGoals{}, fmt.Errorf("%w: goal must be lose, maintain, or gain", models.ErrValidation)
	}

	weightKg := utils.PoundsToKg(in.WeightLbs)
	heightCm := utils.FeetInchesToCm(in.HeightFeet, in.HeightInches)

	return estimateFromMetric(weightKg, heightCm, in.Age, in.Sex == "male",
		ActivityMultipliers[in.ActivityIdx], adjustment), nil
}

func estimateFromMetric(weightKg, heightCm float64, age int, male bool, multiplier, adjustment float64) EstimatedGoals {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if male {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr*multiplier + adjustment

	return EstimatedGoals{
		Calories: int(math.Round(tdee)),
		Protein:  int(math.Round(tdee * 0.25 / 4)),
		Carbs:    int(math.Round(tdee * 0.5 / 4)),
		Fats:     int(math.Round(tdee * 0.25 / 9)),
	}
}

package services

import (
	"errors"
	"testing"

	"backend/models"
)

func TestEstimateFromMetric(t *testing.T) {
	// 70 kg, 175 cm, 25-year-old male, moderately active, maintaining:
	// BMR 1673.75, TDEE 2594.3125.
	got := estimateFromMetric(70, 175, 25, true, 1.55, 0)
	want := EstimatedGoals{Calories: 2594, Protein: 162, Carbs: 324, Fats: 72}
	if got != want {
		t.Errorf("estimateFromMetric = %+v, want %+v", got, want)
	}
}

func TestEstimateFromMetricFemale(t *testing.T) {
	// Same body, female constant: BMR 1507.75, sedentary, losing.
	got := estimateFromMetric(70, 175, 25, false, 1.2, -250)
	if got.Calories != 1559 {
		t.Errorf("calories = %d, want 1559", got.Calories)
	}
}

func TestEstimateGoalsConvertsImperial(t *testing.T) {
	got, err := EstimateGoals(EstimateInput{
		WeightLbs:    175,
		HeightFeet:   5,
		HeightInches: 10,
		Age:          25,
		Sex:          "male",
		ActivityIdx:  2,
		Goal:         GoalMaintain,
	})
	if err != nil {
		t.Fatalf("EstimateGoals: %v", err)
	}
	// 79.3786 kg, 177.8 cm -> BMR 1785.036, TDEE 2766.8058.
	want := EstimatedGoals{Calories: 2767, Protein: 173, Carbs: 346, Fats: 77}
	if got != want {
		t.Errorf("EstimateGoals = %+v, want %+v", got, want)
	}
}

func TestEstimateGoalsGainAdjustment(t *testing.T) {
	maintain, err := EstimateGoals(EstimateInput{
		WeightLbs: 150, HeightFeet: 5, HeightInches: 6, Age: 40,
		Sex: "female", ActivityIdx: 0, Goal: GoalMaintain,
	})
	if err != nil {
		t.Fatal(err)
	}
	gain, err := EstimateGoals(EstimateInput{
		WeightLbs: 150, HeightFeet: 5, HeightInches: 6, Age: 40,
		Sex: "female", ActivityIdx: 0, Goal: GoalGain,
	})
	if err != nil {
		t.Fatal(err)
	}
	if gain.Calories-maintain.Calories != 250 {
		t.Errorf("gain adds %d calories, want 250", gain.Calories-maintain.Calories)
	}
}

func TestEstimateGoalsValidation(t *testing.T) {
	valid := EstimateInput{
		WeightLbs: 175, HeightFeet: 5, HeightInches: 10, Age: 25,
		Sex: "male", ActivityIdx: 2, Goal: GoalMaintain,
	}

	cases := []struct {
		name   string
		mutate func(*EstimateInput)
	}{
		{"zero weight", func(in *EstimateInput) { in.WeightLbs = 0 }},
		{"zero age", func(in *EstimateInput) { in.Age = 0 }},
		{"inches out of range", func(in *EstimateInput) { in.HeightInches = 12 }},
		{"negative activity", func(in *EstimateInput) { in.ActivityIdx = -1 }},
		{"activity too high", func(in *EstimateInput) { in.ActivityIdx = len(ActivityMultipliers) }},
		{"unknown sex", func(in *EstimateInput) { in.Sex = "other" }},
		{"unknown goal", func(in *EstimateInput) { in.Goal = "bulk" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := valid
			c.mutate(&in)
			if _, err := EstimateGoals(in); !errors.Is(err, models.ErrValidation) {
				t.Errorf("want ErrValidation, got %v", err)
			}
		})
	}
}

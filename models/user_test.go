package models

import "testing"

func TestGoalProfileOrDefaults(t *testing.T) {
	u := User{Name: "Sam"}
	p := u.GoalProfileOrDefaults()
	if p.Name != "Sam" {
		t.Errorf("name = %q", p.Name)
	}
	want := map[string]float64{
		"calories": 2000, "protein": 50, "carbs": 300, "sugars": 50, "fats": 70,
	}
	for k, v := range want {
		if p.IntakeGoals[k] != v {
			t.Errorf("default %s = %v, want %v", k, p.IntakeGoals[k], v)
		}
	}
}

func TestGoalProfileKeepsSetValues(t *testing.T) {
	u := User{GoalCalories: 2500, GoalProtein: 120}
	p := u.GoalProfileOrDefaults()
	if p.IntakeGoals["calories"] != 2500 || p.IntakeGoals["protein"] != 120 {
		t.Errorf("set goals overridden: %v", p.IntakeGoals)
	}
	if p.IntakeGoals["carbs"] != 300 {
		t.Errorf("unset carbs = %v, want default 300", p.IntakeGoals["carbs"])
	}
}

func TestUserAllergiesRoundTrip(t *testing.T) {
	var u User
	u.SetAllergies(AllergenSet{Nuts: Allergic, Dairy: NotAllergic, Seafood: Allergic})
	if u.AllergyNuts != 0 || u.AllergyDairy != 1 || u.AllergySeafood != 0 {
		t.Errorf("stored flags = %d %d %d", u.AllergyNuts, u.AllergyDairy, u.AllergySeafood)
	}
	got := u.Allergies()
	if got.Nuts != Allergic || got.Dairy != NotAllergic || got.Seafood != Allergic {
		t.Errorf("Allergies = %+v", got)
	}
}

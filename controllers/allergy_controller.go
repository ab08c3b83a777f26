package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type AllergyController struct {
	goals     *services.GoalService
	allergies *services.AllergyService
	alerts    *services.AlertService
}

func NewAllergyController(goals *services.GoalService, allergies *services.AllergyService, alerts *services.AlertService) *AllergyController {
	return &AllergyController{goals: goals, allergies: allergies, alerts: alerts}
}

// GetAllergies returns the user's declared allergen flags in the stored
// wire convention (0 allergic, 1 safe).
func (ac *AllergyController) GetAllergies(c *gin.Context) {
	uid := c.GetUint("userID")

	set, err := ac.goals.GetAllergies(uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergies": set.Flags()})
}

func (ac *AllergyController) UpdateAllergies(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Allergies map[string]int `json:"allergies" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := models.AllergenSetFromFlags(input.Allergies)
	if err := ac.goals.UpdateAllergies(uid, set); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergies": set.Flags()})
}

type CheckAllergiesInput struct {
	FoodName string `json:"food_name" binding:"required"`
}

// CheckFood classifies a food and reports conflicts against the user's
// declared allergies. An empty conflict list means the food is safe for
// this user as far as the advisory can tell.
func (ac *AllergyController) CheckFood(c *gin.Context) {
	uid := c.GetUint("userID")

	var input CheckAllergiesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	declared, err := ac.goals.GetAllergies(uid)
	if err != nil {
		respondError(c, err)
		return
	}

	conflicts, err := ac.allergies.CheckConflicts(input.FoodName, declared)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(conflicts) > 0 {
		ac.alerts.EmitAllergyWarning(uid, input.FoodName, conflicts)
	}

	if conflicts == nil {
		conflicts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

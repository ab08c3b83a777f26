package controllers

import (
	"net/http"

	"backend/models"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	foods     *services.FoodService
	allergies *services.AllergyService
	goals     *services.GoalService
	alerts    *services.AlertService
}

func NewFoodController(foods *services.FoodService, allergies *services.AllergyService, goals *services.GoalService, alerts *services.AlertService) *FoodController {
	return &FoodController{foods: foods, allergies: allergies, goals: goals, alerts: alerts}
}

// checkConflicts runs the allergen advisory for a resolved food. Advisory
// failures never fail the lookup; the food facts are still shown.
func (fc *FoodController) checkConflicts(userID uint, food *models.FoodItem) []string {
	if food.Name == "" {
		return nil
	}
	declared, err := fc.goals.GetAllergies(userID)
	if err != nil {
		return nil
	}
	conflicts, err := fc.allergies.CheckConflicts(food.Name, declared)
	if err != nil {
		return nil
	}
	if len(conflicts) > 0 {
		fc.alerts.EmitAllergyWarning(userID, food.Name, conflicts)
	}
	return conflicts
}

// Barcode resolves a scanned UPC to nutrition facts.
func (fc *FoodController) Barcode(c *gin.Context) {
	uid := c.GetUint("userID")

	food, err := fc.foods.LookupBarcode(c.Param("upc"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food":              food,
		"allergy_conflicts": fc.checkConflicts(uid, food),
	})
}

// Search returns the two candidate lists for a free-text query.
func (fc *FoodController) Search(c *gin.Context) {
	common, branded, err := fc.foods.Search(c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"common": common, "branded": branded})
}

// Resolve exchanges a selected search candidate for full nutrient detail.
func (fc *FoodController) Resolve(c *gin.Context) {
	uid := c.GetUint("userID")

	var candidate models.FoodItem
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := fc.foods.Resolve(candidate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food":              food,
		"allergy_conflicts": fc.checkConflicts(uid, food),
	})
}

type PhotoInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// Photo recognizes a meal photo and returns its estimated nutrition.
func (fc *FoodController) Photo(c *gin.Context) {
	uid := c.GetUint("userID")

	var input PhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, _, err := utils.DecodeBase64Image(input.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := fc.foods.RecognizePhoto(image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food":              food,
		"allergy_conflicts": fc.checkConflicts(uid, food),
	})
}

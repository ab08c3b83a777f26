package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{goals: goals}
}

func (gc *GoalController) GetGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	profile, err := gc.goals.GetProfile(uid)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (gc *GoalController) UpdateGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		IntakeGoals map[string]float64 `json:"intakeGoals" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := gc.goals.UpdateGoals(uid, input.IntakeGoals)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// EstimateGoals computes suggested targets from body metrics without
// persisting them; the client reviews and saves via UpdateGoals.
func (gc *GoalController) EstimateGoals(c *gin.Context) {
	var input services.EstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimated, err := services.EstimateGoals(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimated)
}

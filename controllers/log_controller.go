package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	ledger *services.LedgerService
	alerts *services.AlertService
}

func NewLogController(ledger *services.LedgerService, alerts *services.AlertService) *LogController {
	return &LogController{ledger: ledger, alerts: alerts}
}

type AddEntryInput struct {
	Date     string          `json:"date" binding:"required"`
	Food     models.FoodItem `json:"food" binding:"required"`
	Quantity int             `json:"quantity" binding:"required"`
	Photo    string          `json:"photo"`
}

// AddEntry logs a food for a date and folds it into the day's totals.
func (lc *LogController) AddEntry(c *gin.Context) {
	uid := c.GetUint("userID")

	var input AddEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photo := input.Photo
	if photo == "" {
		photo = input.Food.PhotoURL
	}

	ledger, entry, err := lc.ledger.AddEntry(uid, input.Date, &input.Food, input.Quantity, photo, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	lc.alerts.NotifyLedgerChanged(uid, ledger)
	c.JSON(http.StatusCreated, gin.H{"ledger": ledger, "entry": entry})
}

// GetLedger returns a day's totals and its entries, newest first. A date
// with no log reads as all-zero.
func (lc *LogController) GetLedger(c *gin.Context) {
	uid := c.GetUint("userID")

	ledger, err := lc.ledger.GetLedger(uid, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// RemoveEntry deletes one logged food and subtracts it from the totals.
func (lc *LogController) RemoveEntry(c *gin.Context) {
	uid := c.GetUint("userID")

	ledger, err := lc.ledger.RemoveEntry(uid, c.Param("date"), c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}

	lc.alerts.NotifyLedgerChanged(uid, ledger)
	c.JSON(http.StatusOK, gin.H{"ledger": ledger})
}

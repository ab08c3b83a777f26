package services

import (
	"fmt"
	"strings"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// AlertService persists allergy warnings and pushes them to the user's
// websocket clients.
type AlertService struct {
	db  *gorm.DB
	hub *RealtimeHub
}

func NewAlertService(db *gorm.DB, hub *RealtimeHub) *AlertService {
	return &AlertService{db: db, hub: hub}
}

// EmitAllergyWarning records and broadcasts a conflict between the user's
// declared allergies and a food's inferred allergen content.
func (s *AlertService) EmitAllergyWarning(userID uint, foodName string, allergens []string) {
	if len(allergens) == 0 {
		return
	}

	pretty := make([]string, 0, len(allergens))
	for _, a := range allergens {
		if a == "" {
			continue
		}
		pretty = append(pretty, strings.ToUpper(a[:1])+a[1:])
	}
	msg := fmt.Sprintf("%s may contain %s, which you've indicated you're allergic to.",
		foodName, strings.Join(pretty, ", "))

	a := &models.Alert{UserID: userID, Type: "allergy", Message: msg, CreatedAt: time.Now()}
	_ = s.db.Create(a).Error

	if s.hub != nil {
		s.hub.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
}

// NotifyLedgerChanged lets connected clients refresh totals after an
// add or remove.
func (s *AlertService) NotifyLedgerChanged(userID uint, ledger *models.DailyLedger) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(userID, map[string]any{
		"kind":   "ledger.updated",
		"ledger": ledger,
	})
}

func (s *AlertService) ListAlerts(userID uint) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&alerts).Error
	return alerts, err
}

package services

import (
	"errors"

	"backend/models"
)

// labelDetector is what the photo fallback needs from Rekognition; the
// concrete client lives in RekognitionService.
type labelDetector interface {
	DetectLabels(image []byte) ([]string, error)
}

// FoodService is the lookup facade: it resolves a food item from a
// barcode, a free-text query, or a photo, and always hands back the one
// normalized FoodItem shape.
type FoodService struct {
	nix *NutritionixService
	lm  *LogMealService
	rek labelDetector
}

func NewFoodService(nix *NutritionixService, lm *LogMealService, rek labelDetector) *FoodService {
	return &FoodService{nix: nix, lm: lm, rek: rek}
}

func (s *FoodService) LookupBarcode(upc string) (*models.FoodItem, error) {
	return s.nix.LookupBarcode(upc)
}

func (s *FoodService) Search(query string) (common, branded []models.FoodItem, err error) {
	return s.nix.SearchInstant(query)
}

func (s *FoodService) Resolve(candidate models.FoodItem) (*models.FoodItem, error) {
	return s.nix.Resolve(candidate)
}

// RecognizePhoto runs the two-call photo recognition. When the provider
// recognizes the dish but has no nutrition data, the top detected label is
// retried as a natural-language lookup before NotFound is surfaced.
func (s *FoodService) RecognizePhoto(image []byte) (*models.FoodItem, error) {
	item, err := s.lm.RecognizePhoto(image)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, models.ErrNotFound) || s.rek == nil {
		return nil, err
	}

	labels, labelErr := s.rek.DetectLabels(image)
	if labelErr != nil || len(labels) == 0 {
		return nil, err // keep the original NotFound
	}
	return s.nix.NaturalNutrients(labels[0])
}

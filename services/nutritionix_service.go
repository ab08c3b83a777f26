package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"backend/models"
)

// NutritionixService talks to the three Nutritionix endpoints: barcode
// item lookup, instant search, and natural-language nutrient resolution.
// The barcode endpoint and the search endpoints use separate credentials.
type NutritionixService struct {
	appID, apiKey       string
	searchID, searchKey string
	baseURL             string
	client              *http.Client
}

func NewNutritionixService() *NutritionixService {
	return &NutritionixService{
		appID:     os.Getenv("NUTRITIONIX_APP_ID"),
		apiKey:    os.Getenv("NUTRITIONIX_API_KEY"),
		searchID:  os.Getenv("NUTRITIONIX_SEARCH_ID"),
		searchKey: os.Getenv("NUTRITIONIX_SEARCH_KEY"),
		baseURL:   "https://trackapi.nutritionix.com/v2",
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// nixFood mirrors the Nutritionix item shape (nf_* fields).
type nixFood struct {
	FoodName            string   `json:"food_name"`
	BrandName           string   `json:"brand_name"`
	BrandNameItemName   string   `json:"brand_name_item_name"`
	ServingQty          int      `json:"serving_qty"`
	ServingUnit         string   `json:"serving_unit"`
	ServingWeightGrams  float64  `json:"serving_weight_grams"`
	NfCalories          float64  `json:"nf_calories"`
	NfTotalFat          float64  `json:"nf_total_fat"`
	NfSaturatedFat      float64  `json:"nf_saturated_fat"`
	NfSodium            float64  `json:"nf_sodium"`
	NfTotalCarbohydrate float64  `json:"nf_total_carbohydrate"`
	NfProtein           float64  `json:"nf_protein"`
	NfDietaryFiber      float64  `json:"nf_dietary_fiber"`
	NfSugars            float64  `json:"nf_sugars"`
	NfPotassium         float64  `json:"nf_potassium"`
	NfIngredientStmt    string   `json:"nf_ingredient_statement"`
	NixItemID           string   `json:"nix_item_id"`
	Photo               *struct {
		Thumb string `json:"thumb"`
	} `json:"photo"`
}

func (f *nixFood) toFoodItem() models.FoodItem {
	name := f.FoodName
	if name == "" {
		name = f.BrandNameItemName
	}
	item := models.FoodItem{
		Name:  name,
		Brand: f.BrandName,
		Nutrients: models.NutrientValue{
			Calories: f.NfCalories,
			Protein:  f.NfProtein,
			Carbs:    f.NfTotalCarbohydrate,
			Sugars:   f.NfSugars,
			Fats:     f.NfTotalFat,
		},
		SaturatedFat:        f.NfSaturatedFat,
		Sodium:              f.NfSodium,
		Fiber:               f.NfDietaryFiber,
		Potassium:           f.NfPotassium,
		ServingQty:          f.ServingQty,
		ServingUnit:         f.ServingUnit,
		ServingWeightGrams:  f.ServingWeightGrams,
		IngredientStatement: f.NfIngredientStmt,
		NixItemID:           f.NixItemID,
	}
	if f.Photo != nil {
		item.PhotoURL = f.Photo.Thumb
	}
	return item
}

type nixFoodsResponse struct {
	Foods []nixFood `json:"foods"`
}

type nixInstantResponse struct {
	Common  []nixFood `json:"common"`
	Branded []nixFood `json:"branded"`
}

// doGet issues a GET with the given credential pair and maps transport,
// status, and decode failures onto the shared error taxonomy.
func (s *NutritionixService) doGet(u, id, key string, out any) error {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", models.ErrNetwork, err)
	}
	req.Header.Set("x-app-id", id)
	req.Header.Set("x-app-key", key)

	return s.do(req, out)
}

func (s *NutritionixService) do(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: nutritionix: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading nutritionix response: %v", models.ErrNetwork, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: nutritionix has no record", models.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: nutritionix status %d: %s", models.ErrNetwork, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: nutritionix JSON: %v", models.ErrDecode, err)
	}
	return nil
}

// LookupBarcode resolves a UPC to a food item. An empty result list is a
// NotFound outcome, never a decode error.
func (s *NutritionixService) LookupBarcode(upc string) (*models.FoodItem, error) {
	if upc == "" {
		return nil, fmt.Errorf("%w: barcode required", models.ErrValidation)
	}

	u := fmt.Sprintf("%s/search/item/?upc=%s", s.baseURL, url.QueryEscape(upc))
	var fr nixFoodsResponse
	if err := s.doGet(u, s.appID, s.apiKey, &fr); err != nil {
		return nil, err
	}
	if len(fr.Foods) == 0 {
		return nil, fmt.Errorf("%w: no foods for barcode %s", models.ErrNotFound, upc)
	}

	item := fr.Foods[0].toFoodItem()
	item.Barcode = upc
	return &item, nil
}

// SearchInstant returns the two parallel candidate lists for a free-text
// query: generic/common foods and branded foods, mapped independently.
// Branded candidates carry a nix_item_id for the detail resolve.
func (s *NutritionixService) SearchInstant(query string) (common, branded []models.FoodItem, err error) {
	if query == "" {
		return nil, nil, fmt.Errorf("%w: query required", models.ErrValidation)
	}

	u := fmt.Sprintf("%s/search/instant?query=%s", s.baseURL, url.QueryEscape(query))
	var ir nixInstantResponse
	if err := s.doGet(u, s.searchID, s.searchKey, &ir); err != nil {
		return nil, nil, err
	}

	common = make([]models.FoodItem, 0, len(ir.Common))
	for i := range ir.Common {
		common = append(common, ir.Common[i].toFoodItem())
	}
	branded = make([]models.FoodItem, 0, len(ir.Branded))
	for i := range ir.Branded {
		branded = append(branded, ir.Branded[i].toFoodItem())
	}
	return common, branded, nil
}

// Resolve is the second phase of the text search: a coarse candidate from
// SearchInstant is exchanged for a fully populated item, by item id when
// the candidate has one, else by natural-language query on its name.
func (s *NutritionixService) Resolve(candidate models.FoodItem) (*models.FoodItem, error) {
	if candidate.NixItemID != "" {
		u := fmt.Sprintf("%s/search/item?nix_item_id=%s", s.baseURL, url.QueryEscape(candidate.NixItemID))
		var fr nixFoodsResponse
		if err := s.doGet(u, s.searchID, s.searchKey, &fr); err != nil {
			return nil, err
		}
		if len(fr.Foods) == 0 {
			return nil, fmt.Errorf("%w: item %s", models.ErrNotFound, candidate.NixItemID)
		}
		item := fr.Foods[0].toFoodItem()
		if item.PhotoURL == "" {
			item.PhotoURL = candidate.PhotoURL
		}
		return &item, nil
	}
	return s.NaturalNutrients(candidate.Name)
}

// NaturalNutrients resolves a plain-English food description to a full
// nutrient breakdown.
func (s *NutritionixService) NaturalNutrients(query string) (*models.FoodItem, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: food name required", models.ErrValidation)
	}

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling query: %v", models.ErrDecode, err)
	}

	u := fmt.Sprintf("%s/natural/nutrients", s.baseURL)
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", models.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", s.searchID)
	req.Header.Set("x-app-key", s.searchKey)

	var fr nixFoodsResponse
	if err := s.do(req, &fr); err != nil {
		return nil, err
	}
	if len(fr.Foods) == 0 {
		return nil, fmt.Errorf("%w: no nutrients for %q", models.ErrNotFound, query)
	}
	item := fr.Foods[0].toFoodItem()
	return &item, nil
}

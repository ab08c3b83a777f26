package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/models"
)

func newTestNutritionixService(srv *httptest.Server) *NutritionixService {
	return &NutritionixService{
		appID:     "app-id",
		apiKey:    "app-key",
		searchID:  "search-id",
		searchKey: "search-key",
		baseURL:   srv.URL,
		client:    &http.Client{Timeout: 2 * time.Second},
	}
}

func TestLookupBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/item/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("upc") != "012345678905" {
			t.Errorf("upc = %s", r.URL.Query().Get("upc"))
		}
		if r.Header.Get("x-app-id") != "app-id" || r.Header.Get("x-app-key") != "app-key" {
			t.Error("barcode lookup must use the item credentials")
		}
		w.Write([]byte(`{"foods": [{
			"food_name": "granola bar",
			"brand_name": "Crunchy Co",
			"serving_qty": 1,
			"serving_unit": "bar",
			"serving_weight_grams": 40,
			"nf_calories": 190.5,
			"nf_total_fat": 7.2,
			"nf_saturated_fat": 1.1,
			"nf_sodium": 95,
			"nf_total_carbohydrate": 28.4,
			"nf_protein": 4.3,
			"nf_dietary_fiber": 3,
			"nf_sugars": 11.6,
			"nf_potassium": 120,
			"nf_ingredient_statement": "oats, honey, almonds",
			"photo": {"thumb": "https://img.example/thumb.jpg"}
		}]}`))
	}))
	defer srv.Close()

	item, err := newTestNutritionixService(srv).LookupBarcode("012345678905")
	if err != nil {
		t.Fatalf("LookupBarcode: %v", err)
	}
	if item.Name != "granola bar" || item.Brand != "Crunchy Co" {
		t.Errorf("name/brand = %q/%q", item.Name, item.Brand)
	}
	if item.Nutrients.Calories != 190.5 || item.Nutrients.Protein != 4.3 {
		t.Errorf("nutrients = %+v", item.Nutrients)
	}
	if item.Barcode != "012345678905" {
		t.Errorf("barcode not propagated: %q", item.Barcode)
	}
	if item.PhotoURL != "https://img.example/thumb.jpg" {
		t.Errorf("photo = %q", item.PhotoURL)
	}
	if item.IngredientStatement != "oats, honey, almonds" {
		t.Errorf("ingredients = %q", item.IngredientStatement)
	}
}

// An upstream 200 with an empty foods list is a lookup miss, not a decode
// failure.
func TestLookupBarcodeEmptyFoods(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": []}`))
	}))
	defer srv.Close()

	_, err := newTestNutritionixService(srv).LookupBarcode("000000000000")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if errors.Is(err, models.ErrDecode) {
		t.Error("empty foods must not surface as a decode error")
	}
}

func TestLookupBarcodeUpstream404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "resource not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := newTestNutritionixService(srv).LookupBarcode("000000000000"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestLookupBarcodeMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": [`))
	}))
	defer srv.Close()

	if _, err := newTestNutritionixService(srv).LookupBarcode("012345678905"); !errors.Is(err, models.ErrDecode) {
		t.Errorf("want ErrDecode, got %v", err)
	}
}

func TestLookupBarcodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTestNutritionixService(srv).LookupBarcode("012345678905"); !errors.Is(err, models.ErrNetwork) {
		t.Errorf("want ErrNetwork, got %v", err)
	}
}

func TestSearchInstant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/instant" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-app-id") != "search-id" || r.Header.Get("x-app-key") != "search-key" {
			t.Error("instant search must use the search credentials")
		}
		w.Write([]byte(`{
			"common": [{"food_name": "apple", "photo": {"thumb": "t1"}}],
			"branded": [{
				"brand_name_item_name": "Acme Apple Chips",
				"brand_name": "Acme",
				"nix_item_id": "abc123",
				"nf_calories": 120
			}]
		}`))
	}))
	defer srv.Close()

	common, branded, err := newTestNutritionixService(srv).SearchInstant("apple")
	if err != nil {
		t.Fatalf("SearchInstant: %v", err)
	}
	if len(common) != 1 || common[0].Name != "apple" {
		t.Errorf("common = %+v", common)
	}
	if len(branded) != 1 {
		t.Fatalf("branded = %+v", branded)
	}
	// Branded candidates name themselves via brand_name_item_name and keep
	// the item id for the detail resolve.
	if branded[0].Name != "Acme Apple Chips" {
		t.Errorf("branded name = %q", branded[0].Name)
	}
	if branded[0].NixItemID != "abc123" {
		t.Errorf("nix item id = %q", branded[0].NixItemID)
	}
}

func TestResolveByItemID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/item" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("nix_item_id") != "abc123" {
			t.Errorf("nix_item_id = %s", r.URL.Query().Get("nix_item_id"))
		}
		w.Write([]byte(`{"foods": [{"food_name": "Acme Apple Chips", "nf_calories": 120}]}`))
	}))
	defer srv.Close()

	item, err := newTestNutritionixService(srv).Resolve(models.FoodItem{
		Name:      "Acme Apple Chips",
		NixItemID: "abc123",
		PhotoURL:  "candidate-thumb",
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if item.Nutrients.Calories != 120 {
		t.Errorf("calories = %v", item.Nutrients.Calories)
	}
	// The detail response had no photo; the candidate's sticks.
	if item.PhotoURL != "candidate-thumb" {
		t.Errorf("photo = %q", item.PhotoURL)
	}
}

func TestResolveWithoutItemIDUsesNatural(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/natural/nutrients" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte(`{"foods": [{"food_name": "apple", "nf_calories": 95}]}`))
	}))
	defer srv.Close()

	item, err := newTestNutritionixService(srv).Resolve(models.FoodItem{Name: "apple"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if item.Name != "apple" || item.Nutrients.Calories != 95 {
		t.Errorf("item = %+v", item)
	}
}

func TestNaturalNutrientsEmptyFoods(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": []}`))
	}))
	defer srv.Close()

	if _, err := newTestNutritionixService(srv).NaturalNutrients("gibberish"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestValidationShortCircuits(t *testing.T) {
	svc := &NutritionixService{}
	if _, err := svc.LookupBarcode(""); !errors.Is(err, models.ErrValidation) {
		t.Errorf("LookupBarcode(\"\"): want ErrValidation, got %v", err)
	}
	if _, _, err := svc.SearchInstant(""); !errors.Is(err, models.ErrValidation) {
		t.Errorf("SearchInstant(\"\"): want ErrValidation, got %v", err)
	}
	if _, err := svc.NaturalNutrients(""); !errors.Is(err, models.ErrValidation) {
		t.Errorf("NaturalNutrients(\"\"): want ErrValidation, got %v", err)
	}
}

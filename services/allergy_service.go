package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"backend/models"
)

// AllergyService classifies a food's likely allergen content with a
// generative-text call. Temperature is pinned to 0 so repeated checks on
// the same food name agree.
type AllergyService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAllergyService() *AllergyService {
	return &AllergyService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

const allergyPromptTemplate = `Analyze this food: %q and determine if it contains or is likely to contain:
1. Nuts (any kind of nuts including peanuts, tree nuts, etc.)
2. Dairy (milk, cheese, cream, etc.)
3. Seafood (fish, shellfish, etc.)

Return the result in JSON format with exactly this structure:
{
  "allergies": {
    "nuts": 0 or 1,
    "dairy": 0 or 1,
    "seafood": 0 or 1
  }
}

Use 0 if the allergen is present (meaning there IS an allergy concern)
Use 1 if the allergen is NOT present (meaning it's safe)`

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// DetectAllergens asks the model whether foodName contains nuts, dairy, or
// seafood. The model replies with free text containing one JSON object;
// extraction takes the substring between the first "{" and the last "}".
// That is only safe because the expected schema is shallow.
func (s *AllergyService) DetectAllergens(foodName string) (models.AllergenSet, error) {
	if foodName == "" {
		return models.AllergenSet{}, fmt.Errorf("%w: food name required", models.ErrValidation)
	}

	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{
				{"text": fmt.Sprintf(allergyPromptTemplate, foodName)},
			}},
		},
		"generationConfig": map[string]any{
			"temperature":      0.0,
			"responseMimeType": "application/json",
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return models.AllergenSet{}, fmt.Errorf("%w: marshaling prompt: %v", models.ErrDecode, err)
	}

	u := fmt.Sprintf("%s/models/gemini-1.5-flash:generateContent?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return models.AllergenSet{}, fmt.Errorf("%w: building request: %v", models.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.AllergenSet{}, fmt.Errorf("%w: gemini: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AllergenSet{}, fmt.Errorf("%w: reading gemini response: %v", models.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.AllergenSet{}, fmt.Errorf("%w: gemini status %d: %s", models.ErrNetwork, resp.StatusCode, string(raw))
	}

	var gr geminiResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return models.AllergenSet{}, fmt.Errorf("%w: gemini JSON: %v", models.ErrDecode, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return models.AllergenSet{}, fmt.Errorf("%w: gemini returned no candidates", models.ErrDecode)
	}

	return parseAllergenText(gr.Candidates[0].Content.Parts[0].Text)
}

// parseAllergenText extracts the embedded JSON object from free text and
// decodes the allergies map in the 0/1 wire convention.
func parseAllergenText(text string) (models.AllergenSet, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return models.AllergenSet{}, fmt.Errorf("%w: no JSON object in allergen response", models.ErrDecode)
	}

	var parsed struct {
		Allergies map[string]int `json:"allergies"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return models.AllergenSet{}, fmt.Errorf("%w: allergen JSON: %v", models.ErrDecode, err)
	}
	if parsed.Allergies == nil {
		return models.AllergenSet{}, fmt.Errorf("%w: allergen response missing allergies object", models.ErrDecode)
	}

	return models.AllergenSetFromFlags(parsed.Allergies), nil
}

// CheckConflicts classifies the food and reports the allergens the user
// declared that the food likely contains.
func (s *AllergyService) CheckConflicts(foodName string, user models.AllergenSet) ([]string, error) {
	food, err := s.DetectAllergens(foodName)
	if err != nil {
		return nil, err
	}
	return user.Conflicts(food), nil
}

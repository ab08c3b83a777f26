package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"backend/models"
	"backend/utils"
)

// LogMealService recognizes food from a photo in two sequential calls:
// upload the JPEG for segmentation to obtain an image id, then ask for the
// nutritional info of that id.
type LogMealService struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewLogMealService() *LogMealService {
	return &LogMealService{
		token:   os.Getenv("LOGMEAL_TOKEN"),
		baseURL: "https://api.logmeal.com/v2",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type segmentationResponse struct {
	ImageID int `json:"imageId"`
}

type nutritionalInfoResponse struct {
	HasNutritionalInfo int      `json:"hasNutritionalInfo"`
	FoodName           []string `json:"foodName"`
	ServingSize        float64  `json:"serving_size"`
	NutritionalInfo    *struct {
		Calories       float64 `json:"calories"`
		TotalNutrients map[string]struct {
			Quantity float64 `json:"quantity"`
		} `json:"totalNutrients"`
	} `json:"nutritional_info"`
}

// Segment uploads raw JPEG bytes and returns the opaque image id.
func (s *LogMealService) Segment(image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: image required", models.ErrValidation)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "food.jpg")
	if err != nil {
		return "", fmt.Errorf("%w: building multipart body: %v", models.ErrNetwork, err)
	}
	if _, err := fw.Write(image); err != nil {
		return "", fmt.Errorf("%w: building multipart body: %v", models.ErrNetwork, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: building multipart body: %v", models.ErrNetwork, err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/image/segmentation/complete", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", models.ErrNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var sr segmentationResponse
	if err := s.do(req, &sr); err != nil {
		return "", err
	}
	if sr.ImageID == 0 {
		return "", fmt.Errorf("%w: segmentation returned no imageId", models.ErrDecode)
	}
	return fmt.Sprintf("%d", sr.ImageID), nil
}

// NutritionalInfo fetches the nutrient table for a previously segmented
// image. "Recognized but no nutrition data" is a NotFound outcome, kept
// distinct from transport and decode failures.
func (s *LogMealService) NutritionalInfo(imageID string) (*models.FoodItem, error) {
	payload, err := json.Marshal(map[string]string{"imageId": imageID})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling imageId: %v", models.ErrDecode, err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/recipe/nutritionalInfo", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", models.ErrNetwork, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	var nr nutritionalInfoResponse
	if err := s.do(req, &nr); err != nil {
		return nil, err
	}

	if nr.HasNutritionalInfo != 1 {
		return nil, fmt.Errorf("%w: no nutritional info for image %s", models.ErrNotFound, imageID)
	}
	if nr.NutritionalInfo == nil || nr.NutritionalInfo.TotalNutrients == nil {
		return nil, fmt.Errorf("%w: no nutrient table for image %s", models.ErrNotFound, imageID)
	}

	nutrient := func(code string) float64 {
		n, ok := nr.NutritionalInfo.TotalNutrients[code]
		if !ok {
			return 0
		}
		return utils.RoundSigFigs(n.Quantity, 3)
	}

	names := nr.FoodName
	if len(names) == 0 {
		names = []string{"Name Not Available"}
	}

	item := &models.FoodItem{
		Name: strings.Join(names, ", "),
		Nutrients: models.NutrientValue{
			Calories: utils.RoundSigFigs(nr.NutritionalInfo.Calories, 3),
			Protein:  nutrient("PROCNT"),
			Carbs:    nutrient("CHOCDF"),
			Sugars:   nutrient("SUGAR"),
			Fats:     nutrient("FAT"),
		},
		SaturatedFat:       nutrient("FASAT"),
		Sodium:             nutrient("NA"),
		Fiber:              nutrient("FIBTG"),
		Potassium:          nutrient("K"),
		ServingWeightGrams: utils.RoundSigFigs(nr.ServingSize, 3),
	}
	return item, nil
}

// RecognizePhoto chains segmentation and nutritional info.
func (s *LogMealService) RecognizePhoto(image []byte) (*models.FoodItem, error) {
	imageID, err := s.Segment(image)
	if err != nil {
		return nil, err
	}
	return s.NutritionalInfo(imageID)
}

func (s *LogMealService) do(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: logmeal: %v", models.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading logmeal response: %v", models.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: logmeal status %d: %s", models.ErrNetwork, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: logmeal JSON: %v", models.ErrDecode, err)
	}
	return nil
}

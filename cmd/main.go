package main

import (
	"log"

	"backend/config"
	"backend/controllers"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	nix := services.NewNutritionixService()
	lm := services.NewLogMealService()

	var foodSvc *services.FoodService
	if rek, err := services.NewRekognitionService(); err != nil {
		// label fallback is optional; food lookup still works without it
		log.Printf("Rekognition unavailable: %v", err)
		foodSvc = services.NewFoodService(nix, lm, nil)
	} else {
		foodSvc = services.NewFoodService(nix, lm, rek)
	}

	hub := services.NewRealtimeHub()
	alerts := services.NewAlertService(config.DB, hub)
	ledgerSvc := services.NewLedgerService(config.DB)
	goalSvc := services.NewGoalService(config.DB)
	allergySvc := services.NewAllergyService()

	r := routes.SetupRouter(routes.Controllers{
		Food:     controllers.NewFoodController(foodSvc, allergySvc, goalSvc, alerts),
		Log:      controllers.NewLogController(ledgerSvc, alerts),
		Goal:     controllers.NewGoalController(goalSvc),
		Allergy:  controllers.NewAllergyController(goalSvc, allergySvc, alerts),
		Realtime: controllers.NewRealtimeController(hub, alerts),
	})
	r.Run(":8080")
}

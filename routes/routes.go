package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Food     *controllers.FoodController
	Log      *controllers.LogController
	Goal     *controllers.GoalController
	Allergy  *controllers.AllergyController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Everything else requires a bearer token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		food := api.Group("/food")
		{
			food.GET("/barcode/:upc", ctrl.Food.Barcode)
			food.GET("/search", ctrl.Food.Search)
			food.POST("/resolve", ctrl.Food.Resolve)
			food.POST("/photo", ctrl.Food.Photo)
		}

		log := api.Group("/log")
		{
			log.POST("", ctrl.Log.AddEntry)
			log.GET("/:date", ctrl.Log.GetLedger)
			log.DELETE("/:date/:entryID", ctrl.Log.RemoveEntry)
		}

		goals := api.Group("/goals")
		{
			goals.GET("", ctrl.Goal.GetGoals)
			goals.PUT("", ctrl.Goal.UpdateGoals)
			goals.POST("/estimate", ctrl.Goal.EstimateGoals)
		}

		allergies := api.Group("/allergies")
		{
			allergies.GET("", ctrl.Allergy.GetAllergies)
			allergies.PUT("", ctrl.Allergy.UpdateAllergies)
			allergies.POST("/check", ctrl.Allergy.CheckFood)
		}

		api.GET("/ws", ctrl.Realtime.EventsWS)
		api.GET("/alerts", ctrl.Realtime.ListAlerts)
		api.POST("/photo/upload", controllers.UploadPhoto)
	}

	return r
}

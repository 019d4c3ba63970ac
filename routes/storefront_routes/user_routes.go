package storefront_routes

import (
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/saved_search_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the signed-in customer's routes
func SetupUserRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware()) // All routes require auth
	user.Use(middleware.RateLimiter(60, time.Minute))
	{
		user.GET("/saved-searches", saved_search_controller.GetSavedSearches)
		user.POST("/saved-searches", saved_search_controller.CreateSavedSearch)
		user.DELETE("/saved-searches/:id", saved_search_controller.DeleteSavedSearch)
	}
}

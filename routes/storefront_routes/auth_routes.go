package storefront_routes

import (
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/auth_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		limited := auth.Group("")
		limited.Use(middleware.RateLimiter(10, time.Minute))
		limited.POST("/sign-in", auth_controller.SignIn)
		limited.POST("/sign-up", auth_controller.SignUp)

		auth.POST("/sign-out", auth_controller.SignOut)
		auth.GET("/guest-session", auth_controller.GuestSession)

		// Google OAuth routes
		auth.GET("/google", auth_controller.GoogleLogin)
		auth.GET("/google/callback", auth_controller.GoogleCallback)

		auth.GET("/me", middleware.AuthMiddleware(), auth_controller.GetMe)
		auth.GET("/checkout", middleware.AuthMiddleware(), auth_controller.Checkout)
	}
}

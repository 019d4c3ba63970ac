package auth_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// GetMe godoc
// @Summary Current customer
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.SessionUser}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /auth/me [get]
func GetMe(c *gin.Context) {
	user, ok := middleware.GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "User fetched successfully", user))
}

// Checkout godoc
// @Summary Checkout gate
// @Description Confirms the customer is signed in before checkout. Anonymous visitors get 401 and are expected to sign in first.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.SessionUser}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /auth/checkout [get]
func Checkout(c *gin.Context) {
	user, ok := middleware.GetSessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Sign in to continue to checkout"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Ready for checkout", user))
}

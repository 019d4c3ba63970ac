package auth_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SignOut godoc
// @Summary Sign out
// @Description Ends the catalog session when one exists and clears the auth_token cookie. Always succeeds locally.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse "Signed out"
// @Router /auth/sign-out [post]
func SignOut(c *gin.Context) {
	if client := services.Catalog(); client != nil {
		ctx, cancel := shared.Context(c)
		defer cancel()

		resp, err := client.SignOut(ctx, c.Request.Cookies())
		if err != nil {
			config.Log.Warn("⚠️  Catalog sign-out failed", zap.Error(err))
		} else {
			relayCookies(c, resp.Cookies)
		}
	}

	clearSession(c)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Signed out", nil))
}

package auth_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// GuestSession godoc
// @Summary Ensure a guest session
// @Description Asks the catalog for a guest session (used for anonymous carts) and relays its cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse "Guest session ready"
// @Failure 502 {object} models.ApiResponse "Authentication service unavailable"
// @Router /auth/guest-session [get]
func GuestSession(c *gin.Context) {
	client := shared.Client(c)
	if client == nil {
		return
	}
	ctx, cancel := shared.Context(c)
	defer cancel()

	resp, err := client.GuestSession(ctx, c.Request.Cookies())
	if err != nil {
		respondUpstreamError(c, err, "Could not start guest session")
		return
	}
	relayCookies(c, resp.Cookies)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Guest session ready", nil))
}

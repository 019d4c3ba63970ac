package auth_controller

import (
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// SignIn godoc
// @Summary Sign in with email and password
// @Description Validates the form, signs in against the catalog, relays the catalog's session cookies and sets the storefront auth_token cookie.
// @Tags Auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} models.ApiResponse{data=models.SessionUser}
// @Failure 400 {object} models.ApiResponse "Invalid form"
// @Failure 401 {object} models.ApiResponse "Invalid credentials"
// @Router /auth/sign-in [post]
func SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A valid email and password are required"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	client := shared.Client(c)
	if client == nil {
		return
	}
	ctx, cancel := shared.Context(c)
	defer cancel()

	resp, err := client.SignIn(ctx, req.Email, req.Password, c.Request.Cookies())
	if err != nil {
		respondUpstreamError(c, err, "Invalid credentials")
		return
	}
	relayCookies(c, resp.Cookies)

	userID := resp.Result.UserID
	if userID == "" {
		userID = req.Email
	}
	user, err := issueSession(c, userID, req.Email, "", "password")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create session"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Signed in successfully", user))
}

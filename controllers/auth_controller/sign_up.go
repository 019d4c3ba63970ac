package auth_controller

import (
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// SignUp godoc
// @Summary Create an account
// @Description Validates the form (password of at least 8 characters), creates the account in the catalog and signs the customer in.
// @Tags Auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password (min 8 characters)"
// @Param name formData string false "Display name"
// @Success 201 {object} models.ApiResponse{data=models.SessionUser}
// @Failure 400 {object} models.ApiResponse "Invalid form or account exists"
// @Router /auth/sign-up [post]
func SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "A valid email and a password of at least 8 characters are required"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	client := shared.Client(c)
	if client == nil {
		return
	}
	ctx, cancel := shared.Context(c)
	defer cancel()

	resp, err := client.SignUp(ctx, req.Email, req.Password, req.Name, c.Request.Cookies())
	if err != nil {
		respondUpstreamError(c, err, "Could not create account")
		return
	}
	relayCookies(c, resp.Cookies)

	userID := resp.Result.UserID
	if userID == "" {
		userID = req.Email
	}
	user, err := issueSession(c, userID, req.Email, req.Name, "password")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to create session"))
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Account created successfully", user))
}

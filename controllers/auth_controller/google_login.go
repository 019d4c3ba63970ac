// Path: controllers/auth_controller/google_login.go

package auth_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	stateCookie = "oauth_state"
	nonceCookie = "oauth_nonce"
)

// GoogleLogin godoc
// @Summary Redirect to Google OAuth
// @Description Starts the Google OAuth flow: stores a state token and an ID-token nonce in short-lived cookies and redirects to Google's consent page.
// @Tags Auth - Google OAuth
// @Success 307 "Temporary redirect to Google OAuth"
// @Failure 503 {object} models.ApiResponse "Google sign-in disabled"
// @Router /auth/google [get]
func GoogleLogin(c *gin.Context) {
	if !config.GoogleOAuthEnabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not configured"))
		return
	}

	state := uuid.New().String()
	nonce := uuid.New().String()

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", config.IsProduction(), true)
	c.SetCookie(nonceCookie, nonce, 600, "/", "", config.IsProduction(), true)

	url := config.GoogleOAuthConfig.AuthCodeURL(state, oidc.Nonce(nonce))
	c.Redirect(http.StatusTemporaryRedirect, url)
}

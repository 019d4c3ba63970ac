package auth_controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/Modeva-Ecommerce/modeva-storefront/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// issueSession signs a storefront token for the customer, sets it as the
// auth cookie and records the login.
func issueSession(c *gin.Context, userID, email, name, provider string) (*models.SessionUser, error) {
	jwtSvc := services.GetJWTService()
	token, expiresAt, err := jwtSvc.GenerateCustomerJWT(userID, email, name, provider)
	if err != nil {
		return nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.AuthCookie,
		token,
		int(jwtSvc.Expiry().Seconds()),
		"/",
		"",
		config.IsProduction(),
		true, // httpOnly
	)

	if err := utils.LogLoginEvent(c, userID, provider); err != nil {
		config.Log.Warn("⚠️  Failed to log login event", zap.Error(err))
	}

	return &models.SessionUser{
		ID:        userID,
		Email:     email,
		Name:      name,
		Provider:  provider,
		ExpiresAt: expiresAt,
	}, nil
}

func clearSession(c *gin.Context) {
	c.SetCookie(middleware.AuthCookie, "", -1, "/", "", config.IsProduction(), true)
}

// relayCookies forwards the catalog's session cookies to the browser.
func relayCookies(c *gin.Context, cookies []*http.Cookie) {
	for _, ck := range cookies {
		ck.Domain = ""
		http.SetCookie(c.Writer, ck)
	}
}

// respondUpstreamError answers a failed catalog auth call with the catalog's
// own message when it gave one.
func respondUpstreamError(c *gin.Context, err error, fallback string) {
	var cerr *services.CatalogError
	msg := fallback
	if errors.As(err, &cerr) && cerr.Message != "" {
		msg = cerr.Message
	}

	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, msg))
	case errors.As(err, &cerr) && cerr.StatusCode >= 400 && cerr.StatusCode < 500:
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, msg))
	default:
		config.Log.Error("❌ Catalog auth call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Authentication service unavailable"))
	}
}

func redirectToFrontendWithError(c *gin.Context, errorMsg string) {
	redirectURL := fmt.Sprintf("%s/auth/error?message=%s", config.GetFrontendURL(), url.QueryEscape(errorMsg))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// ════════════════════════════════════════════════════════════
// Path: controllers/auth_controller/google_callback.go
// Google OAuth Callback Handler
// ════════════════════════════════════════════════════════════

package auth_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GoogleCallback godoc
// @Summary Google OAuth callback
// @Description Verifies the state token, exchanges the code, verifies the ID token (signature, audience, nonce), sets the auth_token cookie and redirects to the frontend.
// @Tags Auth - Google OAuth
// @Success 307 "Redirect to frontend after successful login"
// @Failure 503 {object} models.ApiResponse "Google sign-in disabled"
// @Router /auth/google/callback [get]
func GoogleCallback(c *gin.Context) {
	if !config.GoogleOAuthEnabled() {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Google sign-in is not configured"))
		return
	}

	savedState, err := c.Cookie(stateCookie)
	if err != nil || savedState == "" || c.Query("state") != savedState {
		config.Log.Warn("❌ OAuth state mismatch")
		redirectToFrontendWithError(c, "Invalid state token")
		return
	}
	nonce, _ := c.Cookie(nonceCookie)

	c.SetCookie(stateCookie, "", -1, "/", "", config.IsProduction(), true)
	c.SetCookie(nonceCookie, "", -1, "/", "", config.IsProduction(), true)

	code := c.Query("code")
	if code == "" {
		redirectToFrontendWithError(c, "No authorization code")
		return
	}

	ctx, cancel := shared.Context(c)
	defer cancel()

	token, err := config.GoogleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		config.Log.Error("❌ OAuth exchange failed", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to exchange token")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		redirectToFrontendWithError(c, "Google did not return an ID token")
		return
	}

	idToken, err := config.OIDCVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		config.Log.Error("❌ ID token verification failed", zap.Error(err))
		redirectToFrontendWithError(c, "Invalid ID token")
		return
	}
	if nonce == "" || idToken.Nonce != nonce {
		redirectToFrontendWithError(c, "Invalid nonce")
		return
	}

	var googleUser models.GoogleUserInfo
	if err := idToken.Claims(&googleUser); err != nil {
		redirectToFrontendWithError(c, "Failed to decode user info")
		return
	}
	if googleUser.Email == "" || !googleUser.EmailVerified {
		redirectToFrontendWithError(c, "Google account email is not verified")
		return
	}

	user, err := issueSession(c, "google:"+idToken.Subject, googleUser.Email, googleUser.Name, "google")
	if err != nil {
		config.Log.Error("❌ Session error", zap.Error(err))
		redirectToFrontendWithError(c, "Failed to create session")
		return
	}

	config.Log.Info("✅ Google login successful", zap.String("user_id", user.ID))
	c.Redirect(http.StatusTemporaryRedirect, config.GetFrontendURL()+"/auth-popup")
}

// ════════════════════════════════════════════════════════════
// Path: config/google_oauth.go
// Google OAuth Configuration
// ════════════════════════════════════════════════════════════

package config

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	GoogleOAuthConfig *oauth2.Config
	OIDCVerifier      *oidc.IDTokenVerifier
)

// GoogleOAuthEnabled reports whether InitGoogleOAuth configured the provider.
func GoogleOAuthEnabled() bool {
	return GoogleOAuthConfig != nil && OIDCVerifier != nil
}

// InitGoogleOAuth initializes Google OAuth configuration. Missing client
// credentials leave Google sign-in disabled.
func InitGoogleOAuth(ctx context.Context) error {
	clientID := getEnv("GOOGLE_CLIENT_ID", "")
	clientSecret := getEnv("GOOGLE_CLIENT_SECRET", "")
	if clientID == "" || clientSecret == "" {
		Log.Warn("⚠️  GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET not set, Google sign-in disabled")
		return nil
	}

	redirectURL := getEnv("GOOGLE_REDIRECT_URL", "")
	if redirectURL == "" {
		redirectURL = "http://localhost:" + Port() + "/api/v1/auth/google/callback"
		Log.Warn("⚠️  GOOGLE_REDIRECT_URL not set, using default", zap.String("redirect_url", redirectURL))
	}

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	GoogleOAuthConfig = &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
	OIDCVerifier = provider.Verifier(&oidc.Config{ClientID: clientID})

	Log.Info("✅ Google OAuth initialized successfully")
	return nil
}

// GetFrontendURL returns the storefront frontend origin used for redirects.
func GetFrontendURL() string {
	return getEnv("STOREFRONT_FRONTEND_URL", "http://localhost:3001")
}

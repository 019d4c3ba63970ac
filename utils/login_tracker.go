// ════════════════════════════════════════════════════════════
// Path: utils/login_tracker.go
// Records customer sign-ins in the storefront database
// ════════════════════════════════════════════════════════════

package utils

import (
	"context"
	"strings"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const createLoginEventsTable = `
	CREATE TABLE IF NOT EXISTS login_events (
		id           UUID PRIMARY KEY,
		user_id      TEXT NOT NULL,
		provider     TEXT NOT NULL,
		logged_in_at TIMESTAMPTZ NOT NULL,
		ip_address   TEXT,
		user_agent   TEXT,
		device_type  TEXT,
		browser      TEXT,
		os           TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_login_events_user ON login_events (user_id, logged_in_at DESC);
`

// LoginEvent is one row of login_events.
type LoginEvent struct {
	ID         uuid.UUID
	UserID     string
	Provider   string
	LoggedInAt time.Time
	IPAddress  string
	UserAgent  string
	DeviceType string
	Browser    string
	OS         string
}

// EnsureLoginEventsTable creates the table when the database is connected.
func EnsureLoginEventsTable(ctx context.Context) error {
	if config.StorefrontDB == nil {
		return nil
	}
	return config.Exec(ctx, createLoginEventsTable)
}

// NewLoginEvent describes the current request's sign-in.
func NewLoginEvent(c *gin.Context, userID, provider string) LoginEvent {
	userAgent := c.GetHeader("User-Agent")
	return LoginEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Provider:   provider,
		LoggedInAt: time.Now().UTC(),
		IPAddress:  c.ClientIP(),
		UserAgent:  userAgent,
		DeviceType: parseDeviceType(userAgent),
		Browser:    parseBrowser(userAgent),
		OS:         parseOS(userAgent),
	}
}

// LogLoginEvent records a sign-in. Without a database it does nothing.
func LogLoginEvent(c *gin.Context, userID, provider string) error {
	if config.StorefrontDB == nil {
		return nil
	}
	ev := NewLoginEvent(c, userID, provider)

	err := config.Exec(c.Request.Context(), `
		INSERT INTO login_events (
			id, user_id, provider, logged_in_at, ip_address, user_agent,
			device_type, browser, os
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		ev.ID, ev.UserID, ev.Provider, ev.LoggedInAt, ev.IPAddress, ev.UserAgent,
		ev.DeviceType, ev.Browser, ev.OS,
	)
	if err != nil {
		config.Log.Error("❌ Failed to log login event", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	config.Log.Info("✅ Login event logged",
		zap.String("user_id", userID),
		zap.String("provider", provider),
		zap.String("ip", ev.IPAddress),
	)
	return nil
}

type uaRule struct {
	match   []string
	exclude []string
	label   string
}

func (r uaRule) matches(ua string) bool {
	for _, ex := range r.exclude {
		if strings.Contains(ua, ex) {
			return false
		}
	}
	for _, m := range r.match {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

func classify(userAgent string, rules []uaRule, fallback string) string {
	ua := strings.ToLower(userAgent)
	for _, r := range rules {
		if r.matches(ua) {
			return r.label
		}
	}
	return fallback
}

var (
	deviceRules = []uaRule{
		{match: []string{"ipad", "tablet"}, label: "tablet"},
		{match: []string{"mobile", "android", "iphone"}, label: "mobile"},
	}
	browserRules = []uaRule{
		{match: []string{"edg"}, label: "Edge"},
		{match: []string{"firefox", "fxios"}, label: "Firefox"},
		{match: []string{"chrome", "crios"}, label: "Chrome"},
		{match: []string{"safari"}, label: "Safari"},
	}
	// iOS and Android user agents also mention "mac os" and "linux".
	osRules = []uaRule{
		{match: []string{"iphone", "ipad"}, label: "iOS"},
		{match: []string{"android"}, label: "Android"},
		{match: []string{"windows"}, label: "Windows"},
		{match: []string{"mac os"}, label: "macOS"},
		{match: []string{"linux"}, label: "Linux"},
	}
)

func parseDeviceType(userAgent string) string { return classify(userAgent, deviceRules, "desktop") }
func parseBrowser(userAgent string) string    { return classify(userAgent, browserRules, "Other") }
func parseOS(userAgent string) string         { return classify(userAgent, osRules, "Other") }

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const (
	uaChromeMac  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	uaSafariIOS  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	uaEdgeWin    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36 Edg/124.0"
	uaFirefoxAnd = "Mozilla/5.0 (Android 14; Mobile; rv:125.0) Gecko/125.0 Firefox/125.0"
	uaIPad       = "Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/604.1"
)

func TestUserAgentParsing(t *testing.T) {
	cases := []struct {
		ua, device, browser, os string
	}{
		{uaChromeMac, "desktop", "Chrome", "macOS"},
		{uaSafariIOS, "mobile", "Safari", "iOS"},
		{uaEdgeWin, "desktop", "Edge", "Windows"},
		{uaFirefoxAnd, "mobile", "Firefox", "Android"},
		{uaIPad, "tablet", "Safari", "iOS"},
		{"curl/8.4.0", "desktop", "Other", "Other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.device, parseDeviceType(tc.ua), tc.ua)
		assert.Equal(t, tc.browser, parseBrowser(tc.ua), tc.ua)
		assert.Equal(t, tc.os, parseOS(tc.ua), tc.ua)
	}
}

func TestNewLoginEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", nil)
	c.Request.Header.Set("User-Agent", uaEdgeWin)
	c.Request.RemoteAddr = "203.0.113.9:5123"

	ev := NewLoginEvent(c, "u-1", "password")

	assert.Equal(t, "u-1", ev.UserID)
	assert.Equal(t, "password", ev.Provider)
	assert.Equal(t, "203.0.113.9", ev.IPAddress)
	assert.Equal(t, "Edge", ev.Browser)
	assert.False(t, ev.LoggedInAt.IsZero())
}

func TestLogLoginEventWithoutDatabase(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	assert.NoError(t, LogLoginEvent(c, "u-1", "password"))
}

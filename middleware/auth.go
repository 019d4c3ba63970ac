package middleware

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
)

// AuthCookie holds the storefront session token.
const AuthCookie = "auth_token"

// AuthMiddleware validates the session token from the cookie or the
// Authorization header and stores the customer in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		// Try to get token from cookie first
		cookieToken, err := c.Cookie(AuthCookie)
		if err == nil && cookieToken != "" {
			token = cookieToken
		} else {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authorization header required"))
				c.Abort()
				return
			}

			token, err = services.ExtractBearerToken(authHeader)
			if err != nil {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid authorization header format"))
				c.Abort()
				return
			}
		}

		claims, err := services.GetJWTService().VerifyCustomerJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userName", claims.Name)
		c.Set("userProvider", claims.Provider)
		if claims.ExpiresAt != nil {
			c.Set("sessionExpiresAt", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return contextString(c, "userID")
}

func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	return contextString(c, "userEmail")
}

// GetSessionUser rebuilds the signed-in customer from the context.
func GetSessionUser(c *gin.Context) (models.SessionUser, bool) {
	id, ok := GetUserIDFromContext(c)
	if !ok {
		return models.SessionUser{}, false
	}
	user := models.SessionUser{ID: id}
	user.Email, _ = GetUserEmailFromContext(c)
	user.Name, _ = contextString(c, "userName")
	user.Provider, _ = contextString(c, "userProvider")
	user.ExpiresAt = c.GetTime("sessionExpiresAt")
	return user, true
}

func contextString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

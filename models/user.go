package models

import "time"

// SignInRequest is the sign-in form (form-urlencoded or JSON).
type SignInRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email" example:"johndoe@gmail.com"`
	Password string `form:"password" json:"password" binding:"required" example:"secret-password"`
}

// SignUpRequest is the sign-up form. Name is optional.
type SignUpRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email" example:"johndoe@gmail.com"`
	Password string `form:"password" json:"password" binding:"required,min=8" example:"minimum8chars"`
	Name     string `form:"name" json:"name" binding:"omitempty,max=120" example:"John Doe"`
}

// SessionUser is the signed-in customer as carried by the storefront token.
type SessionUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Provider  string    `json:"provider"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GoogleUserInfo holds the claims of a verified Google ID token
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
